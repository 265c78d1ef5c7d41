package main

import (
	"log"
	"os"

	"library-membership-be/internal/model"
	"library-membership-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding Membership Fee Catalog...")

	fees := []model.MembershipFee{
		{MembershipType: "UNDERGRADUATE", Amount: 1500, Currency: "LKR", ValidityMonths: 12, Description: "Undergraduate student membership, renewable each academic year", IsActive: true},
		{MembershipType: "POSTGRADUATE", Amount: 2000, Currency: "LKR", ValidityMonths: 12, Description: "Postgraduate student membership", IsActive: true},
		{MembershipType: "STAFF", Amount: 1000, Currency: "LKR", ValidityMonths: 24, Description: "Academic and non-academic staff membership", IsActive: true},
		{MembershipType: "EXTERNAL", Amount: 5000, Currency: "LKR", ValidityMonths: 6, Description: "External reader membership with reading-room access", IsActive: true},
	}

	for _, f := range fees {
		var existing model.MembershipFee
		if err := db.Where("membership_type = ?", f.MembershipType).First(&existing).Error; err == nil {
			color.Yellow("Fee '%s' already exists, skipping...", f.MembershipType)
			continue
		}

		if err := db.Create(&f).Error; err != nil {
			color.Red("Error creating fee '%s': %v", f.MembershipType, err)
		} else {
			color.Green("Created fee: %s (%.2f %s)", f.MembershipType, f.Amount, f.Currency)
		}
	}

	color.Cyan("Seeding Staff Accounts...")
	SeedStaffUsers(db)

	color.Cyan("Seeding Notification Types...")
	SeedNotificationTypes(db)

	color.Green("✅ Seeding completed!")
}
