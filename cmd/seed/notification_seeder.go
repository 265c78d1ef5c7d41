package main

import (
	"log"

	"library-membership-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SeedNotificationTypes populates the database with default notification types.
func SeedNotificationTypes(db *gorm.DB) {
	types := []model.NotificationType{
		{
			Code:        "APPLICATION_SUBMITTED",
			DisplayName: "New Application",
			Template:    "New membership application from {full_name} ({membership_type})",
			TargetType:  "ROLE",
			TargetRole:  "library_admin",
			Priority:    "MEDIUM",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web"]`)),
		},
		{
			Code:        "APPLICATION_REVIEWED",
			DisplayName: "Application Reviewed",
			Template:    "Your membership application has been {decision}",
			TargetType:  "SELF",
			Priority:    "HIGH",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web", "email"]`)),
		},
		{
			Code:        "PAYMENT_CONFIRMED",
			DisplayName: "Payment Confirmed",
			Template:    "Your membership fee payment of {amount} has been confirmed",
			TargetType:  "SELF",
			Priority:    "HIGH",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web", "email"]`)),
		},
		{
			Code:        "PAYMENT_FAILED",
			DisplayName: "Payment Failed",
			Template:    "Your membership fee payment could not be completed",
			TargetType:  "SELF",
			Priority:    "HIGH",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web", "email"]`)),
		},
		{
			Code:        "MEMBERSHIP_ACTIVATED",
			DisplayName: "Membership Activated",
			Template:    "Your library membership {membership_number} is now active",
			TargetType:  "SELF",
			Priority:    "HIGH",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web", "email"]`)),
		},
		{
			Code:        "MEMBERSHIP_EXPIRED",
			DisplayName: "Membership Expired",
			Template:    "Your library membership {membership_number} has expired",
			TargetType:  "SELF",
			Priority:    "MEDIUM",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web", "email"]`)),
		},
		{
			Code:        "SYSTEM_BROADCAST",
			DisplayName: "System Announcement",
			Template:    "{message}",
			TargetType:  "BROADCAST",
			Priority:    "HIGH",
			IsActive:    true,
			Channels:    datatypes.JSON([]byte(`["web"]`)),
		},
	}

	for _, t := range types {
		err := db.Where("code = ?", t.Code).FirstOrCreate(&t).Error
		if err != nil {
			log.Printf("Error seeding notification type %s: %v", t.Code, err)
		}
	}
	log.Println("✅ Notification types seeded successfully.")
}
