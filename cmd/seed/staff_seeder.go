package main

import (
	"os"

	"library-membership-be/internal/model"

	"github.com/fatih/color"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedStaffUsers creates the default library and finance admin accounts.
// Passwords come from env so the defaults never reach a real deployment.
func SeedStaffUsers(db *gorm.DB) {
	staff := []struct {
		Email    string
		FullName string
		Role     string
		PassEnv  string
	}{
		{Email: "library.admin@university.edu", FullName: "Library Administrator", Role: "library_admin", PassEnv: "SEED_LIBRARY_ADMIN_PASSWORD"},
		{Email: "finance.admin@university.edu", FullName: "Finance Administrator", Role: "finance_admin", PassEnv: "SEED_FINANCE_ADMIN_PASSWORD"},
	}

	for _, s := range staff {
		var existing model.User
		if err := db.Where("email = ?", s.Email).First(&existing).Error; err == nil {
			color.Yellow("User '%s' already exists, skipping...", s.Email)
			continue
		}

		password := os.Getenv(s.PassEnv)
		if password == "" {
			password = "ChangeMe123!"
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			color.Red("Error hashing password for '%s': %v", s.Email, err)
			continue
		}
		hashStr := string(hash)

		user := model.User{
			Email:        s.Email,
			PasswordHash: &hashStr,
			FullName:     s.FullName,
			Role:         s.Role,
			Status:       "active",
		}

		if err := db.Create(&user).Error; err != nil {
			color.Red("Error creating user '%s': %v", s.Email, err)
		} else {
			color.Green("Created %s: %s", s.Role, s.Email)
		}
	}
}
