// Command seed ensures the admin user exists. Run once after provisioning:
//
//	go run ./cmd/seed
package main

import (
	"errors"
	"log"
	"os"

	"gorm.io/gorm"

	"github.com/sitca-league/sitca-backend/config"
	"github.com/sitca-league/sitca-backend/internal/auth"
	"github.com/sitca-league/sitca-backend/internal/user"
	"github.com/sitca-league/sitca-backend/utils"
)

func main() {
	if err := config.Initialize(); err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer config.CloseDB()

	adminEmail := getenv("ADMIN_EMAIL", "admin@cricket.com")
	adminPassword := getenv("ADMIN_PASSWORD", "admin123")

	if err := config.DB.AutoMigrate(&user.User{}); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	repo := auth.NewAuthRepository(config.DB)

	existing, err := repo.GetUserByEmail(adminEmail)
	if err == nil {
		log.Printf("Admin user already exists: %s (role %s)", existing.Email, existing.Role)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("Failed to check for existing admin: %v", err)
	}

	hashed, err := utils.HashPassword(adminPassword)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := &user.User{
		Email:    adminEmail,
		Password: hashed,
		Role:     user.RoleAdmin,
	}
	if err := repo.CreateUser(admin); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	log.Printf("Admin user created: %s", admin.Email)
	log.Println("SECURITY TIP: change this password immediately after first login.")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
