package db

import (
	"log"
	"os"

	"github.com/ngocthb/OJT-BE/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=ojt port=5432 sslmode=disable"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	err = DB.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Claim{},
		&models.Comment{},
		&models.ReplyLink{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	seedRoles()
}

func seedRoles() {
	var count int64
	DB.Model(&models.Role{}).Count(&count)
	if count > 0 {
		log.Println("Roles already seeded, skipping")
		return
	}

	roles := []models.Role{
		{Name: "claimer"},
		{Name: "approver"},
		{Name: "finance"},
		{Name: "administrator"},
	}

	for _, role := range roles {
		if err := DB.Create(&role).Error; err != nil {
			log.Printf("Failed to create role %s: %v", role.Name, err)
		}
	}
	log.Println("Initial roles created successfully")
}
