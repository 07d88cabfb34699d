package fakers

import (
	"log"

	"github.com/amalbenali/glowshop/app/models"
	"github.com/go-faker/faker/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func UserFaker(db *gorm.DB) *models.User {
	password, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash faker password:", err)
	}

	return &models.User{
		FirstName: faker.FirstName(),
		LastName:  faker.LastName(),
		Email:     faker.Email(),
		Phone:     faker.Phonenumber(),
		Password:  string(password),
		Role:      models.RoleCustomer,
	}
}

func AdminFaker(db *gorm.DB) *models.User {
	password, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash faker password:", err)
	}

	return &models.User{
		FirstName: "Admin",
		LastName:  "Glowshop",
		Email:     "admin@glowshop.ma",
		Phone:     faker.Phonenumber(),
		Password:  string(password),
		Role:      models.RoleAdmin,
	}
}
