package seeders

import (
	"github.com/amalbenali/glowshop/app/db/fakers"
	"gorm.io/gorm"
)

type Seeder struct {
	Seeder interface{}
}

func SeedersRegister(db *gorm.DB) []Seeder {
	seeders := []Seeder{
		{Seeder: fakers.AdminFaker(db)},
		{Seeder: fakers.UserFaker(db)},
		{Seeder: fakers.ShippingRateFaker("Casablanca", 20)},
		{Seeder: fakers.ShippingRateFaker("Rabat", 25)},
		{Seeder: fakers.ShippingRateFaker("Marrakech", 30)},
		{Seeder: fakers.ShippingRateFaker("Tanger", 35)},
	}

	for i := 0; i < 15; i++ {
		seeders = append(seeders, Seeder{Seeder: fakers.ProductFaker(db)})
	}
	return seeders
}

func DBSeed(db *gorm.DB) error {
	for _, seeder := range SeedersRegister(db) {
		if err := db.Create(seeder.Seeder).Error; err != nil {
			return err
		}
	}
	return nil
}
