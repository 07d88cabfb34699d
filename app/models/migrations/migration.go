package migrations

import (
	"github.com/amalbenali/glowshop/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.ProductVariant{},
		&models.WishlistItem{},
		&models.ShippingRate{},
		&models.Order{},
		&models.OrderItem{},
	)
}
