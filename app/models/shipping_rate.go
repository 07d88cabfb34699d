package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ShippingRate is a flat delivery price for one city. Lookups are
// case-insensitive on the city name.
type ShippingRate struct {
	ID        string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	City      string          `gorm:"size:120;not null;uniqueIndex" json:"city"`
	Price     decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"price"`
	Active    bool            `gorm:"default:true" json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (s *ShippingRate) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return
}
