package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Category slugs kept in sync with the storefront filters.
const (
	CategoryFace        = "face"
	CategoryLips        = "lips"
	CategoryEyes        = "eyes"
	CategoryEyebrow     = "eyebrow"
	CategoryHair        = "hair"
	CategoryBody        = "body"
	CategoryPacks       = "packs"
	CategoryAcne        = "acne"
	CategoryBrightening = "brightening"
	CategoryDrySkin     = "dry_skin"
	CategoryOther       = "other"
)

type Product struct {
	ID          string           `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Name        string           `gorm:"size:200;not null" json:"name"`
	Slug        string           `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Description string           `gorm:"type:text" json:"description"`
	Brand       string           `gorm:"size:120;index" json:"brand"`
	Category    string           `gorm:"size:30;index;default:'other'" json:"category"`
	Price       decimal.Decimal  `gorm:"type:decimal(16,2);not null" json:"price"`
	NewPrice    *decimal.Decimal `gorm:"type:decimal(16,2)" json:"new_price,omitempty"`
	Stock       bool             `gorm:"default:false" json:"stock"`
	ImagePath   string           `gorm:"size:255" json:"image_path"`
	Variants    []ProductVariant `gorm:"foreignKey:ProductID" json:"variants"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `gorm:"index" json:"-"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}
