package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductVariant is a purchasable size variation of a product. Its price is
// independent of the parent product's base and promo prices.
type ProductVariant struct {
	ID        string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	ProductID string          `gorm:"size:36;not null;index:idx_variant_product_label,unique" json:"product_id"`
	Product   Product         `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
	Label     string          `gorm:"size:80;not null;index:idx_variant_product_label,unique" json:"label"`
	SizeML    *int            `gorm:"column:size_ml" json:"size_ml,omitempty"`
	Price     decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"price"`
	InStock   bool            `gorm:"default:true" json:"in_stock"`
	Sku       string          `gorm:"size:64;index" json:"sku"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (v *ProductVariant) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return
}
