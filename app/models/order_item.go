package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderItem snapshots what was bought at checkout time. The product and
// variant references are informational only; deleting a catalog row nulls
// them while the snapshot fields keep the historical record intact.
type OrderItem struct {
	ID      string `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	OrderID string `gorm:"size:36;not null;index" json:"order_id"`
	Order   Order  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"-"`

	ProductID *string         `gorm:"size:36;index" json:"product_id,omitempty"`
	Product   *Product        `gorm:"foreignKey:ProductID;constraint:OnDelete:SET NULL" json:"-"`
	VariantID *string         `gorm:"size:36;index" json:"variant_id,omitempty"`
	Variant   *ProductVariant `gorm:"foreignKey:VariantID;constraint:OnDelete:SET NULL" json:"-"`

	Name         string          `gorm:"size:200;not null" json:"name"`
	VariantLabel string          `gorm:"size:80" json:"variant_label"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"unit_price"`
	Quantity     int             `gorm:"not null" json:"quantity"`
	LineTotal    decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"line_total"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) (err error) {
	if oi.ID == "" {
		oi.ID = uuid.New().String()
	}
	return
}
