package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCanceled  = "canceled"
)

const (
	PaymentMethodCOD  = "cod"
	PaymentMethodCard = "card"
)

// OrderStatuses lists every status an order may hold. No transition graph is
// enforced: an admin may move an order from any status to any other.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusPaid,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCanceled,
}

func IsValidOrderStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func IsValidPaymentMethod(method string) bool {
	return method == PaymentMethodCOD || method == PaymentMethodCard
}

// Order is a full checkout snapshot. Everything except Status (and
// LockVersion, which guards Status updates) is immutable after creation.
type Order struct {
	ID        string  `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	OrderCode string  `gorm:"size:64;uniqueIndex;not null" json:"order_code"`
	UserID    *string `gorm:"size:36;index" json:"user_id,omitempty"`
	User      *User   `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`

	// Snapshot of who/where to ship.
	FullName string `gorm:"size:120;not null" json:"full_name"`
	Email    string `gorm:"size:255" json:"email"`
	Phone    string `gorm:"size:32;not null" json:"phone"`
	City     string `gorm:"size:120;not null" json:"city"`
	Address  string `gorm:"size:255;not null" json:"address"`
	Notes    string `gorm:"type:text" json:"notes"`

	PaymentMethod string `gorm:"size:10;not null;default:'cod'" json:"payment_method"`
	Status        string `gorm:"size:12;not null;default:'pending'" json:"status"`

	// Money snapshots.
	ShippingPrice decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"shipping_price"`
	ItemsTotal    decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"items_total"`
	GrandTotal    decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"grand_total"`

	OrderItems []OrderItem `gorm:"foreignKey:OrderID" json:"items"`

	// Bumped on every status update so concurrent admin edits cannot
	// silently overwrite each other.
	LockVersion int `gorm:"not null;default:0" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return
}
