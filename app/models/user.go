package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID                   string         `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	FirstName            string         `gorm:"size:100;not null" json:"first_name"`
	LastName             string         `gorm:"size:100" json:"last_name"`
	Email                string         `gorm:"size:100;not null;uniqueIndex" json:"email"`
	Phone                string         `gorm:"size:20" json:"phone"`
	Password             string         `gorm:"size:255;not null" json:"-"`
	Role                 string         `gorm:"size:20;default:'customer';not null" json:"role"`
	PasswordResetToken   *string        `gorm:"size:255;uniqueIndex;null" json:"-"`
	PasswordResetExpires *time.Time     `gorm:"null" json:"-"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `json:"-"`
}

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}
