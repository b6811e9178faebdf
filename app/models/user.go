package models

import (
	"time"
)

type User struct {
	ID         string `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	FirstName  string `gorm:"size:100;not null" json:"first_name"`
	LastName   string `gorm:"size:100;not null" json:"last_name"`
	Username   string `gorm:"size:100;not null;uniqueIndex" json:"username"`
	Email      string `gorm:"size:100;not null;uniqueIndex" json:"email"`
	Password   string `gorm:"size:255;not null" json:"-"`
	IsAdmin    bool   `gorm:"not null;default:false" json:"is_admin"`
	IsSupplier bool   `gorm:"not null;default:false" json:"is_supplier"`
	IsCustomer bool   `gorm:"not null;default:true" json:"is_customer"`
	IsActive   bool   `gorm:"not null;default:true" json:"is_active"`

	Products  []Product `gorm:"foreignKey:SupplierID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
