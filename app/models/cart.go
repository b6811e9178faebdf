package models

import (
	"time"
)

type Cart struct {
	ID        string     `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	UserID    string     `gorm:"size:36;uniqueIndex;not null" json:"user_id"`
	CartItems []CartItem `gorm:"foreignKey:CartID" json:"cart_items"`
	IsActive  bool       `gorm:"not null;default:true" json:"is_active"`

	DateAdded time.Time `json:"date_added"`
	UpdatedAt time.Time `json:"updated_at"`
}
