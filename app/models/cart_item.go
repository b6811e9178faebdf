package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CartItem struct {
	ID        string   `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	UserID    string   `gorm:"size:36;index;not null" json:"user_id"`
	Cart      *Cart    `gorm:"foreignKey:CartID" json:"-"`
	CartID    string   `gorm:"size:36;index;not null" json:"cart_id"`
	Product   *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	ProductID string   `gorm:"size:36;index;not null" json:"product_id"`
	Quantity  int      `gorm:"not null" json:"quantity"`
	IsActive  bool     `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ci *CartItem) BeforeCreate(tx *gorm.DB) (err error) {
	if ci.ID == "" {
		ci.ID = uuid.New().String()
	}
	return
}
