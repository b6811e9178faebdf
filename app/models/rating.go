package models

import (
	"time"
)

type Rating struct {
	ID        string `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	ProductID string `gorm:"size:36;index;not null" json:"product_id"`
	UserID    string `gorm:"size:36;index;not null" json:"user_id"`
	CommentID string `gorm:"size:36;index;not null" json:"comment_id"`
	Rating    int    `gorm:"not null" json:"rating"`
	IsActive  bool   `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
