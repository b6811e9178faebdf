package models

import (
	"time"
)

type Category struct {
	ID       string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Name     string    `gorm:"size:100;not null" json:"name"`
	Slug     string    `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	ParentID *string   `gorm:"size:36;index" json:"parent_id"`
	Parent   *Category `gorm:"foreignKey:ParentID" json:"-"`
	IsActive bool      `gorm:"not null;default:true" json:"is_active"`

	Products  []Product `gorm:"foreignKey:CategoryID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
