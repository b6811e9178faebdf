package models

import (
	"time"
)

// Price is an opaque integer amount. The unit (cents vs whole currency)
// is decided by the deployment, never by this codebase.
type Product struct {
	ID          string   `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Name        string   `gorm:"size:255;not null" json:"name"`
	Slug        string   `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Description string   `gorm:"type:text" json:"description"`
	Price       int64    `gorm:"not null" json:"price"`
	ImageURL    string   `gorm:"size:255" json:"image_url"`
	Stock       int      `gorm:"not null" json:"stock"`
	SupplierID  *string  `gorm:"size:36;index" json:"supplier_id"`
	Supplier    *User    `gorm:"foreignKey:SupplierID" json:"-"`
	CategoryID  string   `gorm:"size:36;index;not null" json:"category_id"`
	Category    Category `gorm:"foreignKey:CategoryID" json:"-"`
	Rating      *float64 `json:"rating"`
	IsActive    bool     `gorm:"not null;default:true" json:"is_active"`

	Comments  []Comment `gorm:"foreignKey:ProductID" json:"-"`
	Ratings   []Rating  `gorm:"foreignKey:ProductID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
