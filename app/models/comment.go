package models

import (
	"time"
)

// A comment without a parent is the user's review of the product and is the
// only kind that carries a rating. Comments with a parent are threaded
// replies.
type Comment struct {
	ID        string   `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	ProductID string   `gorm:"size:36;index;not null" json:"product_id"`
	UserID    string   `gorm:"size:36;index;not null" json:"user_id"`
	Comment   string   `gorm:"type:text;not null" json:"comment"`
	ParentID  *string  `gorm:"size:36;index" json:"parent_id"`
	Parent    *Comment `gorm:"foreignKey:ParentID" json:"-"`
	Rating    *int     `json:"rating"`
	IsActive  bool     `gorm:"not null;default:true" json:"is_active"`

	PostDate  time.Time `json:"post_date"`
	UpdatedAt time.Time `json:"updated_at"`
}
