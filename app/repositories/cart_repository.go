package repositories

import (
	"context"
	"time"

	"github.com/Rakhulsr/go-marketplace/app/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CartRepositoryImpl interface {
	GetOrCreateByUserID(ctx context.Context, userID string) (*models.Cart, error)
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepositoryImpl {
	return &cartRepository{db}
}

func (r *cartRepository) GetOrCreateByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Where(models.Cart{UserID: userID}).
		Attrs(models.Cart{
			ID:        uuid.New().String(),
			IsActive:  true,
			DateAdded: time.Now(),
		}).
		FirstOrCreate(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}
