package repositories

import (
	"context"
	"errors"

	"github.com/Rakhulsr/go-marketplace/app/models"
	"gorm.io/gorm"
)

type RatingRepositoryImpl interface {
	GetActiveByComment(ctx context.Context, commentID string) (*models.Rating, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepositoryImpl {
	return &ratingRepository{db}
}

func (r *ratingRepository) GetActiveByComment(ctx context.Context, commentID string) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.WithContext(ctx).
		Where("comment_id = ? AND is_active = ?", commentID, true).
		First(&rating).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rating, nil
}
