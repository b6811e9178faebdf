package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Rakhulsr/go-marketplace/app/models"
	"github.com/Rakhulsr/go-marketplace/app/repositories"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReviewService owns the comment/rating lifecycle. Every mutation that
// touches the aggregate product rating runs in one transaction with the
// product row locked, so concurrent submissions recompute serially.
type ReviewService struct {
	db          *gorm.DB
	productRepo repositories.ProductRepositoryImpl
	commentRepo repositories.CommentRepositoryImpl
	ratingRepo  repositories.RatingRepositoryImpl
}

func NewReviewService(db *gorm.DB, productRepo repositories.ProductRepositoryImpl, commentRepo repositories.CommentRepositoryImpl, ratingRepo repositories.RatingRepositoryImpl) *ReviewService {
	return &ReviewService{
		db:          db,
		productRepo: productRepo,
		commentRepo: commentRepo,
		ratingRepo:  ratingRepo,
	}
}

type CreateCommentInput struct {
	Comment  string  `json:"comment" validate:"required"`
	ParentID *string `json:"parent_id"`
	Rating   int     `json:"rating"`
}

// CommentThread is a top-level review with its direct replies.
type CommentThread struct {
	models.Comment
	Replies []models.Comment `json:"replies"`
}

// CreateComment posts either a review (no parent, carries the rating) or a
// threaded reply (parent set, rating ignored). A user gets exactly one
// active review per product; a second attempt is a Conflict, never a crash.
func (s *ReviewService) CreateComment(ctx context.Context, actor Actor, productID string, in CreateCommentInput) (*models.Comment, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, fmt.Errorf("product %s: %w", productID, ErrNotFound)
	}

	if in.ParentID != nil {
		return s.createReply(ctx, actor, product, in)
	}
	return s.createReview(ctx, actor, product, in)
}

func (s *ReviewService) createReply(ctx context.Context, actor Actor, product *models.Product, in CreateCommentInput) (*models.Comment, error) {
	parent, err := s.commentRepo.GetByID(ctx, *in.ParentID)
	if err != nil {
		return nil, err
	}
	if parent == nil || !parent.IsActive || parent.ProductID != product.ID {
		return nil, fmt.Errorf("parent comment %s: %w", *in.ParentID, ErrNotFound)
	}

	comment := &models.Comment{
		ID:        uuid.New().String(),
		ProductID: product.ID,
		UserID:    actor.ID,
		Comment:   in.Comment,
		ParentID:  in.ParentID,
		IsActive:  true,
		PostDate:  time.Now(),
	}

	if err := s.db.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, fmt.Errorf("failed to create reply: %w", err)
	}
	return comment, nil
}

func (s *ReviewService) createReview(ctx context.Context, actor Actor, product *models.Product, in CreateCommentInput) (*models.Comment, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5: %w", ErrValidation)
	}

	ratingVal := in.Rating
	comment := &models.Comment{
		ID:        uuid.New().String(),
		ProductID: product.ID,
		UserID:    actor.ID,
		Comment:   in.Comment,
		Rating:    &ratingVal,
		IsActive:  true,
		PostDate:  time.Now(),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockProduct(tx, product.ID); err != nil {
			return err
		}

		// The uniqueness check must hold the product lock: two concurrent
		// first reviews would otherwise both pass a pre-transaction check
		// and both insert.
		var existing models.Comment
		err := tx.
			Where("user_id = ? AND product_id = ? AND parent_id IS NULL AND is_active = ?", actor.ID, product.ID, true).
			First(&existing).Error
		if err == nil {
			return fmt.Errorf("cannot comment twice: %w", ErrConflict)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(comment).Error; err != nil {
			return fmt.Errorf("failed to create comment: %w", err)
		}

		rating := &models.Rating{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			UserID:    actor.ID,
			CommentID: comment.ID,
			Rating:    ratingVal,
			IsActive:  true,
		}
		if err := tx.Create(rating).Error; err != nil {
			return fmt.Errorf("failed to create rating: %w", err)
		}

		return recomputeProductRating(tx, product.ID)
	})
	if err != nil {
		return nil, err
	}

	return comment, nil
}

// EditComment changes the text only; the rating stays as posted. Author or
// admin.
func (s *ReviewService) EditComment(ctx context.Context, actor Actor, commentID, text string) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil || !comment.IsActive {
		return nil, fmt.Errorf("comment %s: %w", commentID, ErrNotFound)
	}
	if comment.UserID != actor.ID && !actor.IsAdmin {
		return nil, fmt.Errorf("edit comment: %w", ErrForbidden)
	}

	comment.Comment = text
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	return comment, nil
}

// DeleteComment deactivates the comment and, when it was a rated review,
// the linked rating too, then recomputes the product average. Replies have
// no rating, so the cascade is conditional on one actually existing.
func (s *ReviewService) DeleteComment(ctx context.Context, actor Actor, commentID string) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil || !comment.IsActive {
		return fmt.Errorf("comment %s: %w", commentID, ErrNotFound)
	}
	if comment.UserID != actor.ID && !actor.IsAdmin {
		return fmt.Errorf("delete comment: %w", ErrForbidden)
	}

	rating, err := s.ratingRepo.GetActiveByComment(ctx, commentID)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockProduct(tx, comment.ProductID); err != nil {
			return err
		}

		if err := tx.Model(&models.Comment{}).Where("id = ?", comment.ID).Update("is_active", false).Error; err != nil {
			return fmt.Errorf("failed to delete comment: %w", err)
		}

		if rating == nil {
			return nil
		}

		if err := tx.Model(&models.Rating{}).Where("id = ?", rating.ID).Update("is_active", false).Error; err != nil {
			return fmt.Errorf("failed to delete rating: %w", err)
		}

		return recomputeProductRating(tx, comment.ProductID)
	})
}

// ListComments returns the product's active comments threaded: each review
// with its replies. Replies whose parent has been deleted are dropped.
func (s *ReviewService) ListComments(ctx context.Context, productID string) ([]CommentThread, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("product %s: %w", productID, ErrNotFound)
	}

	comments, err := s.commentRepo.GetActiveByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	threads := []CommentThread{}
	index := map[string]int{}
	for _, c := range comments {
		if c.ParentID == nil {
			index[c.ID] = len(threads)
			threads = append(threads, CommentThread{Comment: c, Replies: []models.Comment{}})
		}
	}
	for _, c := range comments {
		if c.ParentID == nil {
			continue
		}
		if i, ok := index[*c.ParentID]; ok {
			threads[i].Replies = append(threads[i].Replies, c)
		}
	}

	return threads, nil
}

// lockProduct takes a row lock on the product so rating recomputation is
// serializable per product. SQLite has no FOR UPDATE; its write transaction
// already serializes, so the clause is only applied on MySQL.
func lockProduct(tx *gorm.DB, productID string) error {
	q := tx.Model(&models.Product{})
	if tx.Dialector.Name() == "mysql" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var product models.Product
	return q.Where("id = ?", productID).First(&product).Error
}

// recomputeProductRating writes the mean of all active ratings, or NULL when
// none remain. An empty set must never divide by zero.
func recomputeProductRating(tx *gorm.DB, productID string) error {
	var ratings []models.Rating
	if err := tx.Where("product_id = ? AND is_active = ?", productID, true).Find(&ratings).Error; err != nil {
		return fmt.Errorf("failed to load ratings: %w", err)
	}

	var avg *float64
	if len(ratings) > 0 {
		sum := 0.0
		for _, r := range ratings {
			sum += float64(r.Rating)
		}
		mean := sum / float64(len(ratings))
		avg = &mean
	}

	return tx.Model(&models.Product{}).Where("id = ?", productID).Update("rating", avg).Error
}
