package services

import (
	"context"
	"fmt"

	"github.com/Rakhulsr/go-marketplace/app/helpers"
	"github.com/Rakhulsr/go-marketplace/app/models"
	"github.com/Rakhulsr/go-marketplace/app/repositories"
	"gorm.io/gorm"
)

type UserService struct {
	db       *gorm.DB
	userRepo repositories.UserRepositoryImpl
}

func NewUserService(db *gorm.DB, userRepo repositories.UserRepositoryImpl) *UserService {
	return &UserService{db: db, userRepo: userRepo}
}

type Profile struct {
	FullName string           `json:"full_name"`
	Username string           `json:"username"`
	Email    string           `json:"email"`
	Products []models.Product `json:"products"`
}

func (s *UserService) GetProfile(ctx context.Context, actor Actor) (*Profile, error) {
	user, err := s.userRepo.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, fmt.Errorf("user %s: %w", actor.ID, ErrNotFound)
	}

	var products []models.Product
	if err := s.db.WithContext(ctx).Where("supplier_id = ?", user.ID).Find(&products).Error; err != nil {
		return nil, err
	}

	return &Profile{
		FullName: user.FirstName + " " + user.LastName,
		Username: user.Username,
		Email:    user.Email,
		Products: products,
	}, nil
}

func (s *UserService) ChangePassword(ctx context.Context, actor Actor, oldPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(ctx, actor.ID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user %s: %w", actor.ID, ErrNotFound)
	}

	if !helpers.PasswordCompare(user.Password, []byte(oldPassword)) {
		return fmt.Errorf("wrong current password: %w", ErrUnauthorized)
	}

	hashed := helpers.HashPassword(newPassword)
	if hashed == "" {
		return fmt.Errorf("failed to hash password")
	}

	user.Password = hashed
	return s.userRepo.Update(ctx, user)
}

// ToggleSupplier flips the supplier capability flag on a user. Admin only.
func (s *UserService) ToggleSupplier(ctx context.Context, actor Actor, userID string) (*models.User, error) {
	if !actor.IsAdmin {
		return nil, fmt.Errorf("toggle supplier: %w", ErrForbidden)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}

	user.IsSupplier = !user.IsSupplier
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ToggleActive soft-deletes or reactivates an account. Admin only, and admin
// accounts themselves are off limits.
func (s *UserService) ToggleActive(ctx context.Context, actor Actor, userID string) (*models.User, error) {
	if !actor.IsAdmin {
		return nil, fmt.Errorf("toggle active: %w", ErrForbidden)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	if user.IsAdmin {
		return nil, fmt.Errorf("cannot delete an admin user: %w", ErrForbidden)
	}

	user.IsActive = !user.IsActive
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
