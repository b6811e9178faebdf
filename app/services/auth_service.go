package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Rakhulsr/go-marketplace/app/helpers"
	"github.com/Rakhulsr/go-marketplace/app/models"
	"github.com/Rakhulsr/go-marketplace/app/repositories"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Access tokens are short-lived on purpose; clients re-login or ride the
// session cookie.
const accessTokenTTL = 20 * time.Minute

// Claims is the typed JWT payload. Capability flags travel in the token so
// middleware can authorize without a user lookup.
type Claims struct {
	UserID     string `json:"id"`
	Username   string `json:"sub_name"`
	IsAdmin    bool   `json:"is_admin"`
	IsSupplier bool   `json:"is_supplier"`
	IsCustomer bool   `json:"is_customer"`
	jwt.RegisteredClaims
}

func (c *Claims) Actor() Actor {
	return Actor{
		ID:         c.UserID,
		Username:   c.Username,
		IsAdmin:    c.IsAdmin,
		IsSupplier: c.IsSupplier,
		IsCustomer: c.IsCustomer,
	}
}

type AuthService struct {
	userRepo  repositories.UserRepositoryImpl
	jwtSecret []byte
}

func NewAuthService(userRepo repositories.UserRepositoryImpl, jwtSecret string) *AuthService {
	return &AuthService{userRepo: userRepo, jwtSecret: []byte(jwtSecret)}
}

type RegisterInput struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Username  string `json:"username" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
}

// Register creates a customer account. Supplier and admin flags are only
// granted later through the permission endpoints.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	existing, err := s.userRepo.FindByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("username %s is taken: %w", in.Username, ErrConflict)
	}

	hashed := helpers.HashPassword(in.Password)
	if hashed == "" {
		return nil, fmt.Errorf("failed to hash password")
	}

	user := &models.User{
		ID:         uuid.New().String(),
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Username:   in.Username,
		Email:      in.Email,
		Password:   hashed,
		IsCustomer: true,
		IsActive:   true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login verifies the password and issues a signed access token. Inactive
// users cannot log in.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}
	if user == nil || !user.IsActive {
		return "", nil, fmt.Errorf("could not validate user: %w", ErrUnauthorized)
	}
	if !helpers.PasswordCompare(user.Password, []byte(password)) {
		return "", nil, fmt.Errorf("could not validate user: %w", ErrUnauthorized)
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, user, nil
}

func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	claims := Claims{
		UserID:     user.ID,
		Username:   user.Username,
		IsAdmin:    user.IsAdmin,
		IsSupplier: user.IsSupplier,
		IsCustomer: user.IsCustomer,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrUnauthorized)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims: %w", ErrUnauthorized)
	}
	return claims, nil
}
