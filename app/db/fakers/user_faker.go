package fakers

import (
	"github.com/Rakhulsr/go-marketplace/app/helpers"
	"github.com/Rakhulsr/go-marketplace/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func UserFaker(db *gorm.DB) *models.User {
	return &models.User{
		ID:         uuid.New().String(),
		FirstName:  faker.FirstName(),
		LastName:   faker.LastName(),
		Username:   faker.Username(),
		Email:      faker.Email(),
		Password:   helpers.HashPassword("password123"),
		IsSupplier: true,
		IsCustomer: true,
		IsActive:   true,
	}
}
