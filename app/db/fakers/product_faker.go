package fakers

import (
	"log"
	"math/rand"

	"github.com/Rakhulsr/go-marketplace/app/helpers"
	"github.com/Rakhulsr/go-marketplace/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func ProductFaker(db *gorm.DB, category *models.Category) *models.Product {
	name := faker.Name()

	supplier := UserFaker(db)
	if err := db.FirstOrCreate(supplier, "email = ?", supplier.Email).Error; err != nil {
		log.Fatal("Failed to create/find supplier:", err)
	}

	return &models.Product{
		ID:          uuid.New().String(),
		Name:        name,
		Slug:        helpers.GenerateSlug(name + "-" + uuid.NewString()[:6]),
		Description: faker.Sentence(),
		Price:       int64(rand.Intn(500_000) + 1_000),
		ImageURL:    "/images/products/" + uuid.NewString()[:8] + ".jpg",
		Stock:       rand.Intn(50) + 1,
		SupplierID:  &supplier.ID,
		CategoryID:  category.ID,
		IsActive:    true,
	}
}
