package fakers

import (
	"github.com/Rakhulsr/go-marketplace/app/helpers"
	"github.com/Rakhulsr/go-marketplace/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
)

// CategoryFaker builds a category; pass the parent to fake a child with a
// chained slug, nil for a root.
func CategoryFaker(parent *models.Category) *models.Category {
	name := faker.Word() + " " + faker.Word()

	slugVal := helpers.GenerateSlug(name)
	var parentID *string
	if parent != nil {
		parentID = &parent.ID
		slugVal = helpers.GenerateCategorySlug(name, parent.Slug)
	}

	return &models.Category{
		ID:       uuid.New().String(),
		Name:     name,
		Slug:     slugVal,
		ParentID: parentID,
		IsActive: true,
	}
}
