package services_test

import (
	"testing"
	"time"

	"github.com/Rakhulsr/go-marketplace/app/models"
	"github.com/Rakhulsr/go-marketplace/app/models/migrations"
	"github.com/Rakhulsr/go-marketplace/app/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB gives each test its own in-memory database. A single
// connection keeps the :memory: schema alive for the test's duration.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, migrations.AutoMigrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string, admin, supplier bool) *models.User {
	t.Helper()

	user := &models.User{
		ID:         uuid.New().String(),
		FirstName:  "Test",
		LastName:   "User",
		Username:   username,
		Email:      username + "@example.com",
		Password:   "not-a-real-hash",
		IsAdmin:    admin,
		IsSupplier: supplier,
		IsCustomer: true,
		IsActive:   true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func actorFor(user *models.User) services.Actor {
	return services.Actor{
		ID:         user.ID,
		Username:   user.Username,
		IsAdmin:    user.IsAdmin,
		IsSupplier: user.IsSupplier,
		IsCustomer: user.IsCustomer,
	}
}

func seedCategory(t *testing.T, db *gorm.DB, name, slug string, parentID *string) *models.Category {
	t.Helper()

	category := &models.Category{
		ID:       uuid.New().String(),
		Name:     name,
		Slug:     slug,
		ParentID: parentID,
		IsActive: true,
	}
	require.NoError(t, db.Create(category).Error)
	return category
}

func seedProduct(t *testing.T, db *gorm.DB, name string, categoryID string, price int64, stock int, active bool) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:         uuid.New().String(),
		Name:       name,
		Slug:       name + "-" + uuid.NewString()[:6],
		Price:      price,
		Stock:      stock,
		CategoryID: categoryID,
		IsActive:   active,
	}
	// Select("*") forces IsActive=false through; a plain Create drops the
	// zero value and lets the column's default:true win.
	require.NoError(t, db.Select("*").Create(product).Error)
	return product
}

func seedComment(t *testing.T, db *gorm.DB, productID, userID string, parentID *string, rating *int) *models.Comment {
	t.Helper()

	comment := &models.Comment{
		ID:        uuid.New().String(),
		ProductID: productID,
		UserID:    userID,
		Comment:   "seeded comment",
		ParentID:  parentID,
		Rating:    rating,
		IsActive:  true,
		PostDate:  time.Now(),
	}
	require.NoError(t, db.Create(comment).Error)
	return comment
}
