package services_test

import (
	"context"
	"testing"

	"github.com/Rakhulsr/go-marketplace/app/helpers"
	"github.com/Rakhulsr/go-marketplace/app/models"
	"github.com/Rakhulsr/go-marketplace/app/repositories"
	"github.com/Rakhulsr/go-marketplace/app/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserService(db *gorm.DB) *services.UserService {
	return services.NewUserService(db, repositories.NewUserRepository(db))
}

func TestGetProfile_ListsOwnListings(t *testing.T) {
	db := openTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	category := seedCategory(t, db, "Books", "books", nil)
	supplier := seedUser(t, db, "supplier", false, true)
	other := seedUser(t, db, "other", false, true)

	mine := seedProduct(t, db, "Mine", category.ID, 100, 5, true)
	require.NoError(t, db.Model(mine).Update("supplier_id", supplier.ID).Error)
	theirs := seedProduct(t, db, "Theirs", category.ID, 100, 5, true)
	require.NoError(t, db.Model(theirs).Update("supplier_id", other.ID).Error)

	profile, err := svc.GetProfile(ctx, actorFor(supplier))
	require.NoError(t, err)
	assert.Equal(t, "Test User", profile.FullName)
	assert.Equal(t, "supplier", profile.Username)
	require.Len(t, profile.Products, 1)
	assert.Equal(t, mine.ID, profile.Products[0].ID)
}

func TestChangePassword_RequiresCurrentPassword(t *testing.T) {
	db := openTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	user := seedUser(t, db, "alice", false, false)
	require.NoError(t, db.Model(user).Update("password", helpers.HashPassword("old-pass")).Error)
	actor := actorFor(user)

	err := svc.ChangePassword(ctx, actor, "wrong-pass", "new-pass")
	assert.ErrorIs(t, err, services.ErrUnauthorized)

	require.NoError(t, svc.ChangePassword(ctx, actor, "old-pass", "new-pass"))

	var updated models.User
	require.NoError(t, db.First(&updated, "id = ?", user.ID).Error)
	assert.True(t, helpers.PasswordCompare(updated.Password, []byte("new-pass")))
}

func TestToggleSupplier_AdminOnly(t *testing.T) {
	db := openTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	admin := actorFor(seedUser(t, db, "admin", true, false))
	customer := seedUser(t, db, "customer", false, false)

	_, err := svc.ToggleSupplier(ctx, actorFor(customer), customer.ID)
	assert.ErrorIs(t, err, services.ErrForbidden)

	promoted, err := svc.ToggleSupplier(ctx, admin, customer.ID)
	require.NoError(t, err)
	assert.True(t, promoted.IsSupplier)

	demoted, err := svc.ToggleSupplier(ctx, admin, customer.ID)
	require.NoError(t, err)
	assert.False(t, demoted.IsSupplier)
}

func TestToggleActive_ProtectsAdmins(t *testing.T) {
	db := openTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	admin := seedUser(t, db, "admin", true, false)
	otherAdmin := seedUser(t, db, "admin2", true, false)
	customer := seedUser(t, db, "customer", false, false)

	deleted, err := svc.ToggleActive(ctx, actorFor(admin), customer.ID)
	require.NoError(t, err)
	assert.False(t, deleted.IsActive)

	restored, err := svc.ToggleActive(ctx, actorFor(admin), customer.ID)
	require.NoError(t, err)
	assert.True(t, restored.IsActive)

	_, err = svc.ToggleActive(ctx, actorFor(admin), otherAdmin.ID)
	assert.ErrorIs(t, err, services.ErrForbidden)

	_, err = svc.ToggleActive(ctx, actorFor(admin), "no-such-user")
	assert.ErrorIs(t, err, services.ErrNotFound)
}
