package services_test

import (
	"context"
	"testing"

	"github.com/Rakhulsr/go-marketplace/app/repositories"
	"github.com/Rakhulsr/go-marketplace/app/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCartService(db *gorm.DB) *services.CartService {
	return services.NewCartService(
		repositories.NewCartRepository(db),
		repositories.NewCartItemRepository(db),
		repositories.NewProductRepository(db),
	)
}

func TestAddItem_AccumulatesQuantity(t *testing.T) {
	db := openTestDB(t)
	svc := newCartService(db)
	ctx := context.Background()

	category := seedCategory(t, db, "Books", "books", nil)
	product := seedProduct(t, db, "Novel", category.ID, 1500, 10, true)
	alice := actorFor(seedUser(t, db, "alice", false, false))

	item, err := svc.AddItem(ctx, alice, product.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)

	item, err = svc.AddItem(ctx, alice, product.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)

	view, err := svc.GetCart(ctx, alice)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 5, view.Items[0].Quantity)
}

func TestAddItem_RejectsBadInput(t *testing.T) {
	db := openTestDB(t)
	svc := newCartService(db)
	ctx := context.Background()

	category := seedCategory(t, db, "Books", "books", nil)
	product := seedProduct(t, db, "Novel", category.ID, 1500, 3, true)
	inactive := seedProduct(t, db, "Gone", category.ID, 1500, 3, false)
	alice := actorFor(seedUser(t, db, "alice", false, false))

	_, err := svc.AddItem(ctx, alice, product.ID, 0)
	assert.ErrorIs(t, err, services.ErrValidation)

	_, err = svc.AddItem(ctx, alice, product.ID, 4)
	assert.ErrorIs(t, err, services.ErrConflict)

	_, err = svc.AddItem(ctx, alice, inactive.ID, 1)
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, err = svc.AddItem(ctx, alice, "no-such-product", 1)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestGetCart_TotalsCurrentPrices(t *testing.T) {
	db := openTestDB(t)
	svc := newCartService(db)
	ctx := context.Background()

	category := seedCategory(t, db, "Books", "books", nil)
	novel := seedProduct(t, db, "Novel", category.ID, 1500, 10, true)
	atlas := seedProduct(t, db, "Atlas", category.ID, 4000, 10, true)
	alice := actorFor(seedUser(t, db, "alice", false, false))

	_, err := svc.AddItem(ctx, alice, novel.ID, 2)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, alice, atlas.ID, 1)
	require.NoError(t, err)

	view, err := svc.GetCart(ctx, alice)
	require.NoError(t, err)
	require.Len(t, view.Items, 2)
	assert.Equal(t, int64(2*1500+4000), view.Total)
	assert.NotEmpty(t, view.TotalDisplay)

	for _, line := range view.Items {
		assert.Equal(t, line.Product.Price*int64(line.Quantity), line.Subtotal)
	}
}

func TestRemoveItem_DecrementThenDeactivate(t *testing.T) {
	db := openTestDB(t)
	svc := newCartService(db)
	ctx := context.Background()

	category := seedCategory(t, db, "Books", "books", nil)
	product := seedProduct(t, db, "Novel", category.ID, 1500, 10, true)
	alice := actorFor(seedUser(t, db, "alice", false, false))

	_, err := svc.AddItem(ctx, alice, product.ID, 2)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveItem(ctx, alice, product.ID, false))
	view, err := svc.GetCart(ctx, alice)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 1, view.Items[0].Quantity)

	// Removing the last unit drops the line from the cart entirely.
	require.NoError(t, svc.RemoveItem(ctx, alice, product.ID, false))
	view, err = svc.GetCart(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Equal(t, int64(0), view.Total)

	err = svc.RemoveItem(ctx, alice, product.ID, false)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestRemoveItem_AllClearsLine(t *testing.T) {
	db := openTestDB(t)
	svc := newCartService(db)
	ctx := context.Background()

	category := seedCategory(t, db, "Books", "books", nil)
	product := seedProduct(t, db, "Novel", category.ID, 1500, 10, true)
	alice := actorFor(seedUser(t, db, "alice", false, false))

	_, err := svc.AddItem(ctx, alice, product.ID, 5)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveItem(ctx, alice, product.ID, true))

	view, err := svc.GetCart(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestCarts_AreIsolatedPerUser(t *testing.T) {
	db := openTestDB(t)
	svc := newCartService(db)
	ctx := context.Background()

	category := seedCategory(t, db, "Books", "books", nil)
	product := seedProduct(t, db, "Novel", category.ID, 1500, 10, true)

	alice := actorFor(seedUser(t, db, "alice", false, false))
	bob := actorFor(seedUser(t, db, "bob", false, false))

	_, err := svc.AddItem(ctx, alice, product.ID, 2)
	require.NoError(t, err)

	view, err := svc.GetCart(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	err = svc.RemoveItem(ctx, bob, product.ID, true)
	assert.ErrorIs(t, err, services.ErrNotFound)
}
