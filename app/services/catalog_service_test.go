package services_test

import (
	"context"
	"testing"

	"github.com/Rakhulsr/go-marketplace/app/models"
	"github.com/Rakhulsr/go-marketplace/app/repositories"
	"github.com/Rakhulsr/go-marketplace/app/services"
	"github.com/Rakhulsr/go-marketplace/app/utils/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCatalogService(db *gorm.DB) *services.CatalogService {
	return services.NewCatalogService(
		repositories.NewCategoryRepository(db),
		repositories.NewProductRepository(db),
		cache.NewProductCache(nil, services.SubtreeCacheTTL),
	)
}

func TestProductsInSubtree_CollectsDescendants(t *testing.T) {
	db := openTestDB(t)
	svc := newCatalogService(db)
	ctx := context.Background()

	electronics := seedCategory(t, db, "Electronics", "electronics", nil)
	phones := seedCategory(t, db, "Phones", "electronics-phones", &electronics.ID)
	clothing := seedCategory(t, db, "Clothing", "clothing", nil)

	a := seedProduct(t, db, "Product A", electronics.ID, 100, 5, true)
	b := seedProduct(t, db, "Product B", phones.ID, 200, 3, true)
	seedProduct(t, db, "Product C", phones.ID, 300, 3, false) // inactive
	seedProduct(t, db, "Product D", phones.ID, 400, 0, true)  // out of stock
	seedProduct(t, db, "Product E", clothing.ID, 500, 9, true)

	products, err := svc.ProductsInSubtree(ctx, "electronics")
	require.NoError(t, err)

	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	assert.ElementsMatch(t, []string{a.ID, b.ID}, ids)
}

func TestProductsInSubtree_UnknownCategory(t *testing.T) {
	db := openTestDB(t)
	svc := newCatalogService(db)

	_, err := svc.ProductsInSubtree(context.Background(), "no-such-slug")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestProductsInSubtree_NoDuplicatesAcrossLevels(t *testing.T) {
	db := openTestDB(t)
	svc := newCatalogService(db)

	root := seedCategory(t, db, "Root", "root", nil)
	mid := seedCategory(t, db, "Mid", "root-mid", &root.ID)
	leaf := seedCategory(t, db, "Leaf", "root-mid-leaf", &mid.ID)

	seedProduct(t, db, "P1", root.ID, 10, 1, true)
	seedProduct(t, db, "P2", mid.ID, 10, 1, true)
	seedProduct(t, db, "P3", leaf.ID, 10, 1, true)

	products, err := svc.ProductsInSubtree(context.Background(), "root")
	require.NoError(t, err)
	require.Len(t, products, 3)

	seen := map[string]bool{}
	for _, p := range products {
		assert.False(t, seen[p.ID], "product %s listed twice", p.ID)
		seen[p.ID] = true
	}
}

func TestProductsInSubtree_TerminatesOnCorruptedCycle(t *testing.T) {
	db := openTestDB(t)
	svc := newCatalogService(db)

	a := seedCategory(t, db, "A", "a", nil)
	b := seedCategory(t, db, "B", "a-b", &a.ID)
	// Corrupt the tree directly: A becomes a child of its own child.
	require.NoError(t, db.Model(&models.Category{}).Where("id = ?", a.ID).Update("parent_id", b.ID).Error)

	p := seedProduct(t, db, "P", b.ID, 10, 1, true)

	products, err := svc.ProductsInSubtree(context.Background(), "a")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, p.ID, products[0].ID)
}

func TestCreateCategory_SlugChain(t *testing.T) {
	db := openTestDB(t)
	svc := newCatalogService(db)
	ctx := context.Background()
	admin := actorFor(seedUser(t, db, "admin", true, false))

	root, err := svc.CreateCategory(ctx, admin, services.CreateCategoryInput{Name: "Home Audio"})
	require.NoError(t, err)
	assert.Equal(t, "home-audio", root.Slug)

	child, err := svc.CreateCategory(ctx, admin, services.CreateCategoryInput{Name: "Speakers", ParentID: &root.ID})
	require.NoError(t, err)
	assert.Equal(t, root.Slug+"-speakers", child.Slug)
}

func TestCreateCategory_DanglingParentFallsBack(t *testing.T) {
	db := openTestDB(t)
	svc := newCatalogService(db)
	admin := actorFor(seedUser(t, db, "admin", true, false))

	missing := "does-not-exist"
	category, err := svc.CreateCategory(context.Background(), admin, services.CreateCategoryInput{Name: "Orphans", ParentID: &missing})
	require.NoError(t, err)
	assert.Equal(t, "-orphans", category.Slug)
}

func TestCreateCategory_RequiresAdmin(t *testing.T) {
	db := openTestDB(t)
	svc := newCatalogService(db)
	customer := actorFor(seedUser(t, db, "customer", false, false))

	_, err := svc.CreateCategory(context.Background(), customer, services.CreateCategoryInput{Name: "Nope"})
	assert.ErrorIs(t, err, services.ErrForbidden)
}

func TestAssignParent_RejectsCycles(t *testing.T) {
	db := openTestDB(t)
	svc := newCatalogService(db)
	ctx := context.Background()
	admin := actorFor(seedUser(t, db, "admin", true, false))

	a := seedCategory(t, db, "A", "a", nil)
	b := seedCategory(t, db, "B", "a-b", &a.ID)
	c := seedCategory(t, db, "C", "a-b-c", &b.ID)

	_, err := svc.AssignParent(ctx, admin, a.ID, &c.ID)
	assert.ErrorIs(t, err, services.ErrConflict)

	_, err = svc.AssignParent(ctx, admin, a.ID, &a.ID)
	assert.ErrorIs(t, err, services.ErrConflict)

	// A legal reparent still works and re-slugs the category.
	moved, err := svc.AssignParent(ctx, admin, c.ID, &a.ID)
	require.NoError(t, err)
	assert.Equal(t, "a-c", moved.Slug)
}

func TestAssignParent_ReslugsDescendants(t *testing.T) {
	db := openTestDB(t)
	svc := newCatalogService(db)
	ctx := context.Background()
	admin := actorFor(seedUser(t, db, "admin", true, false))

	a := seedCategory(t, db, "A", "a", nil)
	b := seedCategory(t, db, "B", "a-b", &a.ID)
	c := seedCategory(t, db, "C", "a-b-c", &b.ID)
	d := seedCategory(t, db, "D", "a-b-c-d", &c.ID)

	// Re-homing B as a root must rewrite the whole chain below it.
	moved, err := svc.AssignParent(ctx, admin, b.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "b", moved.Slug)

	var reloaded models.Category
	require.NoError(t, db.First(&reloaded, "id = ?", c.ID).Error)
	assert.Equal(t, "b-c", reloaded.Slug)
	// Reset between lookups: First also filters on the primary key already
	// present in the destination struct.
	reloaded = models.Category{}
	require.NoError(t, db.First(&reloaded, "id = ?", d.ID).Error)
	assert.Equal(t, "b-c-d", reloaded.Slug)

	// Moving B under another root chains the subtree from the new parent.
	other := seedCategory(t, db, "Other", "other", nil)
	moved, err = svc.AssignParent(ctx, admin, b.ID, &other.ID)
	require.NoError(t, err)
	assert.Equal(t, "other-b", moved.Slug)

	reloaded = models.Category{}
	require.NoError(t, db.First(&reloaded, "id = ?", d.ID).Error)
	assert.Equal(t, "other-b-c-d", reloaded.Slug)
}

func TestCreateProduct_CustomerRejected(t *testing.T) {
	db := openTestDB(t)
	svc := newCatalogService(db)
	ctx := context.Background()

	category := seedCategory(t, db, "Books", "books", nil)
	customer := actorFor(seedUser(t, db, "customer", false, false))
	supplier := actorFor(seedUser(t, db, "supplier", false, true))

	_, err := svc.CreateProduct(ctx, customer, services.CreateProductInput{Name: "X", CategoryID: category.ID})
	assert.ErrorIs(t, err, services.ErrForbidden)

	product, err := svc.CreateProduct(ctx, supplier, services.CreateProductInput{
		Name:       "Go in Practice",
		Price:      4500,
		Stock:      10,
		CategoryID: category.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "go-in-practice", product.Slug)
	require.NotNil(t, product.SupplierID)
	assert.Equal(t, supplier.ID, *product.SupplierID)
}

func TestDeleteProduct_OwnerOrAdminOnly(t *testing.T) {
	db := openTestDB(t)
	svc := newCatalogService(db)
	ctx := context.Background()

	category := seedCategory(t, db, "Books", "books", nil)
	owner := seedUser(t, db, "owner", false, true)
	other := seedUser(t, db, "other", false, true)

	product := seedProduct(t, db, "Mine", category.ID, 100, 5, true)
	require.NoError(t, db.Model(product).Update("supplier_id", owner.ID).Error)

	err := svc.DeleteProduct(ctx, actorFor(other), product.ID)
	assert.ErrorIs(t, err, services.ErrForbidden)

	require.NoError(t, svc.DeleteProduct(ctx, actorFor(owner), product.ID))

	_, err = svc.ProductDetail(ctx, product.Slug)
	assert.ErrorIs(t, err, services.ErrNotFound)

	// Already deleted.
	err = svc.DeleteProduct(ctx, actorFor(owner), product.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}
