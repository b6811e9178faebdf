package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Rakhulsr/go-marketplace/app/helpers"
	"github.com/Rakhulsr/go-marketplace/app/models"
	"github.com/Rakhulsr/go-marketplace/app/repositories"
	"github.com/Rakhulsr/go-marketplace/app/utils/cache"
	"github.com/Rakhulsr/go-marketplace/app/utils/metrics"
	"github.com/google/uuid"
)

type CatalogService struct {
	categoryRepo repositories.CategoryRepositoryImpl
	productRepo  repositories.ProductRepositoryImpl
	cache        *cache.ProductCache
}

func NewCatalogService(categoryRepo repositories.CategoryRepositoryImpl, productRepo repositories.ProductRepositoryImpl, productCache *cache.ProductCache) *CatalogService {
	return &CatalogService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		cache:        productCache,
	}
}

type CreateCategoryInput struct {
	Name     string  `json:"name" validate:"required,max=100"`
	ParentID *string `json:"parent_id"`
}

// CreateCategory is admin-only. The slug of a child is the parent's current
// slug joined with the slugified name; a dangling parent reference degrades
// to an empty parent slug rather than failing.
func (s *CatalogService) CreateCategory(ctx context.Context, actor Actor, in CreateCategoryInput) (*models.Category, error) {
	if !actor.IsAdmin {
		return nil, fmt.Errorf("create category: %w", ErrForbidden)
	}

	slugVal := helpers.GenerateSlug(in.Name)
	if in.ParentID != nil {
		parent, err := s.categoryRepo.GetByID(ctx, *in.ParentID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up parent category: %w", err)
		}
		parentSlug := ""
		if parent != nil {
			parentSlug = parent.Slug
		}
		slugVal = helpers.GenerateCategorySlug(in.Name, parentSlug)
	}

	category := &models.Category{
		ID:       uuid.New().String(),
		Name:     in.Name,
		Slug:     slugVal,
		ParentID: in.ParentID,
		IsActive: true,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.invalidateAncestors(ctx, category)
	return category, nil
}

// AssignParent re-homes a category under a new parent. A parent chain that
// loops back to the category itself is rejected before anything is written,
// keeping the tree acyclic so the subtree walk always terminates.
func (s *CatalogService) AssignParent(ctx context.Context, actor Actor, categoryID string, newParentID *string) (*models.Category, error) {
	if !actor.IsAdmin {
		return nil, fmt.Errorf("assign parent: %w", ErrForbidden)
	}

	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("category %s: %w", categoryID, ErrNotFound)
	}

	s.invalidateAncestors(ctx, category)

	if newParentID == nil {
		category.ParentID = nil
		category.Slug = helpers.GenerateSlug(category.Name)
	} else {
		if *newParentID == categoryID {
			return nil, fmt.Errorf("category cannot be its own parent: %w", ErrConflict)
		}
		parent, err := s.categoryRepo.GetByID(ctx, *newParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, fmt.Errorf("parent category %s: %w", *newParentID, ErrNotFound)
		}
		cyclic, err := s.isDescendantOf(ctx, parent, categoryID)
		if err != nil {
			return nil, err
		}
		if cyclic {
			return nil, fmt.Errorf("assignment would create a category cycle: %w", ErrConflict)
		}
		category.ParentID = newParentID
		category.Slug = helpers.GenerateCategorySlug(category.Name, parent.Slug)
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	if err := s.reslugDescendants(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to re-slug subtree: %w", err)
	}

	s.invalidateAncestors(ctx, category)
	return category, nil
}

// reslugDescendants rewrites the slug of every category under root so child
// slugs keep chaining from their parent's current slug after a reparent.
// Same stack walk as ProductsInSubtree.
func (s *CatalogService) reslugDescendants(ctx context.Context, root *models.Category) error {
	visited := map[string]bool{root.ID: true}
	stack := []models.Category{*root}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		children, err := s.categoryRepo.GetChildren(ctx, current.ID)
		if err != nil {
			return err
		}
		for i := range children {
			child := children[i]
			if visited[child.ID] {
				continue
			}
			visited[child.ID] = true

			oldSlug := child.Slug
			child.Slug = helpers.GenerateCategorySlug(child.Name, current.Slug)
			if child.Slug != oldSlug {
				if err := s.categoryRepo.Update(ctx, &child); err != nil {
					return err
				}
				s.cache.InvalidateSubtrees(ctx, oldSlug, child.Slug)
			}
			stack = append(stack, child)
		}
	}
	return nil
}

// isDescendantOf walks the ancestor chain of start looking for ancestorID.
func (s *CatalogService) isDescendantOf(ctx context.Context, start *models.Category, ancestorID string) (bool, error) {
	seen := map[string]bool{}
	current := start
	for current != nil && current.ParentID != nil {
		if seen[current.ID] {
			// Existing corruption; do not loop forever over it.
			return true, nil
		}
		seen[current.ID] = true

		if *current.ParentID == ancestorID {
			return true, nil
		}
		next, err := s.categoryRepo.GetByID(ctx, *current.ParentID)
		if err != nil {
			return false, err
		}
		current = next
	}
	return false, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categoryRepo.GetAllActive(ctx)
}

type CreateProductInput struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
	Price       int64  `json:"price" validate:"gte=0"`
	ImageURL    string `json:"image_url"`
	Stock       int    `json:"stock" validate:"gte=0"`
	CategoryID  string `json:"category" validate:"required"`
}

// CreateProduct rejects customer-only actors; suppliers and admins may list
// products. The creating supplier owns the listing.
func (s *CatalogService) CreateProduct(ctx context.Context, actor Actor, in CreateProductInput) (*models.Product, error) {
	if !actor.IsAdmin && !actor.IsSupplier {
		return nil, fmt.Errorf("create product: %w", ErrForbidden)
	}

	category, err := s.categoryRepo.GetByID(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("category %s: %w", in.CategoryID, ErrNotFound)
	}

	supplierID := actor.ID
	product := &models.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Slug:        helpers.GenerateSlug(in.Name),
		Description: in.Description,
		Price:       in.Price,
		ImageURL:    in.ImageURL,
		Stock:       in.Stock,
		SupplierID:  &supplierID,
		CategoryID:  in.CategoryID,
		IsActive:    true,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.invalidateAncestors(ctx, category)
	return product, nil
}

// ProductsInSubtree collects every sellable product under the category with
// the given slug, its own products included. The walk uses an explicit stack
// and a visited set so a corrupted parent chain can never hang the request.
func (s *CatalogService) ProductsInSubtree(ctx context.Context, categorySlug string) ([]models.Product, error) {
	root, err := s.categoryRepo.GetBySlug(ctx, categorySlug)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, fmt.Errorf("category %s: %w", categorySlug, ErrNotFound)
	}

	if s.cache.Enabled() {
		var cached []models.Product
		if s.cache.Get(ctx, cache.SubtreeKey(categorySlug), &cached) {
			metrics.CacheHits.Inc()
			return cached, nil
		}
		metrics.CacheMisses.Inc()
	}

	products := []models.Product{}
	visited := map[string]bool{}
	stack := []models.Category{*root}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[current.ID] {
			continue
		}
		visited[current.ID] = true

		batch, err := s.productRepo.GetSellableByCategoryID(ctx, current.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load products for category %s: %w", current.ID, err)
		}
		products = append(products, batch...)

		children, err := s.categoryRepo.GetChildren(ctx, current.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load subcategories of %s: %w", current.ID, err)
		}
		stack = append(stack, children...)
	}

	s.cache.Set(ctx, cache.SubtreeKey(categorySlug), products)
	return products, nil
}

func (s *CatalogService) ProductDetail(ctx context.Context, productSlug string) (*models.Product, error) {
	product, err := s.productRepo.GetActiveBySlug(ctx, productSlug)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("product %s: %w", productSlug, ErrNotFound)
	}
	return product, nil
}

// DeleteProduct soft-deletes. Only the owning supplier or an admin may do it.
func (s *CatalogService) DeleteProduct(ctx context.Context, actor Actor, productID string) error {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil || !product.IsActive {
		return fmt.Errorf("product %s: %w", productID, ErrNotFound)
	}

	owns := product.SupplierID != nil && *product.SupplierID == actor.ID
	if !actor.IsAdmin && !owns {
		return fmt.Errorf("delete product: %w", ErrForbidden)
	}

	product.IsActive = false
	if err := s.productRepo.Update(ctx, product); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if category, err := s.categoryRepo.GetByID(ctx, product.CategoryID); err == nil && category != nil {
		s.invalidateAncestors(ctx, category)
	}
	return nil
}

// invalidateAncestors drops cached subtree listings for the category and
// every ancestor, since all of them include this category's products.
func (s *CatalogService) invalidateAncestors(ctx context.Context, category *models.Category) {
	if !s.cache.Enabled() || category == nil {
		return
	}

	slugs := []string{}
	seen := map[string]bool{}
	current := category
	for current != nil && !seen[current.ID] {
		seen[current.ID] = true
		slugs = append(slugs, current.Slug)
		if current.ParentID == nil {
			break
		}
		next, err := s.categoryRepo.GetByID(ctx, *current.ParentID)
		if err != nil {
			log.Printf("cache invalidation: failed to walk ancestors of %s: %v", category.ID, err)
			break
		}
		current = next
	}

	s.cache.InvalidateSubtrees(ctx, slugs...)
}

// SubtreeCacheTTL is how long a cached subtree listing may serve reads
// before a miss forces a rebuild.
const SubtreeCacheTTL = 10 * time.Minute
