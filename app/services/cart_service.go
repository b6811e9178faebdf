package services

import (
	"context"
	"fmt"

	"github.com/Rakhulsr/go-marketplace/app/models"
	"github.com/Rakhulsr/go-marketplace/app/repositories"
	"github.com/Rakhulsr/go-marketplace/app/utils/format"
)

type CartService struct {
	cartRepo     repositories.CartRepositoryImpl
	cartItemRepo repositories.CartItemRepositoryImpl
	productRepo  repositories.ProductRepositoryImpl
}

func NewCartService(cartRepo repositories.CartRepositoryImpl, cartItemRepo repositories.CartItemRepositoryImpl, productRepo repositories.ProductRepositoryImpl) *CartService {
	return &CartService{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
	}
}

type CartLine struct {
	Product         *models.Product `json:"product"`
	Quantity        int             `json:"quantity"`
	Subtotal        int64           `json:"subtotal"`
	SubtotalDisplay string          `json:"subtotal_display"`
}

type CartView struct {
	Items        []CartLine `json:"items"`
	Total        int64      `json:"total"`
	TotalDisplay string     `json:"total_display"`
}

// AddItem keeps one active line per (user, product); adding again bumps the
// quantity.
func (s *CartService) AddItem(ctx context.Context, actor Actor, productID string, qty int) (*models.CartItem, error) {
	if qty < 1 {
		return nil, fmt.Errorf("quantity must be at least 1: %w", ErrValidation)
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, fmt.Errorf("product %s: %w", productID, ErrNotFound)
	}
	if product.Stock < qty {
		return nil, fmt.Errorf("not enough stock for product %s: %w", product.Name, ErrConflict)
	}

	cart, err := s.cartRepo.GetOrCreateByUserID(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create cart: %w", err)
	}

	item, err := s.cartItemRepo.GetActiveByUserAndProduct(ctx, actor.ID, productID)
	if err != nil {
		return nil, err
	}

	if item != nil {
		item.Quantity += qty
		if err := s.cartItemRepo.Update(ctx, item); err != nil {
			return nil, fmt.Errorf("failed to update cart item: %w", err)
		}
		return item, nil
	}

	item = &models.CartItem{
		UserID:    actor.ID,
		CartID:    cart.ID,
		ProductID: productID,
		Quantity:  qty,
		IsActive:  true,
	}
	if err := s.cartItemRepo.Add(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}
	return item, nil
}

// RemoveItem is the single removal operation. all=false decrements one unit,
// deactivating the line when the last unit goes; all=true zeroes the line
// outright. Both historical routes map onto it.
func (s *CartService) RemoveItem(ctx context.Context, actor Actor, productID string, all bool) error {
	item, err := s.cartItemRepo.GetActiveByUserAndProduct(ctx, actor.ID, productID)
	if err != nil {
		return err
	}
	if item == nil {
		return fmt.Errorf("product %s is not in the cart: %w", productID, ErrNotFound)
	}

	if !all && item.Quantity > 1 {
		item.Quantity--
	} else {
		item.Quantity = 0
		item.IsActive = false
	}

	if err := s.cartItemRepo.Update(ctx, item); err != nil {
		return fmt.Errorf("failed to update cart item: %w", err)
	}
	return nil
}

// GetCart prices every active line at the product's current price.
func (s *CartService) GetCart(ctx context.Context, actor Actor) (*CartView, error) {
	items, err := s.cartItemRepo.GetActiveByUser(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	view := &CartView{Items: []CartLine{}}
	for _, item := range items {
		if item.Product == nil {
			continue
		}
		subtotal := item.Product.Price * int64(item.Quantity)
		view.Items = append(view.Items, CartLine{
			Product:         item.Product,
			Quantity:        item.Quantity,
			Subtotal:        subtotal,
			SubtotalDisplay: format.FormatPrice(subtotal),
		})
		view.Total += subtotal
	}
	view.TotalDisplay = format.FormatPrice(view.Total)

	return view, nil
}
