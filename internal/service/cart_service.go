package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"storefront-api/internal/model"
)

type CartService struct {
	cart     CartStore
	products ProductStore
}

func NewCartService(cart CartStore, products ProductStore) *CartService {
	return &CartService{cart: cart, products: products}
}

// List returns the caller's cart with each item's product populated.
func (s *CartService) List(ctx context.Context, userID string) ([]model.CartItem, error) {
	items, err := s.cart.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range items {
		if product, ok := products[items[i].ProductID]; ok {
			items[i].Product = &product
		}
	}
	return items, nil
}

func (s *CartService) Add(ctx context.Context, userID string, req model.AddToCartRequest) (model.CartItem, error) {
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	product, err := s.products.FindByID(ctx, strings.TrimSpace(req.ProductID))
	if err != nil {
		return model.CartItem{}, err
	}
	if product.Deleted {
		return model.CartItem{}, model.ErrProductNotFound
	}

	item := model.CartItem{
		ID:        uuid.NewString(),
		UserID:    userID,
		ProductID: product.ID,
		Quantity:  req.Quantity,
		Size:      strings.TrimSpace(req.Size),
		Color:     strings.TrimSpace(req.Color),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.cart.Create(ctx, item); err != nil {
		return model.CartItem{}, err
	}

	item.Product = &product
	return item, nil
}

func (s *CartService) Update(ctx context.Context, userID string, id string, req model.UpdateCartItemRequest) (model.CartItem, error) {
	item, err := s.cart.FindByID(ctx, id, userID)
	if err != nil {
		return model.CartItem{}, err
	}

	if req.Quantity != nil {
		if *req.Quantity <= 0 {
			return model.CartItem{}, fmt.Errorf("%w: quantity must be positive", model.ErrInvalidInput)
		}
		item.Quantity = *req.Quantity
	}
	if req.Size != nil {
		item.Size = strings.TrimSpace(*req.Size)
	}
	if req.Color != nil {
		item.Color = strings.TrimSpace(*req.Color)
	}

	if err := s.cart.Update(ctx, item); err != nil {
		return model.CartItem{}, err
	}

	product, err := s.products.FindByID(ctx, item.ProductID)
	if err == nil {
		item.Product = &product
	}
	return item, nil
}

func (s *CartService) Remove(ctx context.Context, userID string, id string) error {
	return s.cart.Delete(ctx, id, userID)
}
