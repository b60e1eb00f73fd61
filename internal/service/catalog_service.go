package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"storefront-api/internal/model"
)

const maxPageLimit = 100

type CatalogService struct {
	products   ProductStore
	categories OptionStore
	brands     OptionStore
}

func NewCatalogService(products ProductStore, categories OptionStore, brands OptionStore) *CatalogService {
	return &CatalogService{products: products, categories: categories, brands: brands}
}

// ListProducts hides soft-deleted products from everyone but administrators.
func (s *CatalogService) ListProducts(ctx context.Context, actor model.Identity, q model.ProductQuery) (model.ProductList, error) {
	q.IncludeDeleted = actor.IsAdmin()
	if q.Limit > maxPageLimit {
		q.Limit = maxPageLimit
	}
	return s.products.List(ctx, q)
}

func (s *CatalogService) GetProduct(ctx context.Context, actor model.Identity, id string) (model.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return model.Product{}, err
	}
	if product.Deleted && !actor.IsAdmin() {
		return model.Product{}, model.ErrProductNotFound
	}
	return product, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, actor model.Identity, req model.CreateProductRequest) (model.Product, error) {
	if !actor.IsAdmin() {
		return model.Product{}, model.ErrForbidden
	}

	now := time.Now().UTC()
	product := model.Product{
		ID:                 uuid.NewString(),
		Title:              strings.TrimSpace(req.Title),
		Description:        strings.TrimSpace(req.Description),
		Price:              req.Price,
		DiscountPercentage: req.DiscountPercentage,
		Rating:             req.Rating,
		Stock:              req.Stock,
		Brand:              strings.TrimSpace(req.Brand),
		Category:           strings.TrimSpace(req.Category),
		Thumbnail:          strings.TrimSpace(req.Thumbnail),
		Images:             req.Images,
		Colors:             req.Colors,
		Sizes:              req.Sizes,
		Highlights:         req.Highlights,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := validateProduct(product); err != nil {
		return model.Product{}, err
	}
	product.DiscountPrice = model.ComputeDiscountPrice(product.Price, product.DiscountPercentage)

	if err := s.products.Create(ctx, product); err != nil {
		return model.Product{}, err
	}
	return product, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, actor model.Identity, id string, req model.UpdateProductRequest) (model.Product, error) {
	if !actor.IsAdmin() {
		return model.Product{}, model.ErrForbidden
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return model.Product{}, err
	}

	applyProductUpdate(&product, req)
	if err := validateProduct(product); err != nil {
		return model.Product{}, err
	}
	product.DiscountPrice = model.ComputeDiscountPrice(product.Price, product.DiscountPercentage)
	product.UpdatedAt = time.Now().UTC()

	if err := s.products.Update(ctx, product); err != nil {
		return model.Product{}, err
	}
	return product, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]model.Option, error) {
	return s.categories.List(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, actor model.Identity, req model.CreateOptionRequest) (model.Option, error) {
	return createOption(ctx, s.categories, actor, req)
}

func (s *CatalogService) ListBrands(ctx context.Context) ([]model.Option, error) {
	return s.brands.List(ctx)
}

func (s *CatalogService) CreateBrand(ctx context.Context, actor model.Identity, req model.CreateOptionRequest) (model.Option, error) {
	return createOption(ctx, s.brands, actor, req)
}

func createOption(ctx context.Context, store OptionStore, actor model.Identity, req model.CreateOptionRequest) (model.Option, error) {
	if !actor.IsAdmin() {
		return model.Option{}, model.ErrForbidden
	}

	option := model.Option{
		ID:    uuid.NewString(),
		Label: strings.TrimSpace(req.Label),
		Value: strings.TrimSpace(req.Value),
	}
	if option.Label == "" || option.Value == "" {
		return model.Option{}, fmt.Errorf("%w: label and value are required", model.ErrInvalidInput)
	}

	if err := store.Create(ctx, option); err != nil {
		return model.Option{}, err
	}
	return option, nil
}

func applyProductUpdate(p *model.Product, req model.UpdateProductRequest) {
	if req.Title != nil {
		p.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		p.Description = strings.TrimSpace(*req.Description)
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.DiscountPercentage != nil {
		p.DiscountPercentage = *req.DiscountPercentage
	}
	if req.Rating != nil {
		p.Rating = *req.Rating
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.Brand != nil {
		p.Brand = strings.TrimSpace(*req.Brand)
	}
	if req.Category != nil {
		p.Category = strings.TrimSpace(*req.Category)
	}
	if req.Thumbnail != nil {
		p.Thumbnail = strings.TrimSpace(*req.Thumbnail)
	}
	if req.Images != nil {
		p.Images = *req.Images
	}
	if req.Deleted != nil {
		p.Deleted = *req.Deleted
	}
}

func validateProduct(p model.Product) error {
	switch {
	case p.Title == "":
		return fmt.Errorf("%w: title is required", model.ErrInvalidInput)
	case p.Price <= 0:
		return fmt.Errorf("%w: price must be positive", model.ErrInvalidInput)
	case p.DiscountPercentage < 0 || p.DiscountPercentage > 99:
		return fmt.Errorf("%w: discount_percentage must be between 0 and 99", model.ErrInvalidInput)
	case p.Rating < 0 || p.Rating > 5:
		return fmt.Errorf("%w: rating must be between 0 and 5", model.ErrInvalidInput)
	case p.Stock < 0:
		return fmt.Errorf("%w: stock cannot be negative", model.ErrInvalidInput)
	case p.Brand == "" || p.Category == "":
		return fmt.Errorf("%w: brand and category are required", model.ErrInvalidInput)
	}
	return nil
}
