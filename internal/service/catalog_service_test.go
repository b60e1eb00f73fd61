package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-api/internal/model"
	"storefront-api/internal/repository"
)

var (
	adminActor = model.Identity{ID: "admin-1", Role: model.RoleAdmin}
	userActor  = model.Identity{ID: "user-1", Role: model.RoleUser}
)

func newTestCatalog() (*CatalogService, *repository.MemoryProductStore) {
	products := repository.NewMemoryProductStore()
	return NewCatalogService(products, repository.NewMemoryOptionStore(), repository.NewMemoryOptionStore()), products
}

func TestCatalogService_CreateProduct(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestCatalog()
	req := model.CreateProductRequest{
		Title:              "Phone",
		Price:              999,
		DiscountPercentage: 12.5,
		Stock:              3,
		Brand:              "acme",
		Category:           "smartphones",
	}

	_, err := svc.CreateProduct(ctx, userActor, req)
	assert.ErrorIs(t, err, model.ErrForbidden)

	product, err := svc.CreateProduct(ctx, adminActor, req)
	require.NoError(t, err)
	assert.Equal(t, int64(874), product.DiscountPrice)

	req.Price = 0
	_, err = svc.CreateProduct(ctx, adminActor, req)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestCatalogService_SoftDeletedProducts(t *testing.T) {
	ctx := context.Background()
	svc, products := newTestCatalog()
	visible := seedProduct(t, products, "Visible", 100, 1)
	hidden := seedProduct(t, products, "Hidden", 100, 1)

	deleted := true
	_, err := svc.UpdateProduct(ctx, adminActor, hidden.ID, model.UpdateProductRequest{Deleted: &deleted})
	require.NoError(t, err)

	list, err := svc.ListProducts(ctx, userActor, model.ProductQuery{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, visible.ID, list.Items[0].ID)
	assert.Equal(t, int64(1), list.Total)

	list, err = svc.ListProducts(ctx, adminActor, model.ProductQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.Total)

	_, err = svc.GetProduct(ctx, userActor, hidden.ID)
	assert.ErrorIs(t, err, model.ErrProductNotFound)
	_, err = svc.GetProduct(ctx, adminActor, hidden.ID)
	assert.NoError(t, err)
}

func TestCatalogService_ListProducts_FiltersAndPages(t *testing.T) {
	ctx := context.Background()
	svc, products := newTestCatalog()
	cheap := seedProduct(t, products, "Cheap", 10, 1)
	mid := seedProduct(t, products, "Mid", 50, 1)
	dear := seedProduct(t, products, "Dear", 90, 1)

	list, err := svc.ListProducts(ctx, userActor, model.ProductQuery{Sort: "price", Order: "desc", Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), list.Total)
	require.Len(t, list.Items, 2)
	assert.Equal(t, dear.ID, list.Items[0].ID)
	assert.Equal(t, mid.ID, list.Items[1].ID)

	list, err = svc.ListProducts(ctx, userActor, model.ProductQuery{Sort: "price", Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, dear.ID, list.Items[0].ID)

	list, err = svc.ListProducts(ctx, userActor, model.ProductQuery{Brands: []string{"other"}})
	require.NoError(t, err)
	assert.Empty(t, list.Items)

	list, err = svc.ListProducts(ctx, userActor, model.ProductQuery{Categories: []string{"smartphones"}, Sort: "price"})
	require.NoError(t, err)
	require.Len(t, list.Items, 3)
	assert.Equal(t, cheap.ID, list.Items[0].ID)
}

func TestCatalogService_Options(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestCatalog()

	_, err := svc.CreateCategory(ctx, userActor, model.CreateOptionRequest{Label: "Laptops", Value: "laptops"})
	assert.ErrorIs(t, err, model.ErrForbidden)

	_, err = svc.CreateBrand(ctx, adminActor, model.CreateOptionRequest{Label: "Acme"})
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	_, err = svc.CreateCategory(ctx, adminActor, model.CreateOptionRequest{Label: "Laptops", Value: "laptops"})
	require.NoError(t, err)

	categories, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "laptops", categories[0].Value)

	brands, err := svc.ListBrands(ctx)
	require.NoError(t, err)
	assert.Empty(t, brands)
}
