package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"storefront-api/internal/model"
	"storefront-api/internal/repository"
)

func seedUser(t *testing.T, users *repository.MemoryUserStore, email string, password string, role string) model.User {
	t.Helper()

	salt, err := NewSalt()
	require.NoError(t, err)
	hash, err := HashPassword(password, salt)
	require.NoError(t, err)

	user := model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Salt:         salt,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func seedProduct(t *testing.T, products *repository.MemoryProductStore, title string, price float64, stock int) model.Product {
	t.Helper()

	product := model.Product{
		ID:            uuid.NewString(),
		Title:         title,
		Price:         price,
		DiscountPrice: model.ComputeDiscountPrice(price, 0),
		Stock:         stock,
		Brand:         "acme",
		Category:      "smartphones",
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}
	require.NoError(t, products.Create(context.Background(), product))
	return product
}
