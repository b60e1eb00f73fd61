package service

import (
	"context"
	"time"

	"storefront-api/internal/model"
)

type UserStore interface {
	FindByID(ctx context.Context, id string) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	Create(ctx context.Context, u model.User) error
	UpdateProfile(ctx context.Context, u model.User) error
}

type SessionStore interface {
	Get(ctx context.Context, sid string) (model.Session, error)
	Set(ctx context.Context, s model.Session) error
	Destroy(ctx context.Context, sid string) error
	CleanExpired(ctx context.Context, now time.Time) (int64, error)
}

type ProductStore interface {
	List(ctx context.Context, q model.ProductQuery) (model.ProductList, error)
	FindByID(ctx context.Context, id string) (model.Product, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]model.Product, error)
	Create(ctx context.Context, p model.Product) error
	Update(ctx context.Context, p model.Product) error
}

type OptionStore interface {
	List(ctx context.Context) ([]model.Option, error)
	Create(ctx context.Context, o model.Option) error
}

type CartStore interface {
	ListByUser(ctx context.Context, userID string) ([]model.CartItem, error)
	FindByID(ctx context.Context, id string, userID string) (model.CartItem, error)
	Create(ctx context.Context, item model.CartItem) error
	Update(ctx context.Context, item model.CartItem) error
	Delete(ctx context.Context, id string, userID string) error
}

type OrderStore interface {
	Create(ctx context.Context, o model.Order) error
	FindByID(ctx context.Context, id string) (model.Order, error)
	ListByUser(ctx context.Context, userID string) ([]model.Order, error)
	List(ctx context.Context, q model.OrderQuery) (model.OrderList, error)
	UpdateStatus(ctx context.Context, o model.Order) error
	Delete(ctx context.Context, id string) error
}
