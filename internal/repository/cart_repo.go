package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-api/internal/model"
)

type CartRepository struct {
	pool *pgxpool.Pool
}

func NewCartRepository(pool *pgxpool.Pool) *CartRepository {
	return &CartRepository{pool: pool}
}

func (r *CartRepository) ListByUser(ctx context.Context, userID string) ([]model.CartItem, error) {
	if !validID(userID) {
		return []model.CartItem{}, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, product_id, quantity, size, color, created_at
		 FROM cart_items WHERE user_id = $1 ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()

	items := make([]model.CartItem, 0)
	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// FindByID only returns items owned by userID.
func (r *CartRepository) FindByID(ctx context.Context, id string, userID string) (model.CartItem, error) {
	if !validID(id) || !validID(userID) {
		return model.CartItem{}, model.ErrCartItemNotFound
	}

	item, err := scanCartItem(r.pool.QueryRow(ctx,
		`SELECT id, user_id, product_id, quantity, size, color, created_at
		 FROM cart_items WHERE id = $1 AND user_id = $2`, id, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.CartItem{}, model.ErrCartItemNotFound
	}
	if err != nil {
		return model.CartItem{}, fmt.Errorf("find cart item: %w", err)
	}
	return item, nil
}

func (r *CartRepository) Create(ctx context.Context, item model.CartItem) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO cart_items (id, user_id, product_id, quantity, size, color, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		item.ID, item.UserID, item.ProductID, item.Quantity, item.Size, item.Color, item.CreatedAt)
	if err != nil {
		return fmt.Errorf("create cart item: %w", err)
	}
	return nil
}

func (r *CartRepository) Update(ctx context.Context, item model.CartItem) error {
	if !validID(item.ID) || !validID(item.UserID) {
		return model.ErrCartItemNotFound
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE cart_items SET quantity = $3, size = $4, color = $5 WHERE id = $1 AND user_id = $2`,
		item.ID, item.UserID, item.Quantity, item.Size, item.Color)
	if err != nil {
		return fmt.Errorf("update cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCartItemNotFound
	}
	return nil
}

func (r *CartRepository) Delete(ctx context.Context, id string, userID string) error {
	if !validID(id) || !validID(userID) {
		return model.ErrCartItemNotFound
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCartItemNotFound
	}
	return nil
}

func scanCartItem(row pgx.Row) (model.CartItem, error) {
	var item model.CartItem
	err := row.Scan(&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.Size, &item.Color, &item.CreatedAt)
	return item, err
}
