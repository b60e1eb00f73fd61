package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-api/internal/database"
	"storefront-api/internal/model"
)

const orderColumns = `id, user_id, items, total_amount, total_items, payment_method, payment_status,
	status, selected_address, created_at, updated_at`

var orderSortColumns = map[string]string{
	"total_amount": "total_amount",
	"created_at":   "created_at",
	"updated_at":   "updated_at",
	"status":       "status",
}

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create stores the order, decrements stock for every item and empties the
// owner's cart in one transaction. A stock shortfall aborts everything.
func (r *OrderRepository) Create(ctx context.Context, o model.Order) error {
	return database.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		for _, item := range o.Items {
			tag, err := tx.Exec(ctx,
				`UPDATE products SET stock = stock - $2, updated_at = now()
				 WHERE id = $1 AND stock >= $2 AND NOT deleted`,
				item.Product.ID, item.Quantity)
			if err != nil {
				return fmt.Errorf("reserve stock: %w", err)
			}
			if tag.RowsAffected() == 0 {
				return fmt.Errorf("%w: %s", model.ErrOutOfStock, item.Product.Title)
			}
		}

		_, err := tx.Exec(ctx,
			`INSERT INTO orders (`+orderColumns+`)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			o.ID, o.UserID, o.Items, o.TotalAmount, o.TotalItems, o.PaymentMethod, o.PaymentStatus,
			o.Status, o.SelectedAddress, o.CreatedAt, o.UpdatedAt)
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, o.UserID); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}
		return nil
	})
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (model.Order, error) {
	if !validID(id) {
		return model.Order{}, model.ErrOrderNotFound
	}

	o, err := scanOrder(r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Order{}, model.ErrOrderNotFound
	}
	if err != nil {
		return model.Order{}, fmt.Errorf("find order: %w", err)
	}
	return o, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	if !validID(userID) {
		return []model.Order{}, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list user orders: %w", err)
	}
	defer rows.Close()

	return collectOrders(rows)
}

func (r *OrderRepository) List(ctx context.Context, q model.OrderQuery) (model.OrderList, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&total); err != nil {
		return model.OrderList{}, fmt.Errorf("count orders: %w", err)
	}

	limit, offset := pageWindow(q.Page, q.Limit)
	rows, err := r.pool.Query(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY `+
			orderClause(orderSortColumns, q.Sort, q.Order, "created_at")+` LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return model.OrderList{}, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	items, err := collectOrders(rows)
	if err != nil {
		return model.OrderList{}, err
	}
	return model.OrderList{Items: items, Total: total}, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, o model.Order) error {
	if !validID(o.ID) {
		return model.ErrOrderNotFound
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE orders SET status = $2, payment_status = $3, updated_at = $4 WHERE id = $1`,
		o.ID, o.Status, o.PaymentStatus, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return model.ErrOrderNotFound
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}
	return nil
}

func collectOrders(rows pgx.Rows) ([]model.Order, error) {
	orders := make([]model.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func scanOrder(row pgx.Row) (model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.UserID, &o.Items, &o.TotalAmount, &o.TotalItems, &o.PaymentMethod,
		&o.PaymentStatus, &o.Status, &o.SelectedAddress, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}
