package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-api/internal/model"
)

// OptionRepository serves the label/value tables behind catalog filters.
type OptionRepository struct {
	pool  *pgxpool.Pool
	table string
}

func NewCategoryRepository(pool *pgxpool.Pool) *OptionRepository {
	return &OptionRepository{pool: pool, table: "categories"}
}

func NewBrandRepository(pool *pgxpool.Pool) *OptionRepository {
	return &OptionRepository{pool: pool, table: "brands"}
}

func (r *OptionRepository) List(ctx context.Context) ([]model.Option, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, label, value FROM `+r.table+` ORDER BY label`)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.table, err)
	}
	defer rows.Close()

	options := make([]model.Option, 0)
	for rows.Next() {
		var o model.Option
		if err := rows.Scan(&o.ID, &o.Label, &o.Value); err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.table, err)
		}
		options = append(options, o)
	}
	return options, rows.Err()
}

func (r *OptionRepository) Create(ctx context.Context, o model.Option) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO `+r.table+` (id, label, value) VALUES ($1, $2, $3)`, o.ID, o.Label, o.Value)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s value already exists", model.ErrInvalidInput, r.table)
	}
	if err != nil {
		return fmt.Errorf("create %s: %w", r.table, err)
	}
	return nil
}
