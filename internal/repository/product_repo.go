package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-api/internal/model"
)

const productColumns = `id, title, description, price, discount_percentage, discount_price, rating, stock,
	brand, category, thumbnail, images, colors, sizes, highlights, deleted, created_at, updated_at`

var productSortColumns = map[string]string{
	"price":          "discount_price",
	"discount_price": "discount_price",
	"rating":         "rating",
	"title":          "title",
	"stock":          "stock",
	"created_at":     "created_at",
}

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func (r *ProductRepository) List(ctx context.Context, q model.ProductQuery) (model.ProductList, error) {
	where := `WHERE (cardinality($1::text[]) = 0 OR category = ANY($1))
	            AND (cardinality($2::text[]) = 0 OR brand = ANY($2))
	            AND ($3 OR NOT deleted)`
	args := []any{nonNilStrings(q.Categories), nonNilStrings(q.Brands), q.IncludeDeleted}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products `+where, args...).Scan(&total); err != nil {
		return model.ProductList{}, fmt.Errorf("count products: %w", err)
	}

	limit, offset := pageWindow(q.Page, q.Limit)
	query := `SELECT ` + productColumns + ` FROM products ` + where +
		` ORDER BY ` + orderClause(productSortColumns, q.Sort, q.Order, "created_at") +
		` LIMIT $4 OFFSET $5`

	rows, err := r.pool.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return model.ProductList{}, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	items := make([]model.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return model.ProductList{}, fmt.Errorf("scan product: %w", err)
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return model.ProductList{}, err
	}

	return model.ProductList{Items: items, Total: total}, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (model.Product, error) {
	if !validID(id) {
		return model.Product{}, model.ErrProductNotFound
	}

	p, err := scanProduct(r.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Product{}, model.ErrProductNotFound
	}
	if err != nil {
		return model.Product{}, fmt.Errorf("find product: %w", err)
	}
	return p, nil
}

func (r *ProductRepository) FindByIDs(ctx context.Context, ids []string) (map[string]model.Product, error) {
	out := make(map[string]model.Product, len(ids))
	ids = validIDs(ids)
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := r.pool.Query(ctx, `SELECT `+productColumns+` FROM products WHERE id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out[p.ID] = p
	}
	return out, rows.Err()
}

func (r *ProductRepository) Create(ctx context.Context, p model.Product) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO products (`+productColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		p.ID, p.Title, p.Description, p.Price, p.DiscountPercentage, p.DiscountPrice, p.Rating, p.Stock,
		p.Brand, p.Category, p.Thumbnail, nonNilStrings(p.Images), nonNilStrings(p.Colors),
		nonNilStrings(p.Sizes), nonNilStrings(p.Highlights), p.Deleted, p.CreatedAt, p.UpdatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: product title already exists", model.ErrInvalidInput)
	}
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, p model.Product) error {
	if !validID(p.ID) {
		return model.ErrProductNotFound
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE products SET title = $2, description = $3, price = $4, discount_percentage = $5,
		        discount_price = $6, rating = $7, stock = $8, brand = $9, category = $10,
		        thumbnail = $11, images = $12, deleted = $13, updated_at = $14
		 WHERE id = $1`,
		p.ID, p.Title, p.Description, p.Price, p.DiscountPercentage, p.DiscountPrice, p.Rating,
		p.Stock, p.Brand, p.Category, p.Thumbnail, nonNilStrings(p.Images), p.Deleted, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Price, &p.DiscountPercentage, &p.DiscountPrice,
		&p.Rating, &p.Stock, &p.Brand, &p.Category, &p.Thumbnail, &p.Images, &p.Colors, &p.Sizes,
		&p.Highlights, &p.Deleted, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// pageWindow turns 1-based page/limit into LIMIT/OFFSET; a nil limit means no limit.
func pageWindow(page int, limit int) (any, int) {
	if limit <= 0 {
		return nil, 0
	}
	if page < 1 {
		page = 1
	}
	return limit, (page - 1) * limit
}

func orderClause(columns map[string]string, sort string, order string, fallback string) string {
	column, ok := columns[strings.ToLower(strings.TrimSpace(sort))]
	if !ok {
		column = fallback
	}

	direction := "ASC"
	if strings.EqualFold(strings.TrimSpace(order), "desc") {
		direction = "DESC"
	}

	return column + " " + direction + ", id ASC"
}
