package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"crimson-pos/internal/domain"

	"github.com/jmoiron/sqlx"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	ListActive(ctx context.Context) ([]domain.Product, error)
	AdjustStock(ctx context.Context, id int64, delta int) (int, error)
}

type productRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sqlx.DB) ProductRepository {
	return &productRepository{db: db}
}

// ListActive returns the products offered for sale, sorted by name
func (r *productRepository) ListActive(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT product_id, name, category, sport, unit_price, stock_qty, active
		FROM products
		WHERE active = TRUE
		ORDER BY name
	`

	products := []domain.Product{}
	if err := r.db.SelectContext(ctx, &products, query); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return products, nil
}

// AdjustStock applies delta to the stock level in one statement, clamping at
// zero, and returns the resulting quantity
func (r *productRepository) AdjustStock(ctx context.Context, id int64, delta int) (int, error) {
	query := `
		UPDATE products
		SET stock_qty = GREATEST(0, stock_qty + $2)
		WHERE product_id = $1
		RETURNING stock_qty
	`

	var stock int
	err := r.db.QueryRowxContext(ctx, query, id, delta).Scan(&stock)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrProductNotFound
		}
		if hasPgCode(err, numericValueOutOfRange) {
			return 0, fmt.Errorf("failed to adjust stock: %w", ErrValueOutOfRange)
		}
		return 0, fmt.Errorf("failed to adjust stock: %w", err)
	}

	return stock, nil
}
