package repository

import (
	"context"
	"fmt"

	"crimson-pos/internal/domain"

	"github.com/jmoiron/sqlx"
)

// ReportRepository runs the read-only sales aggregates
type ReportRepository interface {
	TopProducts(ctx context.Context, limit int) ([]domain.TopProduct, error)
	LowStock(ctx context.Context, threshold int) ([]domain.LowStockItem, error)
	RevenueByMonth(ctx context.Context) ([]domain.MonthlyRevenue, error)
	EmployeeStats(ctx context.Context) ([]domain.EmployeeStat, error)
}

type reportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) ReportRepository {
	return &reportRepository{db: db}
}

// TopProducts ranks products by revenue across all stored lines
func (r *reportRepository) TopProducts(ctx context.Context, limit int) ([]domain.TopProduct, error) {
	query := `
		SELECT p.product_id,
		       p.name,
		       SUM(td.qty)        AS units_sold,
		       SUM(td.line_total) AS revenue
		FROM transaction_details td
		JOIN products p ON p.product_id = td.product_id
		GROUP BY p.product_id, p.name
		ORDER BY revenue DESC, p.product_id
		LIMIT $1
	`

	rows := []domain.TopProduct{}
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("failed to load top products: %w", err)
	}
	return rows, nil
}

func (r *reportRepository) LowStock(ctx context.Context, threshold int) ([]domain.LowStockItem, error) {
	query := `
		SELECT product_id, name, stock_qty
		FROM products
		WHERE active = TRUE AND stock_qty <= $1
		ORDER BY stock_qty, name
	`

	rows := []domain.LowStockItem{}
	if err := r.db.SelectContext(ctx, &rows, query, threshold); err != nil {
		return nil, fmt.Errorf("failed to load low stock products: %w", err)
	}
	return rows, nil
}

func (r *reportRepository) RevenueByMonth(ctx context.Context) ([]domain.MonthlyRevenue, error) {
	query := `
		SELECT to_char(transaction_date, 'YYYY-MM') AS month,
		       SUM(total) AS revenue,
		       COUNT(*)   AS orders
		FROM customer_purchase_transactions
		GROUP BY month
		ORDER BY month
	`

	rows := []domain.MonthlyRevenue{}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to load revenue by month: %w", err)
	}
	return rows, nil
}

// EmployeeStats includes employees with no sales, reported with zero revenue
func (r *reportRepository) EmployeeStats(ctx context.Context) ([]domain.EmployeeStat, error) {
	query := `
		SELECT e.employee_id,
		       e.first_name,
		       e.last_name,
		       COUNT(t.transaction_id)  AS orders,
		       COALESCE(SUM(t.total), 0) AS revenue
		FROM employees e
		LEFT JOIN customer_purchase_transactions t ON t.employee_id = e.employee_id
		GROUP BY e.employee_id, e.first_name, e.last_name
		ORDER BY revenue DESC, orders DESC, e.employee_id
	`

	rows := []domain.EmployeeStat{}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to load employee stats: %w", err)
	}
	return rows, nil
}
