package repository

import (
	"context"
	"testing"

	"crimson-pos/internal/domain"

	"github.com/shopspring/decimal"
)

func seedCustomer(t *testing.T, first, last string) int64 {
	t.Helper()
	var id int64
	err := testDB.Get(&id, `
		INSERT INTO customers (first_name, last_name, email, phone)
		VALUES ($1, $2, $3, '555-0100')
		RETURNING customer_id
	`, first, last, first+"@example.com")
	if err != nil {
		t.Fatalf("Failed to seed customer: %v", err)
	}
	return id
}

func seedEmployee(t *testing.T, first, last string) int64 {
	t.Helper()
	var id int64
	err := testDB.Get(&id, `
		INSERT INTO employees (first_name, last_name, role, hire_date)
		VALUES ($1, $2, 'Sales Associate', '2023-04-01')
		RETURNING employee_id
	`, first, last)
	if err != nil {
		t.Fatalf("Failed to seed employee: %v", err)
	}
	return id
}

func seedProduct(t *testing.T, name string, price string, stock int, active bool) int64 {
	t.Helper()
	var id int64
	err := testDB.Get(&id, `
		INSERT INTO products (name, category, sport, unit_price, stock_qty, active)
		VALUES ($1, 'Equipment', 'Soccer', $2, $3, $4)
		RETURNING product_id
	`, name, decimal.RequireFromString(price), stock, active)
	if err != nil {
		t.Fatalf("Failed to seed product: %v", err)
	}
	return id
}

func countRows(t *testing.T, table string) int {
	t.Helper()
	var n int
	if err := testDB.Get(&n, "SELECT COUNT(*) FROM "+table); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}

// placeOrder records a sale straight through the writer to seed report and listing fixtures
func placeOrder(ctx context.Context, repo TransactionRepository, customerID, employeeID int64, lines []domain.OrderLine, rate decimal.Decimal) (int64, domain.Totals, error) {
	var (
		id     int64
		totals domain.Totals
	)
	err := repo.WithinTx(ctx, func(w TransactionWriter) error {
		var err error
		if id, err = w.InsertHeader(ctx, customerID, employeeID); err != nil {
			return err
		}
		for i, line := range lines {
			if err := w.InsertLine(ctx, id, i+1, line); err != nil {
				return err
			}
		}
		subtotal, err := w.RecomputeSubtotal(ctx, id)
		if err != nil {
			return err
		}
		totals = domain.ComputeTotals(subtotal, rate)
		return w.UpdateTotals(ctx, id, totals)
	})
	return id, totals, err
}
