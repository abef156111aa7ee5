package repository

import (
	"context"
	"fmt"

	"crimson-pos/internal/domain"

	"github.com/jmoiron/sqlx"
)

// DirectoryRepository lists the people an order can reference
type DirectoryRepository interface {
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	ListEmployees(ctx context.Context) ([]domain.Employee, error)
}

type directoryRepository struct {
	db *sqlx.DB
}

func NewDirectoryRepository(db *sqlx.DB) DirectoryRepository {
	return &directoryRepository{db: db}
}

func (r *directoryRepository) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	query := `
		SELECT customer_id, first_name, last_name, email, phone
		FROM customers
		ORDER BY last_name, first_name
	`

	customers := []domain.Customer{}
	if err := r.db.SelectContext(ctx, &customers, query); err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

func (r *directoryRepository) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	query := `
		SELECT employee_id, first_name, last_name, role, hire_date
		FROM employees
		ORDER BY last_name, first_name
	`

	employees := []domain.Employee{}
	if err := r.db.SelectContext(ctx, &employees, query); err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}
