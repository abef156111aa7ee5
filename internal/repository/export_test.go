package repository

import (
	"testing"

	"github.com/jmoiron/sqlx"
)

// Fixtures shared with the repository_test package.

func SharedDB() *sqlx.DB { return testDB }

func ResetTables(t *testing.T) { resetTables(t) }

func SeedCustomer(t *testing.T, first, last string) int64 { return seedCustomer(t, first, last) }

func SeedEmployee(t *testing.T, first, last string) int64 { return seedEmployee(t, first, last) }

func SeedProduct(t *testing.T, name string, price string, stock int, active bool) int64 {
	return seedProduct(t, name, price, stock, active)
}

func CountRows(t *testing.T, table string) int { return countRows(t, table) }
