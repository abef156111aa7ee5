package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepository_ListActiveSortedByName(t *testing.T) {
	resetTables(t)
	repo := NewProductRepository(testDB)

	seedProduct(t, "Shin Guards", "14.50", 12, true)
	seedProduct(t, "Ball Pump", "6.00", 3, true)
	seedProduct(t, "Retired Jersey", "40.00", 1, false)

	products, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "Ball Pump", products[0].Name)
	assert.Equal(t, "Shin Guards", products[1].Name)
	assert.Equal(t, "14.50", products[1].UnitPrice.StringFixed(2))
	for _, p := range products {
		assert.True(t, p.Active)
	}
}

func TestProductRepository_AdjustStockClampsAtZero(t *testing.T) {
	resetTables(t)
	repo := NewProductRepository(testDB)
	ctx := context.Background()

	id := seedProduct(t, "Goalie Gloves", "29.99", 3, true)

	stock, err := repo.AdjustStock(ctx, id, -100)
	require.NoError(t, err)
	assert.Equal(t, 0, stock)

	stock, err = repo.AdjustStock(ctx, id, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, stock)
}

func TestProductRepository_AdjustStockUnknownProduct(t *testing.T) {
	resetTables(t)
	repo := NewProductRepository(testDB)

	_, err := repo.AdjustStock(context.Background(), 424242, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductRepository_AdjustStockOverflowIsOutOfRange(t *testing.T) {
	resetTables(t)
	repo := NewProductRepository(testDB)
	id := seedProduct(t, "Cones", "2.00", 2147483000, true)

	_, err := repo.AdjustStock(context.Background(), id, 1000)
	assert.ErrorIs(t, err, ErrValueOutOfRange)

	var stock int
	require.NoError(t, testDB.Get(&stock, "SELECT stock_qty FROM products WHERE product_id = $1", id))
	assert.Equal(t, 2147483000, stock)
}

func TestProperty_AdjustStockNeverNegative(t *testing.T) {
	resetTables(t)
	repo := NewProductRepository(testDB)
	ctx := context.Background()

	properties := gopter.NewProperties(nil)

	properties.Property("stock equals max(0, stock + delta)", prop.ForAll(
		func(initial int, delta int) bool {
			id := seedProduct(t, fmt.Sprintf("Cone Set %d/%d", initial, delta), "9.00", initial, true)

			stock, err := repo.AdjustStock(ctx, id, delta)
			if err != nil {
				t.Logf("FAIL: adjust stock: %v", err)
				return false
			}

			var stored int
			if err := testDB.Get(&stored, "SELECT stock_qty FROM products WHERE product_id = $1", id); err != nil {
				t.Logf("FAIL: reload stock: %v", err)
				return false
			}

			expected := initial + delta
			if expected < 0 {
				expected = 0
			}
			return stock == expected && stored == expected
		},
		gen.IntRange(0, 500),
		gen.IntRange(-100_000, 1_000),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
