package service

import (
	"context"
	"errors"
	"testing"

	"crimson-pos/internal/domain"
	"crimson-pos/internal/repository"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTaxRate = decimal.RequireFromString("0.09")

func TestPlaceOrder_RegisterScenario(t *testing.T) {
	repo := newFakeTransactionRepository(map[int64]string{10: "Match Ball", 11: "Socks"})
	svc := NewOrderService(repo, testTaxRate)

	placed, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		CustomerID: 1,
		EmployeeID: 2,
		Lines: []domain.OrderLine{
			{ProductID: 10, Qty: 2, UnitPrice: decimal.RequireFromString("9.99")},
			{ProductID: 11, Qty: 1, UnitPrice: decimal.RequireFromString("5.00")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), placed.TransactionID)
	assert.Equal(t, "24.98", placed.Subtotal.StringFixed(2))
	assert.Equal(t, "2.25", placed.Tax.StringFixed(2))
	assert.Equal(t, "27.23", placed.Total.StringFixed(2))

	detail, err := svc.GetOrder(context.Background(), placed.TransactionID)
	require.NoError(t, err)
	assert.True(t, detail.Header.Total.Equal(placed.Total))
	require.Len(t, detail.Lines, 2)
	assert.Equal(t, "19.98", detail.Lines[0].LineTotal.StringFixed(2))
}

func TestPlaceOrder_RejectsInvalidInput(t *testing.T) {
	valid := domain.OrderLine{ProductID: 10, Qty: 1, UnitPrice: decimal.RequireFromString("1.00")}

	tests := []struct {
		name string
		in   PlaceOrderInput
	}{
		{"no lines", PlaceOrderInput{CustomerID: 1, EmployeeID: 1}},
		{"missing customer", PlaceOrderInput{EmployeeID: 1, Lines: []domain.OrderLine{valid}}},
		{"missing employee", PlaceOrderInput{CustomerID: 1, Lines: []domain.OrderLine{valid}}},
		{"zero quantity", PlaceOrderInput{CustomerID: 1, EmployeeID: 1, Lines: []domain.OrderLine{
			{ProductID: 10, Qty: 0, UnitPrice: decimal.RequireFromString("1.00")},
		}}},
		{"negative price", PlaceOrderInput{CustomerID: 1, EmployeeID: 1, Lines: []domain.OrderLine{
			valid, {ProductID: 10, Qty: 1, UnitPrice: decimal.RequireFromString("-0.01")},
		}}},
		{"missing product", PlaceOrderInput{CustomerID: 1, EmployeeID: 1, Lines: []domain.OrderLine{
			{Qty: 1, UnitPrice: decimal.RequireFromString("1.00")},
		}}},
		{"quantity beyond integer column", PlaceOrderInput{CustomerID: 1, EmployeeID: 1, Lines: []domain.OrderLine{
			{ProductID: 10, Qty: domain.MaxQty + 1, UnitPrice: decimal.RequireFromString("0.00")},
		}}},
		{"price beyond decimal column", PlaceOrderInput{CustomerID: 1, EmployeeID: 1, Lines: []domain.OrderLine{
			{ProductID: 10, Qty: 1, UnitPrice: decimal.RequireFromString("100000000.00")},
		}}},
		{"total beyond decimal column", PlaceOrderInput{CustomerID: 1, EmployeeID: 1, Lines: []domain.OrderLine{
			{ProductID: 10, Qty: 2_000_000_000, UnitPrice: decimal.RequireFromString("10.00")},
		}}},
		{"tax pushes total beyond decimal column", PlaceOrderInput{CustomerID: 1, EmployeeID: 1, Lines: []domain.OrderLine{
			{ProductID: 10, Qty: 100, UnitPrice: decimal.RequireFromString("99999999.99")},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeTransactionRepository(map[int64]string{10: "Match Ball"})
			svc := NewOrderService(repo, testTaxRate)

			_, err := svc.PlaceOrder(context.Background(), tt.in)
			assert.ErrorIs(t, err, ErrInvalidOrder)
			assert.Empty(t, repo.headers)
		})
	}
}

func TestPlaceOrder_UnknownProductPersistsNothing(t *testing.T) {
	repo := newFakeTransactionRepository(map[int64]string{10: "Match Ball"})
	svc := NewOrderService(repo, testTaxRate)

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		CustomerID: 1,
		EmployeeID: 1,
		Lines: []domain.OrderLine{
			{ProductID: 10, Qty: 1, UnitPrice: decimal.RequireFromString("9.99")},
			{ProductID: 99, Qty: 1, UnitPrice: decimal.RequireFromString("1.00")},
		},
	})
	assert.ErrorIs(t, err, repository.ErrInvalidReference)
	assert.Empty(t, repo.headers)
	assert.Empty(t, repo.lines)
}

func TestPlaceOrder_StoreFailureMidwayPersistsNothing(t *testing.T) {
	repo := newFakeTransactionRepository(map[int64]string{10: "Match Ball", 11: "Socks"})
	repo.failLineNo = 2
	svc := NewOrderService(repo, testTaxRate)

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		CustomerID: 1,
		EmployeeID: 1,
		Lines: []domain.OrderLine{
			{ProductID: 10, Qty: 1, UnitPrice: decimal.RequireFromString("9.99")},
			{ProductID: 11, Qty: 1, UnitPrice: decimal.RequireFromString("5.00")},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Empty(t, repo.headers)
}

func TestPlaceOrder_StoreErrorIsWrapped(t *testing.T) {
	storeErr := errors.New("database is down")
	repo := newFakeTransactionRepository(map[int64]string{10: "Match Ball"})
	repo.storeErr = storeErr
	svc := NewOrderService(repo, testTaxRate)

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		CustomerID: 1,
		EmployeeID: 1,
		Lines:      []domain.OrderLine{{ProductID: 10, Qty: 1, UnitPrice: decimal.RequireFromString("9.99")}},
	})
	assert.ErrorIs(t, err, storeErr)
}

func TestListRecentOrders_NewestFirst(t *testing.T) {
	repo := newFakeTransactionRepository(map[int64]string{10: "Match Ball"})
	svc := NewOrderService(repo, decimal.Zero)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.PlaceOrder(ctx, PlaceOrderInput{
			CustomerID: 1,
			EmployeeID: 1,
			Lines:      []domain.OrderLine{{ProductID: 10, Qty: 1, UnitPrice: decimal.RequireFromString("9.99")}},
		})
		require.NoError(t, err)
	}

	orders, err := svc.ListRecentOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, int64(3), orders[0].TransactionID)
	assert.Equal(t, int64(1), orders[2].TransactionID)

	_, err = svc.GetOrder(ctx, 42)
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)
}

func TestProperty_PlacedOrderLinesAndTotals(t *testing.T) {
	properties := gopter.NewProperties(nil)

	lineGen := gopter.CombineGens(
		gen.IntRange(1, 20),
		gen.Int64Range(0, 50000),
	).Map(func(values []interface{}) domain.OrderLine {
		return domain.OrderLine{
			ProductID: 10,
			Qty:       values[0].(int),
			UnitPrice: decimal.New(values[1].(int64), -2),
		}
	})

	properties.Property("lines are numbered 1..N and totals derive from stored lines", prop.ForAll(
		func(lines []domain.OrderLine, rateBasisPoints int64) bool {
			if len(lines) == 0 {
				return true
			}

			rate := decimal.New(rateBasisPoints, -4)
			repo := newFakeTransactionRepository(map[int64]string{10: "Match Ball"})
			svc := NewOrderService(repo, rate)
			ctx := context.Background()

			placed, err := svc.PlaceOrder(ctx, PlaceOrderInput{CustomerID: 1, EmployeeID: 1, Lines: lines})
			if err != nil {
				t.Logf("Failed to place order: %v", err)
				return false
			}

			detail, err := svc.GetOrder(ctx, placed.TransactionID)
			if err != nil || len(detail.Lines) != len(lines) {
				return false
			}

			sum := decimal.Zero
			for i, line := range detail.Lines {
				if line.LineNo != i+1 {
					return false
				}
				if !line.LineTotal.Equal(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Qty)))) {
					return false
				}
				sum = sum.Add(line.LineTotal)
			}

			expected := domain.ComputeTotals(sum, rate)
			return placed.Subtotal.Equal(sum) &&
				placed.Tax.Equal(expected.Tax) &&
				placed.Total.Equal(sum.Add(placed.Tax))
		},
		gen.SliceOfN(8, lineGen),
		gen.Int64Range(0, 2500),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
