package service

import (
	"context"
	"errors"
	"fmt"

	"crimson-pos/internal/domain"
	"crimson-pos/internal/metrics"
	"crimson-pos/internal/repository"

	"github.com/shopspring/decimal"
)

// RecentOrdersLimit caps the order listing.
const RecentOrdersLimit = 100

var (
	ErrInvalidOrder = errors.New("invalid order")
)

// PlaceOrderInput is a sale as entered at the register
type PlaceOrderInput struct {
	CustomerID int64
	EmployeeID int64
	Lines      []domain.OrderLine
}

// OrderService defines the interface for recording and reading sales
type OrderService interface {
	PlaceOrder(ctx context.Context, in PlaceOrderInput) (*domain.PlacedOrder, error)
	ListRecentOrders(ctx context.Context) ([]domain.OrderSummary, error)
	GetOrder(ctx context.Context, id int64) (*domain.OrderDetail, error)
}

type orderService struct {
	repo    repository.TransactionRepository
	taxRate decimal.Decimal
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(repo repository.TransactionRepository, taxRate decimal.Decimal) OrderService {
	return &orderService{
		repo:    repo,
		taxRate: taxRate,
	}
}

// PlaceOrder persists the header and its lines, derives the totals from the
// stored lines and commits everything in a single transaction. Nothing is
// persisted when any step fails.
func (s *orderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*domain.PlacedOrder, error) {
	if err := validateOrder(in, s.taxRate); err != nil {
		metrics.OrdersFailedTotal.WithLabelValues("invalid_order").Inc()
		return nil, err
	}

	var placed domain.PlacedOrder
	err := s.repo.WithinTx(ctx, func(w repository.TransactionWriter) error {
		id, err := w.InsertHeader(ctx, in.CustomerID, in.EmployeeID)
		if err != nil {
			return err
		}

		for i, line := range in.Lines {
			if err := w.InsertLine(ctx, id, i+1, line); err != nil {
				return err
			}
		}

		subtotal, err := w.RecomputeSubtotal(ctx, id)
		if err != nil {
			return err
		}

		totals := domain.ComputeTotals(subtotal, s.taxRate)
		if err := w.UpdateTotals(ctx, id, totals); err != nil {
			return err
		}

		placed = domain.PlacedOrder{
			TransactionID: id,
			Subtotal:      totals.Subtotal,
			Tax:           totals.Tax,
			Total:         totals.Total,
		}
		return nil
	})
	if err != nil {
		reason := "store_error"
		if errors.Is(err, repository.ErrInvalidReference) {
			reason = "invalid_reference"
		}
		metrics.OrdersFailedTotal.WithLabelValues(reason).Inc()
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	metrics.OrdersPlacedTotal.Inc()
	metrics.OrderValue.Observe(placed.Total.InexactFloat64())

	return &placed, nil
}

// ListRecentOrders returns the newest orders first
func (s *orderService) ListRecentOrders(ctx context.Context) ([]domain.OrderSummary, error) {
	return s.repo.ListRecent(ctx, RecentOrdersLimit)
}

func (s *orderService) GetOrder(ctx context.Context, id int64) (*domain.OrderDetail, error) {
	return s.repo.FindByID(ctx, id)
}

func validateOrder(in PlaceOrderInput, taxRate decimal.Decimal) error {
	if in.CustomerID <= 0 {
		return fmt.Errorf("%w: customer id is required", ErrInvalidOrder)
	}
	if in.EmployeeID <= 0 {
		return fmt.Errorf("%w: employee id is required", ErrInvalidOrder)
	}
	if len(in.Lines) == 0 {
		return fmt.Errorf("%w: at least one line is required", ErrInvalidOrder)
	}

	for i, line := range in.Lines {
		switch {
		case line.ProductID <= 0:
			return fmt.Errorf("%w: line %d: product id is required", ErrInvalidOrder, i+1)
		case line.Qty < 1:
			return fmt.Errorf("%w: line %d: quantity must be at least 1", ErrInvalidOrder, i+1)
		case line.Qty > domain.MaxQty:
			return fmt.Errorf("%w: line %d: quantity must not exceed %d", ErrInvalidOrder, i+1, domain.MaxQty)
		case line.UnitPrice.IsNegative():
			return fmt.Errorf("%w: line %d: unit price must not be negative", ErrInvalidOrder, i+1)
		case line.UnitPrice.GreaterThan(domain.MaxUnitPrice):
			return fmt.Errorf("%w: line %d: unit price must not exceed %s", ErrInvalidOrder, i+1, domain.MaxUnitPrice)
		}
	}

	subtotal := decimal.Zero
	for _, line := range in.Lines {
		subtotal = subtotal.Add(line.LineTotal())
	}
	if domain.ComputeTotals(subtotal, taxRate).Total.GreaterThan(domain.MaxAmount) {
		return fmt.Errorf("%w: order total must not exceed %s", ErrInvalidOrder, domain.MaxAmount)
	}

	return nil
}
