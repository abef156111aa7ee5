package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"crimson-pos/internal/domain"
	"crimson-pos/internal/metrics"
	"crimson-pos/internal/repository"
)

var ErrInvalidAdjustment = errors.New("invalid stock adjustment")

// InventoryService adjusts stock levels. Order placement never calls it.
type InventoryService interface {
	AdjustStock(ctx context.Context, productID int64, delta int) (*domain.StockAdjustment, error)
}

type inventoryService struct {
	products repository.ProductRepository
}

func NewInventoryService(products repository.ProductRepository) InventoryService {
	return &inventoryService{products: products}
}

// AdjustStock applies a signed delta; stock never drops below zero
func (s *inventoryService) AdjustStock(ctx context.Context, productID int64, delta int) (*domain.StockAdjustment, error) {
	if delta < math.MinInt32 || delta > math.MaxInt32 {
		return nil, fmt.Errorf("%w: delta %d is out of range", ErrInvalidAdjustment, delta)
	}

	stock, err := s.products.AdjustStock(ctx, productID, delta)
	if err != nil {
		return nil, fmt.Errorf("failed to adjust stock for product %d: %w", productID, err)
	}

	direction := "increase"
	if delta < 0 {
		direction = "decrease"
	}
	metrics.StockAdjustmentsTotal.WithLabelValues(direction).Inc()

	return &domain.StockAdjustment{
		ProductID: productID,
		Delta:     delta,
		StockQty:  stock,
	}, nil
}
