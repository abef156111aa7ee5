package service

import (
	"context"

	"crimson-pos/internal/domain"
	"crimson-pos/internal/repository"
)

// TopProductsLimit is how many products the revenue ranking returns.
const TopProductsLimit = 5

type ReportService interface {
	TopProducts(ctx context.Context) ([]domain.TopProduct, error)
	LowStock(ctx context.Context) ([]domain.LowStockItem, error)
	RevenueByMonth(ctx context.Context) ([]domain.MonthlyRevenue, error)
	EmployeeStats(ctx context.Context) ([]domain.EmployeeStat, error)
}

type reportService struct {
	repo repository.ReportRepository
}

func NewReportService(repo repository.ReportRepository) ReportService {
	return &reportService{repo: repo}
}

func (s *reportService) TopProducts(ctx context.Context) ([]domain.TopProduct, error) {
	return s.repo.TopProducts(ctx, TopProductsLimit)
}

func (s *reportService) LowStock(ctx context.Context) ([]domain.LowStockItem, error) {
	return s.repo.LowStock(ctx, domain.LowStockThreshold)
}

func (s *reportService) RevenueByMonth(ctx context.Context) ([]domain.MonthlyRevenue, error) {
	return s.repo.RevenueByMonth(ctx)
}

func (s *reportService) EmployeeStats(ctx context.Context) ([]domain.EmployeeStat, error) {
	return s.repo.EmployeeStats(ctx)
}
