package service

import (
	"context"

	"crimson-pos/internal/domain"
	"crimson-pos/internal/repository"
)

// CatalogService serves the listings used to build an order
type CatalogService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	ListEmployees(ctx context.Context) ([]domain.Employee, error)
}

type catalogService struct {
	products  repository.ProductRepository
	directory repository.DirectoryRepository
}

func NewCatalogService(products repository.ProductRepository, directory repository.DirectoryRepository) CatalogService {
	return &catalogService{
		products:  products,
		directory: directory,
	}
}

// ListProducts returns active products only
func (s *catalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.products.ListActive(ctx)
}

func (s *catalogService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.directory.ListCustomers(ctx)
}

func (s *catalogService) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	return s.directory.ListEmployees(ctx)
}
