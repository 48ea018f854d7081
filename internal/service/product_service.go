package service

import (
	"context"

	"github.com/la-capital/crm-service/internal/domain"
	"github.com/la-capital/crm-service/internal/repository"
)

// ProductService handles the menu catalog.
type ProductService struct {
	products repository.ProductRepository
}

// NewProductService builds the service.
func NewProductService(products repository.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

// List returns the full catalog, public endpoint included.
func (s *ProductService) List(ctx context.Context) ([]*domain.Product, error) {
	return s.products.List(ctx)
}

// Get loads one product.
func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

// Create adds a product to the catalog.
func (s *ProductService) Create(ctx context.Context, product *domain.Product) error {
	return s.products.Create(ctx, product)
}

// Update replaces product fields.
func (s *ProductService) Update(ctx context.Context, product *domain.Product) error {
	return s.products.Update(ctx, product)
}

// Delete removes a product.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	return s.products.Delete(ctx, id)
}
