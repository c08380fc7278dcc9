package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/fondos-platform/service-subscription/internal/domain"
	"github.com/fondos-platform/service-subscription/internal/domain/product"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateProductRequest holds data to add a product to the catalog.
type CreateProductRequest struct {
	ID            int             `json:"id" binding:"required,gt=0"`
	Name          string          `json:"name" binding:"required"`
	MinimumAmount decimal.Decimal `json:"minimum_amount" binding:"required"`
	Category      string          `json:"category" binding:"required"`
}

// UpdateProductRequest holds the replacement fields of a product.
type UpdateProductRequest struct {
	Name          string          `json:"name" binding:"required"`
	MinimumAmount decimal.Decimal `json:"minimum_amount" binding:"required"`
	Category      string          `json:"category" binding:"required"`
}

// ProductService handles catalog use cases.
type ProductService struct {
	repo   product.ProductRepository
	logger *zap.Logger
}

// NewProductService creates a new ProductService.
func NewProductService(repo product.ProductRepository, logger *zap.Logger) *ProductService {
	return &ProductService{repo: repo, logger: logger}
}

// ListProducts returns the whole catalog ordered by id.
func (s *ProductService) ListProducts(ctx context.Context) ([]*ProductDTO, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	result := make([]*ProductDTO, 0, len(products))
	for _, p := range products {
		result = append(result, toProductDTO(p))
	}
	return result, nil
}

// GetProduct returns a single product.
func (s *ProductService) GetProduct(ctx context.Context, id int) (*ProductDTO, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductDTO(p), nil
}

// CreateProduct adds a product; the id must be unused.
func (s *ProductService) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductDTO, error) {
	category, err := product.ParseCategory(req.Category)
	if err != nil {
		return nil, err
	}
	p, err := product.NewProduct(req.ID, req.Name, req.MinimumAmount, category)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByID(ctx, p.ID()); err == nil {
		return nil, domain.NewConflictError("product %d already exists", p.ID())
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to check product: %w", err)
	}

	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("product created", zap.Int("product_id", p.ID()), zap.String("name", p.Name()))
	return toProductDTO(p), nil
}

// UpdateProduct replaces an existing product's fields.
func (s *ProductService) UpdateProduct(ctx context.Context, id int, req UpdateProductRequest) (*ProductDTO, error) {
	category, err := product.ParseCategory(req.Category)
	if err != nil {
		return nil, err
	}
	p, err := product.NewProduct(id, req.Name, req.MinimumAmount, category)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("product updated", zap.Int("product_id", id))
	return toProductDTO(p), nil
}

// DeleteProduct removes a product from the catalog.
func (s *ProductService) DeleteProduct(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("product deleted", zap.Int("product_id", id))
	return nil
}

// EnsureCatalog seeds any default product that is missing.
func (s *ProductService) EnsureCatalog(ctx context.Context) error {
	for _, p := range product.DefaultCatalog() {
		_, err := s.repo.FindByID(ctx, p.ID())
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("failed to check product %d: %w", p.ID(), err)
		}
		if err := s.repo.Save(ctx, p); err != nil {
			return fmt.Errorf("failed to seed product %d: %w", p.ID(), err)
		}
		s.logger.Info("seeded product", zap.Int("product_id", p.ID()), zap.String("name", p.Name()))
	}
	return nil
}
