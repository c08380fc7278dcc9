package repository

import (
	"context"
	"time"

	"github.com/fondos-platform/service-subscription/internal/domain"
	"github.com/fondos-platform/service-subscription/internal/domain/product"
	"gorm.io/gorm"
)

// GormProductRepository implements product.ProductRepository using GORM.
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository.
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID returns a product by ID.
func (r *GormProductRepository) FindByID(ctx context.Context, id int) (*product.Product, error) {
	var model ProductModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translate(err, domain.ErrProductNotFound, id)
	}
	return toProductDomain(&model), nil
}

// FindAll returns the catalog ordered by ID.
func (r *GormProductRepository) FindAll(ctx context.Context) ([]*product.Product, error) {
	var models []ProductModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	result := make([]*product.Product, 0, len(models))
	for i := range models {
		result = append(result, toProductDomain(&models[i]))
	}
	return result, nil
}

// Save persists a new product.
func (r *GormProductRepository) Save(ctx context.Context, p *product.Product) error {
	model := toProductModel(p)
	now := time.Now().UTC()
	model.CreatedAt, model.UpdatedAt = now, now
	return translate(r.db.WithContext(ctx).Create(&model).Error, domain.ErrProductNotFound, p.ID())
}

// Update overwrites an existing product.
func (r *GormProductRepository) Update(ctx context.Context, p *product.Product) error {
	result := r.db.WithContext(ctx).Model(&ProductModel{}).Where("id = ?", p.ID()).Updates(map[string]any{
		"name":           p.Name(),
		"minimum_amount": p.MinimumAmount(),
		"category":       string(p.Category()),
		"updated_at":     time.Now().UTC(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError(domain.ErrProductNotFound, p.ID())
	}
	return nil
}

// Delete removes a product. Subscriptions keep their product ID.
func (r *GormProductRepository) Delete(ctx context.Context, id int) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&ProductModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError(domain.ErrProductNotFound, id)
	}
	return nil
}

func toProductModel(p *product.Product) ProductModel {
	return ProductModel{
		ID: p.ID(), Name: p.Name(), MinimumAmount: p.MinimumAmount(), Category: string(p.Category()),
	}
}

func toProductDomain(m *ProductModel) *product.Product {
	return product.Reconstruct(m.ID, m.Name, m.MinimumAmount, product.Category(m.Category))
}
