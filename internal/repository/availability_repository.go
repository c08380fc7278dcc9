package repository

import (
	"context"
	"fmt"

	"github.com/fondos-platform/service-subscription/internal/domain"
	"github.com/fondos-platform/service-subscription/internal/domain/availability"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAvailabilityRepository implements availability.AvailabilityRepository
// using GORM. The ux_availability_branch_product index backs pair uniqueness.
type GormAvailabilityRepository struct {
	db *gorm.DB
}

// NewGormAvailabilityRepository creates a new GormAvailabilityRepository.
func NewGormAvailabilityRepository(db *gorm.DB) *GormAvailabilityRepository {
	return &GormAvailabilityRepository{db: db}
}

// FindByID returns an availability entry by ID.
func (r *GormAvailabilityRepository) FindByID(ctx context.Context, id uuid.UUID) (*availability.Availability, error) {
	var model AvailabilityModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translate(err, domain.ErrAvailabilityNotFound, id)
	}
	return toAvailabilityDomain(&model), nil
}

// FindAll returns every entry ordered by branch and product.
func (r *GormAvailabilityRepository) FindAll(ctx context.Context) ([]*availability.Availability, error) {
	var models []AvailabilityModel
	if err := r.db.WithContext(ctx).Order("branch_id, product_id").Find(&models).Error; err != nil {
		return nil, err
	}
	result := make([]*availability.Availability, 0, len(models))
	for i := range models {
		result = append(result, toAvailabilityDomain(&models[i]))
	}
	return result, nil
}

// FindByBranchAndProduct returns the entry for a branch and product pair.
func (r *GormAvailabilityRepository) FindByBranchAndProduct(ctx context.Context, branchID uuid.UUID, productID int) (*availability.Availability, error) {
	var model AvailabilityModel
	err := r.db.WithContext(ctx).Where("branch_id = ? AND product_id = ?", branchID, productID).First(&model).Error
	if err != nil {
		return nil, translate(err, domain.ErrAvailabilityNotFound, fmt.Sprintf("%s/%d", branchID, productID))
	}
	return toAvailabilityDomain(&model), nil
}

// Save persists a new entry.
func (r *GormAvailabilityRepository) Save(ctx context.Context, a *availability.Availability) error {
	model := toAvailabilityModel(a)
	err := r.db.WithContext(ctx).Omit("Branch", "Product").Create(&model).Error
	return translate(err, domain.ErrAvailabilityNotFound, a.ID())
}

// Update moves an entry to another branch or product.
func (r *GormAvailabilityRepository) Update(ctx context.Context, a *availability.Availability) error {
	result := r.db.WithContext(ctx).Model(&AvailabilityModel{}).Where("id = ?", a.ID()).Updates(map[string]any{
		"branch_id":  a.BranchID(),
		"product_id": a.ProductID(),
	})
	if result.Error != nil {
		return translate(result.Error, domain.ErrAvailabilityNotFound, a.ID())
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError(domain.ErrAvailabilityNotFound, a.ID())
	}
	return nil
}

// Delete removes an entry.
func (r *GormAvailabilityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&AvailabilityModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError(domain.ErrAvailabilityNotFound, id)
	}
	return nil
}

func toAvailabilityModel(a *availability.Availability) AvailabilityModel {
	return AvailabilityModel{ID: a.ID(), BranchID: a.BranchID(), ProductID: a.ProductID()}
}

func toAvailabilityDomain(m *AvailabilityModel) *availability.Availability {
	return availability.Reconstruct(m.ID, m.BranchID, m.ProductID)
}
