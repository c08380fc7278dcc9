package repository

import (
	"context"
	"time"

	"github.com/fondos-platform/service-subscription/internal/domain"
	"github.com/fondos-platform/service-subscription/internal/domain/branch"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBranchRepository implements branch.BranchRepository using GORM.
// Availability entries and appointments go with their branch through ON DELETE CASCADE.
type GormBranchRepository struct {
	db        *gorm.DB
	forUpdate bool
}

// NewGormBranchRepository creates a new GormBranchRepository.
func NewGormBranchRepository(db *gorm.DB) *GormBranchRepository {
	return &GormBranchRepository{db: db}
}

// FindByID returns a branch by ID.
func (r *GormBranchRepository) FindByID(ctx context.Context, id uuid.UUID) (*branch.Branch, error) {
	var model BranchModel
	q := r.db.WithContext(ctx)
	if r.forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := q.Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translate(err, domain.ErrBranchNotFound, id)
	}
	return branch.Reconstruct(model.ID, model.Name, model.City), nil
}

// FindAll returns every branch ordered by name.
func (r *GormBranchRepository) FindAll(ctx context.Context) ([]*branch.Branch, error) {
	var models []BranchModel
	if err := r.db.WithContext(ctx).Order("name, id").Find(&models).Error; err != nil {
		return nil, err
	}
	result := make([]*branch.Branch, 0, len(models))
	for _, m := range models {
		result = append(result, branch.Reconstruct(m.ID, m.Name, m.City))
	}
	return result, nil
}

// Save persists a new branch.
func (r *GormBranchRepository) Save(ctx context.Context, b *branch.Branch) error {
	now := time.Now().UTC()
	model := BranchModel{ID: b.ID(), Name: b.Name(), City: b.City(), CreatedAt: now, UpdatedAt: now}
	return translate(r.db.WithContext(ctx).Create(&model).Error, domain.ErrBranchNotFound, b.ID())
}

// Update writes the branch's name and city.
func (r *GormBranchRepository) Update(ctx context.Context, b *branch.Branch) error {
	result := r.db.WithContext(ctx).Model(&BranchModel{}).Where("id = ?", b.ID()).Updates(map[string]any{
		"name":       b.Name(),
		"city":       b.City(),
		"updated_at": time.Now().UTC(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError(domain.ErrBranchNotFound, b.ID())
	}
	return nil
}

// Delete removes a branch.
func (r *GormBranchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&BranchModel{})
	if result.Error != nil {
		return translate(result.Error, domain.ErrBranchNotFound, id)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError(domain.ErrBranchNotFound, id)
	}
	return nil
}
