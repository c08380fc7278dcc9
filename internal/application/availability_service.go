package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/fondos-platform/service-subscription/internal/domain"
	"github.com/fondos-platform/service-subscription/internal/domain/availability"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AvailabilityRequest pairs a branch with a product it offers.
type AvailabilityRequest struct {
	BranchID  uuid.UUID `json:"branch_id" binding:"required"`
	ProductID int       `json:"product_id" binding:"required,gt=0"`
}

// AvailabilityService handles which products each branch offers.
type AvailabilityService struct {
	uow    UnitOfWork
	repo   availability.AvailabilityRepository
	logger *zap.Logger
}

// NewAvailabilityService creates a new AvailabilityService.
func NewAvailabilityService(uow UnitOfWork, repo availability.AvailabilityRepository, logger *zap.Logger) *AvailabilityService {
	return &AvailabilityService{uow: uow, repo: repo, logger: logger}
}

// ListAvailability returns every entry ordered by branch and product.
func (s *AvailabilityService) ListAvailability(ctx context.Context) ([]*AvailabilityDTO, error) {
	entries, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list availability: %w", err)
	}
	result := make([]*AvailabilityDTO, 0, len(entries))
	for _, a := range entries {
		result = append(result, toAvailabilityDTO(a))
	}
	return result, nil
}

// GetAvailability returns a single entry.
func (s *AvailabilityService) GetAvailability(ctx context.Context, id uuid.UUID) (*AvailabilityDTO, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toAvailabilityDTO(a), nil
}

// CreateAvailability offers a product at a branch. Both must exist and the
// pair must not be registered yet.
func (s *AvailabilityService) CreateAvailability(ctx context.Context, req AvailabilityRequest) (*AvailabilityDTO, error) {
	a, err := availability.NewAvailability(uuid.New(), req.BranchID, req.ProductID)
	if err != nil {
		return nil, err
	}

	err = s.uow.Atomic(ctx, func(ctx context.Context, repos Repositories) error {
		if err := checkPair(ctx, repos, a); err != nil {
			return err
		}
		return repos.Availability.Save(ctx, a)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("product offered at branch",
		zap.String("availability_id", a.ID().String()),
		zap.String("branch_id", a.BranchID().String()),
		zap.Int("product_id", a.ProductID()),
	)
	return toAvailabilityDTO(a), nil
}

// UpdateAvailability moves an entry to another branch or product.
func (s *AvailabilityService) UpdateAvailability(ctx context.Context, id uuid.UUID, req AvailabilityRequest) (*AvailabilityDTO, error) {
	var updated *availability.Availability
	err := s.uow.Atomic(ctx, func(ctx context.Context, repos Repositories) error {
		a, err := repos.Availability.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := a.Reassign(req.BranchID, req.ProductID); err != nil {
			return err
		}
		if err := checkPair(ctx, repos, a); err != nil {
			return err
		}
		if err := repos.Availability.Update(ctx, a); err != nil {
			return err
		}
		updated = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("availability updated", zap.String("availability_id", id.String()))
	return toAvailabilityDTO(updated), nil
}

// DeleteAvailability stops offering a product at a branch.
func (s *AvailabilityService) DeleteAvailability(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("availability deleted", zap.String("availability_id", id.String()))
	return nil
}

// checkPair verifies the branch and product exist and that no other entry
// already pairs them.
func checkPair(ctx context.Context, repos Repositories, a *availability.Availability) error {
	if _, err := repos.Branches.FindByID(ctx, a.BranchID()); err != nil {
		return requireReference(err)
	}
	if _, err := repos.Products.FindByID(ctx, a.ProductID()); err != nil {
		return requireReference(err)
	}

	existing, err := repos.Availability.FindByBranchAndProduct(ctx, a.BranchID(), a.ProductID())
	switch {
	case err == nil && existing.ID() != a.ID():
		return domain.NewConflictError("product %d is already available at branch %s", a.ProductID(), a.BranchID())
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		return fmt.Errorf("failed to check availability: %w", err)
	}
	return nil
}
