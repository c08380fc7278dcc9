package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/fondos-platform/service-subscription/internal/domain"
	"github.com/fondos-platform/service-subscription/internal/domain/branch"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BranchRequest holds the fields of a bank branch.
type BranchRequest struct {
	Name string `json:"name" binding:"required,max=150"`
	City string `json:"city" binding:"required,max=120"`
}

// BranchService handles bank branch use cases.
type BranchService struct {
	uow    UnitOfWork
	repo   branch.BranchRepository
	logger *zap.Logger
}

// NewBranchService creates a new BranchService.
func NewBranchService(uow UnitOfWork, repo branch.BranchRepository, logger *zap.Logger) *BranchService {
	return &BranchService{uow: uow, repo: repo, logger: logger}
}

// ListBranches returns all branches ordered by name.
func (s *BranchService) ListBranches(ctx context.Context) ([]*BranchDTO, error) {
	branches, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	result := make([]*BranchDTO, 0, len(branches))
	for _, b := range branches {
		result = append(result, toBranchDTO(b))
	}
	return result, nil
}

// GetBranch returns a single branch.
func (s *BranchService) GetBranch(ctx context.Context, id uuid.UUID) (*BranchDTO, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toBranchDTO(b), nil
}

// CreateBranch opens a branch.
func (s *BranchService) CreateBranch(ctx context.Context, req BranchRequest) (*BranchDTO, error) {
	b, err := branch.NewBranch(uuid.New(), req.Name, req.City)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to save branch: %w", err)
	}

	s.logger.Info("branch created", zap.String("branch_id", b.ID().String()), zap.String("city", b.City()))
	return toBranchDTO(b), nil
}

// UpdateBranch renames a branch.
func (s *BranchService) UpdateBranch(ctx context.Context, id uuid.UUID, req BranchRequest) (*BranchDTO, error) {
	var updated *branch.Branch
	err := s.uow.Atomic(ctx, func(ctx context.Context, repos Repositories) error {
		b, err := repos.Branches.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := b.Rename(req.Name, req.City); err != nil {
			return err
		}
		if err := repos.Branches.Update(ctx, b); err != nil {
			return fmt.Errorf("failed to update branch: %w", err)
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("branch updated", zap.String("branch_id", id.String()))
	return toBranchDTO(updated), nil
}

// DeleteBranch closes a branch along with its availability entries and appointments.
func (s *BranchService) DeleteBranch(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("branch deleted", zap.String("branch_id", id.String()))
	return nil
}

// requireReference turns a missing referenced entity into a validation
// failure: the request body is wrong, not the addressed resource.
func requireReference(err error) error {
	var de *domain.DomainError
	if errors.Is(err, domain.ErrNotFound) && errors.As(err, &de) {
		return domain.NewValidationError("%s", de.Error())
	}
	return err
}
