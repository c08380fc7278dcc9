package availability

import (
	"context"

	"github.com/google/uuid"
)

// AvailabilityRepository defines persistence operations for availability entries.
type AvailabilityRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Availability, error)
	FindAll(ctx context.Context) ([]*Availability, error)
	// FindByBranchAndProduct returns the entry for the pair, or a not-found error.
	FindByBranchAndProduct(ctx context.Context, branchID uuid.UUID, productID int) (*Availability, error)
	Save(ctx context.Context, a *Availability) error
	Update(ctx context.Context, a *Availability) error
	Delete(ctx context.Context, id uuid.UUID) error
}
