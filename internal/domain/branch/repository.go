package branch

import (
	"context"

	"github.com/google/uuid"
)

// BranchRepository defines persistence operations for branches. Deleting a
// branch also removes its availability entries and appointments.
type BranchRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Branch, error)
	FindAll(ctx context.Context) ([]*Branch, error)
	Save(ctx context.Context, b *Branch) error
	Update(ctx context.Context, b *Branch) error
	Delete(ctx context.Context, id uuid.UUID) error
}
