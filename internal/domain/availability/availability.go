package availability

import (
	"github.com/fondos-platform/service-subscription/internal/domain"
	"github.com/google/uuid"
)

// Availability records that a product is offered at a branch. A branch and
// product pair appears at most once.
type Availability struct {
	id        uuid.UUID
	branchID  uuid.UUID
	productID int
}

// NewAvailability validates and builds an Availability. A nil id gets a fresh one.
func NewAvailability(id, branchID uuid.UUID, productID int) (*Availability, error) {
	if id == uuid.Nil {
		id = uuid.New()
	}
	a := &Availability{id: id}
	if err := a.Reassign(branchID, productID); err != nil {
		return nil, err
	}
	return a, nil
}

// Reconstruct rebuilds an Availability from persistence.
func Reconstruct(id, branchID uuid.UUID, productID int) *Availability {
	return &Availability{id: id, branchID: branchID, productID: productID}
}

// Reassign points the entry at another branch and product.
func (a *Availability) Reassign(branchID uuid.UUID, productID int) error {
	if branchID == uuid.Nil {
		return domain.NewValidationError("branch id is required")
	}
	if productID <= 0 {
		return domain.NewValidationError("product id must be a positive integer")
	}
	a.branchID, a.productID = branchID, productID
	return nil
}

// Getters.
func (a *Availability) ID() uuid.UUID       { return a.id }
func (a *Availability) BranchID() uuid.UUID { return a.branchID }
func (a *Availability) ProductID() int      { return a.productID }
