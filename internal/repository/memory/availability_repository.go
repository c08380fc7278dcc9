package memory

import (
	"context"
	"sort"
	"strconv"

	"github.com/fondos-platform/service-subscription/internal/domain"
	"github.com/fondos-platform/service-subscription/internal/domain/availability"
	"github.com/google/uuid"
)

// AvailabilityRepository implements availability.AvailabilityRepository on a Store.
type AvailabilityRepository struct {
	store *Store
	tx    *journal
}

func (r *AvailabilityRepository) FindByID(ctx context.Context, id uuid.UUID) (*availability.Availability, error) {
	defer r.store.readLock(r.tx)()
	a, ok := r.store.availability[id]
	if !ok {
		return nil, domain.NewNotFoundError(domain.ErrAvailabilityNotFound, id)
	}
	return &a, nil
}

func (r *AvailabilityRepository) FindAll(ctx context.Context) ([]*availability.Availability, error) {
	defer r.store.readLock(r.tx)()
	result := make([]*availability.Availability, 0, len(r.store.availability))
	for _, a := range r.store.availability {
		result = append(result, &a)
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.BranchID() != b.BranchID() {
			return a.BranchID().String() < b.BranchID().String()
		}
		return a.ProductID() < b.ProductID()
	})
	return result, nil
}

func (r *AvailabilityRepository) FindByBranchAndProduct(ctx context.Context, branchID uuid.UUID, productID int) (*availability.Availability, error) {
	defer r.store.readLock(r.tx)()
	for _, a := range r.store.availability {
		if a.BranchID() == branchID && a.ProductID() == productID {
			return &a, nil
		}
	}
	return nil, domain.NewNotFoundError(domain.ErrAvailabilityNotFound, pairKey(branchID, productID))
}

func (r *AvailabilityRepository) Save(ctx context.Context, a *availability.Availability) error {
	defer r.store.writeLock(r.tx)()
	if _, ok := r.store.availability[a.ID()]; ok {
		return domain.NewConflictError("availability %s already exists", a.ID())
	}
	if err := r.checkPair(a); err != nil {
		return err
	}
	r.store.availability[a.ID()] = *a
	r.tx.record(func() { delete(r.store.availability, a.ID()) })
	return nil
}

func (r *AvailabilityRepository) Update(ctx context.Context, a *availability.Availability) error {
	defer r.store.writeLock(r.tx)()
	prev, ok := r.store.availability[a.ID()]
	if !ok {
		return domain.NewNotFoundError(domain.ErrAvailabilityNotFound, a.ID())
	}
	if err := r.checkPair(a); err != nil {
		return err
	}
	r.store.availability[a.ID()] = *a
	r.tx.record(func() { r.store.availability[prev.ID()] = prev })
	return nil
}

func (r *AvailabilityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.store.writeLock(r.tx)()
	prev, ok := r.store.availability[id]
	if !ok {
		return domain.NewNotFoundError(domain.ErrAvailabilityNotFound, id)
	}
	r.store.dropAvailability(r.tx, id, prev)
	return nil
}

// checkPair rejects a second entry for the same branch and product.
func (r *AvailabilityRepository) checkPair(a *availability.Availability) error {
	for id, other := range r.store.availability {
		if id != a.ID() && other.BranchID() == a.BranchID() && other.ProductID() == a.ProductID() {
			return domain.NewConflictError("product %d is already available at branch %s", a.ProductID(), a.BranchID())
		}
	}
	return nil
}

// dropAvailability deletes an entry; the caller holds the write lock.
func (s *Store) dropAvailability(j *journal, id uuid.UUID, prev availability.Availability) {
	delete(s.availability, id)
	j.record(func() { s.availability[id] = prev })
}

func pairKey(branchID uuid.UUID, productID int) string {
	return branchID.String() + "/" + strconv.Itoa(productID)
}
