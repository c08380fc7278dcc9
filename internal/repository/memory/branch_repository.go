package memory

import (
	"context"
	"sort"

	"github.com/fondos-platform/service-subscription/internal/domain"
	"github.com/fondos-platform/service-subscription/internal/domain/branch"
	"github.com/google/uuid"
)

// BranchRepository implements branch.BranchRepository on a Store.
type BranchRepository struct {
	store *Store
	tx    *journal
}

func (r *BranchRepository) FindByID(ctx context.Context, id uuid.UUID) (*branch.Branch, error) {
	defer r.store.readLock(r.tx)()
	b, ok := r.store.branches[id]
	if !ok {
		return nil, domain.NewNotFoundError(domain.ErrBranchNotFound, id)
	}
	return &b, nil
}

func (r *BranchRepository) FindAll(ctx context.Context) ([]*branch.Branch, error) {
	defer r.store.readLock(r.tx)()
	result := make([]*branch.Branch, 0, len(r.store.branches))
	for _, b := range r.store.branches {
		result = append(result, &b)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name() != result[j].Name() {
			return result[i].Name() < result[j].Name()
		}
		return result[i].ID().String() < result[j].ID().String()
	})
	return result, nil
}

func (r *BranchRepository) Save(ctx context.Context, b *branch.Branch) error {
	defer r.store.writeLock(r.tx)()
	if _, ok := r.store.branches[b.ID()]; ok {
		return domain.NewConflictError("branch %s already exists", b.ID())
	}
	r.store.branches[b.ID()] = *b
	r.tx.record(func() { delete(r.store.branches, b.ID()) })
	return nil
}

func (r *BranchRepository) Update(ctx context.Context, b *branch.Branch) error {
	defer r.store.writeLock(r.tx)()
	prev, ok := r.store.branches[b.ID()]
	if !ok {
		return domain.NewNotFoundError(domain.ErrBranchNotFound, b.ID())
	}
	r.store.branches[b.ID()] = *b
	r.tx.record(func() { r.store.branches[prev.ID()] = prev })
	return nil
}

func (r *BranchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.store.writeLock(r.tx)()
	prev, ok := r.store.branches[id]
	if !ok {
		return domain.NewNotFoundError(domain.ErrBranchNotFound, id)
	}
	delete(r.store.branches, id)
	r.tx.record(func() { r.store.branches[id] = prev })

	for aid, a := range r.store.availability {
		if a.BranchID() == id {
			r.store.dropAvailability(r.tx, aid, a)
		}
	}
	for aid, a := range r.store.appointments {
		if a.BranchID() == id {
			r.store.dropAppointment(r.tx, aid, a)
		}
	}
	return nil
}
