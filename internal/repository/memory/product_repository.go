package memory

import (
	"context"
	"sort"

	"github.com/fondos-platform/service-subscription/internal/domain"
	"github.com/fondos-platform/service-subscription/internal/domain/product"
)

// ProductRepository implements product.ProductRepository on a Store.
// Deleting a product drops its availability entries.
type ProductRepository struct {
	store *Store
	tx    *journal
}

func (r *ProductRepository) FindByID(ctx context.Context, id int) (*product.Product, error) {
	defer r.store.readLock(r.tx)()
	p, ok := r.store.products[id]
	if !ok {
		return nil, domain.NewNotFoundError(domain.ErrProductNotFound, id)
	}
	return &p, nil
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]*product.Product, error) {
	defer r.store.readLock(r.tx)()
	result := make([]*product.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		result = append(result, &p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID() < result[j].ID() })
	return result, nil
}

func (r *ProductRepository) Save(ctx context.Context, p *product.Product) error {
	defer r.store.writeLock(r.tx)()
	if r.store.readOnlyCatalog {
		return domain.NewConflictError("product catalog is read-only")
	}
	if _, ok := r.store.products[p.ID()]; ok {
		return domain.NewConflictError("product %d already exists", p.ID())
	}
	r.store.products[p.ID()] = *p
	r.tx.record(func() { delete(r.store.products, p.ID()) })
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, p *product.Product) error {
	defer r.store.writeLock(r.tx)()
	if r.store.readOnlyCatalog {
		return domain.NewConflictError("product catalog is read-only")
	}
	prev, ok := r.store.products[p.ID()]
	if !ok {
		return domain.NewNotFoundError(domain.ErrProductNotFound, p.ID())
	}
	r.store.products[p.ID()] = *p
	r.tx.record(func() { r.store.products[prev.ID()] = prev })
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int) error {
	defer r.store.writeLock(r.tx)()
	if r.store.readOnlyCatalog {
		return domain.NewConflictError("product catalog is read-only")
	}
	prev, ok := r.store.products[id]
	if !ok {
		return domain.NewNotFoundError(domain.ErrProductNotFound, id)
	}
	delete(r.store.products, id)
	r.tx.record(func() { r.store.products[id] = prev })
	for aid, a := range r.store.availability {
		if a.ProductID() == id {
			r.store.dropAvailability(r.tx, aid, a)
		}
	}
	return nil
}
