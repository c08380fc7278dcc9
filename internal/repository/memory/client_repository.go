package memory

import (
	"context"
	"sort"

	"github.com/fondos-platform/service-subscription/internal/domain"
	"github.com/fondos-platform/service-subscription/internal/domain/client"
	"github.com/google/uuid"
)

// ClientRepository implements client.ClientRepository on a Store.
type ClientRepository struct {
	store *Store
	tx    *journal
}

func (r *ClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	defer r.store.readLock(r.tx)()
	c, ok := r.store.clients[id]
	if !ok {
		return nil, domain.NewNotFoundError(domain.ErrClientNotFound, id)
	}
	return &c, nil
}

func (r *ClientRepository) FindAll(ctx context.Context) ([]*client.Client, error) {
	defer r.store.readLock(r.tx)()
	result := make([]*client.Client, 0, len(r.store.clients))
	for _, c := range r.store.clients {
		result = append(result, &c)
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i].Info(), result[j].Info()
		if a.FirstName != b.FirstName {
			return a.FirstName < b.FirstName
		}
		if a.LastName != b.LastName {
			return a.LastName < b.LastName
		}
		return result[i].ID().String() < result[j].ID().String()
	})
	return result, nil
}

func (r *ClientRepository) Save(ctx context.Context, c *client.Client) error {
	defer r.store.writeLock(r.tx)()
	if _, ok := r.store.clients[c.ID()]; ok {
		return domain.NewConflictError("client %s already exists", c.ID())
	}
	r.store.clients[c.ID()] = *c
	r.tx.record(func() { delete(r.store.clients, c.ID()) })
	return nil
}

func (r *ClientRepository) Update(ctx context.Context, c *client.Client) error {
	defer r.store.writeLock(r.tx)()
	prev, ok := r.store.clients[c.ID()]
	if !ok {
		return domain.NewNotFoundError(domain.ErrClientNotFound, c.ID())
	}
	r.store.clients[c.ID()] = *c
	r.tx.record(func() { r.store.clients[prev.ID()] = prev })
	return nil
}

func (r *ClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.store.writeLock(r.tx)()
	prev, ok := r.store.clients[id]
	if !ok {
		return domain.NewNotFoundError(domain.ErrClientNotFound, id)
	}
	for _, s := range r.store.subscriptions {
		if s.ClientID() == id {
			return domain.NewConflictError("client %s still has subscriptions", id)
		}
	}
	delete(r.store.clients, id)
	r.tx.record(func() { r.store.clients[id] = prev })
	for aid, a := range r.store.appointments {
		if a.ClientID() == id {
			r.store.dropAppointment(r.tx, aid, a)
		}
	}
	return nil
}
