package memory

import (
	"context"
	"sort"

	"github.com/fondos-platform/service-subscription/internal/domain"
	"github.com/fondos-platform/service-subscription/internal/domain/subscription"
	"github.com/google/uuid"
)

// SubscriptionRepository implements subscription.SubscriptionRepository on a Store.
type SubscriptionRepository struct {
	store *Store
	tx    *journal
}

func (r *SubscriptionRepository) Save(ctx context.Context, s *subscription.Subscription) error {
	defer r.store.writeLock(r.tx)()
	if _, ok := r.store.subscriptions[s.ID()]; ok {
		return domain.NewConflictError("subscription %s already exists", s.ID())
	}
	r.store.subscriptions[s.ID()] = *s
	r.store.subOrder = append(r.store.subOrder, s.ID())
	n := len(r.store.subOrder) - 1
	r.tx.record(func() {
		delete(r.store.subscriptions, s.ID())
		r.store.subOrder = r.store.subOrder[:n]
	})
	return nil
}

func (r *SubscriptionRepository) Update(ctx context.Context, s *subscription.Subscription) error {
	defer r.store.writeLock(r.tx)()
	prev, ok := r.store.subscriptions[s.ID()]
	if !ok {
		return domain.NewNotFoundError(domain.ErrSubscriptionNotFound, s.ID())
	}
	r.store.subscriptions[s.ID()] = *s
	r.tx.record(func() { r.store.subscriptions[prev.ID()] = prev })
	return nil
}

func (r *SubscriptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*subscription.Subscription, error) {
	defer r.store.readLock(r.tx)()
	s, ok := r.store.subscriptions[id]
	if !ok {
		return nil, domain.NewNotFoundError(domain.ErrSubscriptionNotFound, id)
	}
	return &s, nil
}

func (r *SubscriptionRepository) FindAll(ctx context.Context) ([]*subscription.Subscription, error) {
	defer r.store.readLock(r.tx)()
	return r.collect(func(*subscription.Subscription) bool { return true }), nil
}

func (r *SubscriptionRepository) FindByClientID(ctx context.Context, clientID uuid.UUID) ([]*subscription.Subscription, error) {
	defer r.store.readLock(r.tx)()
	return r.collect(func(s *subscription.Subscription) bool { return s.ClientID() == clientID }), nil
}

func (r *SubscriptionRepository) ExistsForClient(ctx context.Context, clientID uuid.UUID) (bool, error) {
	defer r.store.readLock(r.tx)()
	for _, s := range r.store.subscriptions {
		if s.ClientID() == clientID {
			return true, nil
		}
	}
	return false, nil
}

// collect returns matching subscriptions oldest first. Caller holds the lock.
func (r *SubscriptionRepository) collect(match func(*subscription.Subscription) bool) []*subscription.Subscription {
	result := make([]*subscription.Subscription, 0)
	for _, id := range r.store.subOrder {
		s := r.store.subscriptions[id]
		if match(&s) {
			result = append(result, &s)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].SubscribedAt().Before(result[j].SubscribedAt())
	})
	return result
}
