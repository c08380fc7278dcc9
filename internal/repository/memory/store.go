// Package memory is the single-process store. All state sits behind one lock;
// a unit of work holds it for its whole sequence, so concurrent operations are
// fully serialized and never observe each other half-applied.
package memory

import (
	"context"
	"sync"

	"github.com/fondos-platform/service-subscription/internal/application"
	"github.com/fondos-platform/service-subscription/internal/domain/availability"
	"github.com/fondos-platform/service-subscription/internal/domain/branch"
	"github.com/fondos-platform/service-subscription/internal/domain/client"
	"github.com/fondos-platform/service-subscription/internal/domain/product"
	"github.com/fondos-platform/service-subscription/internal/domain/schedule"
	"github.com/fondos-platform/service-subscription/internal/domain/subscription"
	"github.com/fondos-platform/service-subscription/internal/domain/transaction"
	"github.com/google/uuid"
)

// Store holds entities as values so callers never share mutable state with it.
type Store struct {
	mu sync.RWMutex

	readOnlyCatalog bool
	products        map[int]product.Product
	clients         map[uuid.UUID]client.Client
	subscriptions   map[uuid.UUID]subscription.Subscription
	subOrder        []uuid.UUID
	transactions    []transaction.Transaction
	branches        map[uuid.UUID]branch.Branch
	availability    map[uuid.UUID]availability.Availability
	appointments    map[uuid.UUID]schedule.Appointment
}

// Option configures a Store.
type Option func(*Store)

// WithStaticCatalog loads a fixed product list and rejects catalog management.
func WithStaticCatalog(products []*product.Product) Option {
	return func(s *Store) {
		for _, p := range products {
			s.products[p.ID()] = *p
		}
		s.readOnlyCatalog = true
	}
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		products:      make(map[int]product.Product),
		clients:       make(map[uuid.UUID]client.Client),
		subscriptions: make(map[uuid.UUID]subscription.Subscription),
		branches:      make(map[uuid.UUID]branch.Branch),
		availability:  make(map[uuid.UUID]availability.Availability),
		appointments:  make(map[uuid.UUID]schedule.Appointment),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Repositories returns views that take the store lock on every call.
func (s *Store) Repositories() application.Repositories {
	return s.views(nil)
}

func (s *Store) views(j *journal) application.Repositories {
	return application.Repositories{
		Products:      &ProductRepository{store: s, tx: j},
		Clients:       &ClientRepository{store: s, tx: j},
		Subscriptions: &SubscriptionRepository{store: s, tx: j},
		Transactions:  &TransactionRepository{store: s, tx: j},
		Branches:      &BranchRepository{store: s, tx: j},
		Availability:  &AvailabilityRepository{store: s, tx: j},
		Appointments:  &AppointmentRepository{store: s, tx: j},
	}
}

// Products returns the lock-taking catalog repository.
func (s *Store) Products() *ProductRepository { return &ProductRepository{store: s} }

// Clients returns the lock-taking client repository.
func (s *Store) Clients() *ClientRepository { return &ClientRepository{store: s} }

// Branches returns the lock-taking branch repository.
func (s *Store) Branches() *BranchRepository { return &BranchRepository{store: s} }

// Availability returns the lock-taking availability repository.
func (s *Store) Availability() *AvailabilityRepository { return &AvailabilityRepository{store: s} }

// Appointments returns the lock-taking appointment repository.
func (s *Store) Appointments() *AppointmentRepository { return &AppointmentRepository{store: s} }

// Atomic runs fn while holding the store lock. If fn fails, every write it
// made is undone before the lock is released.
func (s *Store) Atomic(ctx context.Context, fn func(ctx context.Context, repos application.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	j := &journal{}
	if err := fn(ctx, s.views(j)); err != nil {
		j.rollback()
		return err
	}
	return nil
}

// journal records how to revert the writes of one unit of work.
type journal struct {
	undo []func()
}

func (j *journal) record(f func()) {
	if j != nil {
		j.undo = append(j.undo, f)
	}
}

func (j *journal) rollback() {
	for i := len(j.undo) - 1; i >= 0; i-- {
		j.undo[i]()
	}
	j.undo = nil
}

// readLock and writeLock are no-ops inside a unit of work, which already holds the lock.
func (s *Store) readLock(j *journal) func() {
	if j != nil {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

func (s *Store) writeLock(j *journal) func() {
	if j != nil {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}
