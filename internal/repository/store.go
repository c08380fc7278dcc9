package repository

import (
	"context"

	"github.com/fondos-platform/service-subscription/internal/application"
	"github.com/fondos-platform/service-subscription/internal/domain/product"
	"gorm.io/gorm"
)

// Store is the PostgreSQL-backed unit of work. Each Atomic call runs in one
// database transaction and row-locks the client and subscription it reads.
type Store struct {
	db       *gorm.DB
	products product.ProductRepository
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithProductRepository replaces the catalog, for example with a cached one.
func WithProductRepository(repo product.ProductRepository) StoreOption {
	return func(s *Store) { s.products = repo }
}

// NewStore creates a new Store.
func NewStore(db *gorm.DB, opts ...StoreOption) *Store {
	s := &Store{db: db, products: NewGormProductRepository(db)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Repositories returns non-transactional repositories for read paths.
func (s *Store) Repositories() application.Repositories {
	return application.Repositories{
		Products:      s.products,
		Clients:       NewGormClientRepository(s.db),
		Subscriptions: NewGormSubscriptionRepository(s.db),
		Transactions:  NewGormTransactionRepository(s.db),
		Branches:      NewGormBranchRepository(s.db),
		Availability:  NewGormAvailabilityRepository(s.db),
		Appointments:  NewGormAppointmentRepository(s.db),
	}
}

// Products returns the catalog repository.
func (s *Store) Products() product.ProductRepository { return s.products }

// Clients returns a non-transactional client repository.
func (s *Store) Clients() *GormClientRepository { return NewGormClientRepository(s.db) }

// Branches returns a non-transactional branch repository.
func (s *Store) Branches() *GormBranchRepository { return NewGormBranchRepository(s.db) }

// Availability returns a non-transactional availability repository.
func (s *Store) Availability() *GormAvailabilityRepository { return NewGormAvailabilityRepository(s.db) }

// Appointments returns a non-transactional appointment repository.
func (s *Store) Appointments() *GormAppointmentRepository { return NewGormAppointmentRepository(s.db) }

// Atomic runs fn inside a transaction. Any error rolls back every write.
// The catalog is read outside the transaction; lifecycle operations only read it.
// Branch reads lock the row so a concurrent delete cannot orphan new references.
func (s *Store) Atomic(ctx context.Context, fn func(ctx context.Context, repos application.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, application.Repositories{
			Products:      s.products,
			Clients:       &GormClientRepository{db: tx, forUpdate: true},
			Subscriptions: &GormSubscriptionRepository{db: tx, forUpdate: true},
			Transactions:  NewGormTransactionRepository(tx),
			Branches:      &GormBranchRepository{db: tx, forUpdate: true},
			Availability:  NewGormAvailabilityRepository(tx),
			Appointments:  NewGormAppointmentRepository(tx),
		})
	})
}
