package application

import (
	"context"

	"github.com/fondos-platform/service-subscription/internal/domain/availability"
	"github.com/fondos-platform/service-subscription/internal/domain/branch"
	"github.com/fondos-platform/service-subscription/internal/domain/client"
	"github.com/fondos-platform/service-subscription/internal/domain/product"
	"github.com/fondos-platform/service-subscription/internal/domain/schedule"
	"github.com/fondos-platform/service-subscription/internal/domain/subscription"
	"github.com/fondos-platform/service-subscription/internal/domain/transaction"
)

// Repositories groups the stores a lifecycle operation touches.
type Repositories struct {
	Products      product.Catalog
	Clients       client.ClientRepository
	Subscriptions subscription.SubscriptionRepository
	Transactions  transaction.TransactionRepository
	Branches      branch.BranchRepository
	Availability  availability.AvailabilityRepository
	Appointments  schedule.AppointmentRepository
}

// UnitOfWork runs fn so that its writes through repos become visible together
// or not at all, and no other unit of work observes them half-applied.
type UnitOfWork interface {
	Atomic(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
