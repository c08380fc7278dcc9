package subscription

import (
	"context"

	"github.com/google/uuid"
)

// SubscriptionRepository defines persistence operations for subscriptions.
type SubscriptionRepository interface {
	Save(ctx context.Context, s *Subscription) error
	Update(ctx context.Context, s *Subscription) error
	FindByID(ctx context.Context, id uuid.UUID) (*Subscription, error)
	FindAll(ctx context.Context) ([]*Subscription, error)
	FindByClientID(ctx context.Context, clientID uuid.UUID) ([]*Subscription, error)
	ExistsForClient(ctx context.Context, clientID uuid.UUID) (bool, error)
}
