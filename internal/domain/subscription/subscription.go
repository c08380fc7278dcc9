package subscription

import (
	"time"

	"github.com/fondos-platform/service-subscription/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Subscription is the aggregate root tying a client to a product.
// A nil cancelledAt means the subscription is active; cancellation is terminal.
type Subscription struct {
	id           uuid.UUID
	clientID     uuid.UUID
	productID    int
	amount       decimal.Decimal
	subscribedAt time.Time
	cancelledAt  *time.Time
}

// NewSubscription creates an active subscription locking in amount.
func NewSubscription(clientID uuid.UUID, productID int, amount decimal.Decimal, now time.Time) (*Subscription, error) {
	if err := domain.CheckAmount(amount); err != nil {
		return nil, err
	}
	return &Subscription{
		id:           uuid.New(),
		clientID:     clientID,
		productID:    productID,
		amount:       amount,
		subscribedAt: now.UTC(),
	}, nil
}

// Reconstruct rebuilds a Subscription from persistence.
func Reconstruct(id, clientID uuid.UUID, productID int, amount decimal.Decimal, subscribedAt time.Time, cancelledAt *time.Time) *Subscription {
	s := &Subscription{
		id: id, clientID: clientID, productID: productID,
		amount: amount, subscribedAt: subscribedAt,
	}
	if cancelledAt != nil {
		at := *cancelledAt
		s.cancelledAt = &at
	}
	return s
}

// Cancel moves the subscription to its terminal state. A second call fails
// with ErrAlreadyCancelled and leaves the original timestamp untouched.
func (s *Subscription) Cancel(now time.Time) error {
	if !s.IsActive() {
		return domain.NewError(domain.ErrAlreadyCancelled, "subscription %s was already cancelled", s.id)
	}
	at := now.UTC()
	s.cancelledAt = &at
	return nil
}

// IsActive reports whether the subscription has not been cancelled.
func (s *Subscription) IsActive() bool {
	return s.cancelledAt == nil
}

// CancelledAt returns a copy of the cancellation time, or nil while active.
func (s *Subscription) CancelledAt() *time.Time {
	if s.cancelledAt == nil {
		return nil
	}
	at := *s.cancelledAt
	return &at
}

// Getters.
func (s *Subscription) ID() uuid.UUID           { return s.id }
func (s *Subscription) ClientID() uuid.UUID     { return s.clientID }
func (s *Subscription) ProductID() int          { return s.productID }
func (s *Subscription) Amount() decimal.Decimal { return s.amount }
func (s *Subscription) SubscribedAt() time.Time { return s.subscribedAt }
