package transaction

import (
	"context"

	"github.com/google/uuid"
)

// TransactionRepository is the append-only transaction log.
type TransactionRepository interface {
	Append(ctx context.Context, t *Transaction) error
	// ListByClient returns the client's transactions, newest first.
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]*Transaction, error)
	ListBySubscription(ctx context.Context, subscriptionID uuid.UUID) ([]*Transaction, error)
}
