package memory

import (
	"context"
	"sort"

	"github.com/fondos-platform/service-subscription/internal/domain/transaction"
	"github.com/google/uuid"
)

// TransactionRepository implements transaction.TransactionRepository on a Store.
type TransactionRepository struct {
	store *Store
	tx    *journal
}

func (r *TransactionRepository) Append(ctx context.Context, t *transaction.Transaction) error {
	defer r.store.writeLock(r.tx)()
	r.store.transactions = append(r.store.transactions, *t)
	n := len(r.store.transactions) - 1
	r.tx.record(func() { r.store.transactions = r.store.transactions[:n] })
	return nil
}

func (r *TransactionRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*transaction.Transaction, error) {
	defer r.store.readLock(r.tx)()
	return r.newestFirst(func(t *transaction.Transaction) bool {
		s, ok := r.store.subscriptions[t.SubscriptionID()]
		return ok && s.ClientID() == clientID
	}), nil
}

func (r *TransactionRepository) ListBySubscription(ctx context.Context, subscriptionID uuid.UUID) ([]*transaction.Transaction, error) {
	defer r.store.readLock(r.tx)()
	return r.newestFirst(func(t *transaction.Transaction) bool {
		return t.SubscriptionID() == subscriptionID
	}), nil
}

// newestFirst orders by occurrence, latest append winning ties. Caller holds the lock.
func (r *TransactionRepository) newestFirst(match func(*transaction.Transaction) bool) []*transaction.Transaction {
	result := make([]*transaction.Transaction, 0)
	for i := len(r.store.transactions) - 1; i >= 0; i-- {
		t := r.store.transactions[i]
		if match(&t) {
			result = append(result, &t)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].OccurredAt().After(result[j].OccurredAt())
	})
	return result
}
