package repository

import (
	"context"

	"github.com/fondos-platform/service-subscription/internal/domain"
	"github.com/fondos-platform/service-subscription/internal/domain/transaction"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTransactionRepository implements transaction.TransactionRepository using GORM.
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository.
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// Append inserts an entry. Entries are never updated or deleted.
func (r *GormTransactionRepository) Append(ctx context.Context, t *transaction.Transaction) error {
	model := TransactionModel{
		ID: t.ID(), SubscriptionID: t.SubscriptionID(), ProductID: t.ProductID(),
		Amount: t.Amount(), Type: string(t.Type()), OccurredAt: t.OccurredAt(),
	}
	err := r.db.WithContext(ctx).Omit("Subscription").Create(&model).Error
	if err != nil {
		return translate(err, domain.ErrSubscriptionNotFound, t.SubscriptionID())
	}
	return nil
}

// ListByClient returns the client's entries, newest first.
func (r *GormTransactionRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*transaction.Transaction, error) {
	q := r.db.WithContext(ctx).
		Select("transactions.*").
		Joins("JOIN subscriptions ON subscriptions.id = transactions.subscription_id").
		Where("subscriptions.client_id = ?", clientID)
	return r.newestFirst(q)
}

// ListBySubscription returns the subscription's entries, newest first.
func (r *GormTransactionRepository) ListBySubscription(ctx context.Context, subscriptionID uuid.UUID) ([]*transaction.Transaction, error) {
	return r.newestFirst(r.db.WithContext(ctx).Where("transactions.subscription_id = ?", subscriptionID))
}

func (r *GormTransactionRepository) newestFirst(q *gorm.DB) ([]*transaction.Transaction, error) {
	var models []TransactionModel
	if err := q.Order("transactions.occurred_at DESC, transactions.seq DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	result := make([]*transaction.Transaction, 0, len(models))
	for _, m := range models {
		result = append(result, transaction.Reconstruct(
			m.ID, m.SubscriptionID, m.ProductID, m.Amount, transaction.Type(m.Type), m.OccurredAt,
		))
	}
	return result, nil
}
