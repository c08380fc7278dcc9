package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type tells which lifecycle event produced a transaction.
type Type string

const (
	TypeSubscription Type = "subscription"
	TypeCancellation Type = "cancellation"
)

// Transaction is an append-only audit record of a balance-affecting event.
type Transaction struct {
	id             uuid.UUID
	subscriptionID uuid.UUID
	productID      int
	amount         decimal.Decimal
	txType         Type
	occurredAt     time.Time
}

// NewTransaction records an event at the given instant.
func NewTransaction(subscriptionID uuid.UUID, productID int, amount decimal.Decimal, txType Type, occurredAt time.Time) *Transaction {
	return &Transaction{
		id:             uuid.New(),
		subscriptionID: subscriptionID,
		productID:      productID,
		amount:         amount,
		txType:         txType,
		occurredAt:     occurredAt.UTC(),
	}
}

// Reconstruct rebuilds a Transaction from persistence.
func Reconstruct(id, subscriptionID uuid.UUID, productID int, amount decimal.Decimal, txType Type, occurredAt time.Time) *Transaction {
	return &Transaction{
		id: id, subscriptionID: subscriptionID, productID: productID,
		amount: amount, txType: txType, occurredAt: occurredAt,
	}
}

// Getters.
func (t *Transaction) ID() uuid.UUID             { return t.id }
func (t *Transaction) SubscriptionID() uuid.UUID { return t.subscriptionID }
func (t *Transaction) ProductID() int            { return t.productID }
func (t *Transaction) Amount() decimal.Decimal   { return t.amount }
func (t *Transaction) Type() Type                { return t.txType }
func (t *Transaction) OccurredAt() time.Time     { return t.occurredAt }
