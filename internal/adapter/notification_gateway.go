package adapter

import (
	"context"
	"fmt"
	"time"

	"github.com/fondos-platform/service-subscription/internal/domain"
	"github.com/fondos-platform/service-subscription/internal/domain/client"
	"github.com/fondos-platform/service-subscription/internal/domain/product"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NotificationGateway is told about completed subscription lifecycle events.
// Implementations may publish to a broker; callers treat any error as non-fatal.
type NotificationGateway interface {
	Notify(ctx context.Context, c *client.Client, p *product.Product, channel client.NotificationChannel, subscriptionID uuid.UUID, amount decimal.Decimal, at time.Time) error
	NotifyCancellation(ctx context.Context, c *client.Client, p *product.Product, channel client.NotificationChannel, subscriptionID uuid.UUID, amount decimal.Decimal, at time.Time) error
}

// SubscribedMessage renders the text sent to a client after subscribing.
func SubscribedMessage(productName string, amount decimal.Decimal) string {
	return fmt.Sprintf("You have subscribed to %s for %s.", productName, amount.StringFixed(domain.CurrencyPlaces))
}

// CancelledMessage renders the text sent to a client after cancelling.
func CancelledMessage(productName string, amount decimal.Decimal) string {
	return fmt.Sprintf("Your subscription to %s was cancelled and %s was returned to your balance.", productName, amount.StringFixed(domain.CurrencyPlaces))
}
