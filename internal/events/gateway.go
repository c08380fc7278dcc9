package events

import (
	"context"
	"time"

	"github.com/fondos-platform/service-subscription/internal/adapter"
	"github.com/fondos-platform/service-subscription/internal/domain"
	"github.com/fondos-platform/service-subscription/internal/domain/client"
	"github.com/fondos-platform/service-subscription/internal/domain/product"
	"github.com/fondos-platform/service-subscription/internal/platform/kafka"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// EventGateway implements adapter.NotificationGateway by publishing a
// CloudEvent per lifecycle event. Delivery to the client happens downstream.
type EventGateway struct {
	publisher Publisher
	logger    *zap.Logger
}

var _ adapter.NotificationGateway = (*EventGateway)(nil)

// NewEventGateway creates a new EventGateway.
func NewEventGateway(publisher Publisher, logger *zap.Logger) *EventGateway {
	return &EventGateway{publisher: publisher, logger: logger}
}

// Notify announces a new subscription.
func (g *EventGateway) Notify(ctx context.Context, c *client.Client, p *product.Product, channel client.NotificationChannel, subscriptionID uuid.UUID, amount decimal.Decimal, at time.Time) error {
	msg := adapter.SubscribedMessage(p.Name(), amount)
	return g.publish(ctx, SubscriptionCreated, c, p, channel, subscriptionID, amount, at, msg)
}

// NotifyCancellation announces a cancelled subscription.
func (g *EventGateway) NotifyCancellation(ctx context.Context, c *client.Client, p *product.Product, channel client.NotificationChannel, subscriptionID uuid.UUID, amount decimal.Decimal, at time.Time) error {
	msg := adapter.CancelledMessage(p.Name(), amount)
	return g.publish(ctx, SubscriptionCancelled, c, p, channel, subscriptionID, amount, at, msg)
}

func (g *EventGateway) publish(
	ctx context.Context,
	eventType string,
	c *client.Client,
	p *product.Product,
	channel client.NotificationChannel,
	subscriptionID uuid.UUID,
	amount decimal.Decimal,
	at time.Time,
	message string,
) error {
	event := SubscriptionNotificationEvent{
		SubscriptionID: subscriptionID.String(),
		ClientID:       c.ID().String(),
		ClientName:     c.Info().FullName(),
		ProductID:      p.ID(),
		ProductName:    p.Name(),
		Amount:         amount.StringFixed(domain.CurrencyPlaces),
		Channel:        string(channel),
		Recipient:      recipient(c, channel),
		Message:        message,
		OccurredAt:     at,
	}

	ce, err := kafka.NewCloudEvent(Source, eventType, event)
	if err != nil {
		return err
	}
	ce.Subject = subscriptionID.String()

	g.logger.Info("notifying client",
		zap.String("type", eventType),
		zap.String("client_id", event.ClientID),
		zap.String("channel", event.Channel),
		zap.String("message", message),
	)
	return g.publisher.Publish(ctx, ce)
}

func recipient(c *client.Client, channel client.NotificationChannel) string {
	if channel == client.ChannelSMS {
		return c.Info().Phone
	}
	return c.Info().Email
}
