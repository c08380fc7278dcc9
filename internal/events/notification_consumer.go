package events

import (
	"context"
	"fmt"
	"strings"

	"github.com/fondos-platform/service-subscription/internal/adapter"
	"github.com/fondos-platform/service-subscription/internal/domain/client"
	"github.com/fondos-platform/service-subscription/internal/platform/kafka"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// NotificationConsumer listens to subscription events and delivers the
// client-facing message over the requested channel.
type NotificationConsumer struct {
	consumer *kafka.Consumer
	sender   adapter.NotificationSender
	logger   *zap.Logger
}

// NewNotificationConsumer creates a new consumer for subscription events.
func NewNotificationConsumer(
	brokers []string,
	groupID string,
	sender adapter.NotificationSender,
	logger *zap.Logger,
) *NotificationConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, TopicSubscriptionEvents, logger)
	return &NotificationConsumer{
		consumer: consumer,
		sender:   sender,
		logger:   logger,
	}
}

// Start begins consuming subscription events. It blocks until the context is cancelled.
func (c *NotificationConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// handleMessage routes incoming Kafka messages to the appropriate handler.
func (c *NotificationConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	cloudEvent, err := kafka.ParseCloudEvent(msg.Value)
	if err != nil {
		c.logger.Error("failed to parse cloud event from subscription topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return kafka.Permanent(err)
	}

	c.logger.Info("received subscription event",
		zap.String("type", cloudEvent.Type),
		zap.String("id", cloudEvent.ID),
	)

	switch {
	case strings.EqualFold(cloudEvent.Type, SubscriptionCreated):
		return c.deliver(ctx, cloudEvent, "Subscription confirmed")

	case strings.EqualFold(cloudEvent.Type, SubscriptionCancelled):
		return c.deliver(ctx, cloudEvent, "Subscription cancelled")

	default:
		c.logger.Debug("ignoring unhandled subscription event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

// deliver sends the event message through the client's channel.
func (c *NotificationConsumer) deliver(ctx context.Context, ce kafka.CloudEvent, subject string) error {
	var event SubscriptionNotificationEvent
	if err := ce.ParseData(&event); err != nil {
		c.logger.Error("failed to parse SubscriptionNotificationEvent data", zap.Error(err))
		return kafka.Permanent(err)
	}

	var (
		messageID string
		err       error
	)
	switch client.NotificationChannel(event.Channel) {
	case client.ChannelSMS:
		messageID, err = c.sender.SendSMS(ctx, event.Recipient, event.Message)
	case client.ChannelEmail:
		messageID, err = c.sender.SendEmail(ctx, event.Recipient, subject+": "+event.ProductName, event.Message)
	default:
		c.logger.Warn("dropping event with unknown channel",
			zap.String("id", ce.ID),
			zap.String("channel", event.Channel),
		)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to deliver %s notification: %w", event.Channel, err)
	}

	c.logger.Info("client notified",
		zap.String("subscription_id", event.SubscriptionID),
		zap.String("channel", event.Channel),
		zap.String("message_id", messageID),
	)
	return nil
}

// Close closes the underlying Kafka consumer.
func (c *NotificationConsumer) Close() error {
	return c.consumer.Close()
}
