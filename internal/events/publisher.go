package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fondos-platform/service-subscription/internal/platform/kafka"
	"github.com/fondos-platform/service-subscription/internal/platform/rabbitmq"
	"go.uber.org/zap"
)

// Publisher delivers a CloudEvent to a broker.
type Publisher interface {
	Publish(ctx context.Context, ce kafka.CloudEvent) error
	Close() error
}

// KafkaPublisher writes events to the subscription topic.
type KafkaPublisher struct {
	producer *kafka.Producer
	topic    string
}

// NewKafkaPublisher creates a publisher for TopicSubscriptionEvents.
func NewKafkaPublisher(producer *kafka.Producer) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: TopicSubscriptionEvents}
}

func (p *KafkaPublisher) Publish(ctx context.Context, ce kafka.CloudEvent) error {
	return p.producer.PublishEvent(ctx, p.topic, ce)
}

func (p *KafkaPublisher) Close() error { return p.producer.Close() }

// RabbitPublisher sends events to an exchange, routed by event type.
type RabbitPublisher struct {
	publisher *rabbitmq.Publisher
}

// NewRabbitPublisher wraps an AMQP publisher.
func NewRabbitPublisher(publisher *rabbitmq.Publisher) *RabbitPublisher {
	return &RabbitPublisher{publisher: publisher}
}

func (p *RabbitPublisher) Publish(ctx context.Context, ce kafka.CloudEvent) error {
	body, err := json.Marshal(ce)
	if err != nil {
		return fmt.Errorf("failed to marshal cloud event: %w", err)
	}
	return p.publisher.Publish(ctx, ce.Type, body)
}

func (p *RabbitPublisher) Close() error { return p.publisher.Close() }

// LogPublisher only logs events. It is used when no broker is configured.
type LogPublisher struct {
	logger *zap.Logger
}

// NewLogPublisher creates a LogPublisher.
func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, ce kafka.CloudEvent) error {
	p.logger.Info("event emitted",
		zap.String("type", ce.Type),
		zap.String("id", ce.ID),
		zap.String("subject", ce.Subject),
		zap.ByteString("data", ce.Data),
	)
	return nil
}

func (p *LogPublisher) Close() error { return nil }
