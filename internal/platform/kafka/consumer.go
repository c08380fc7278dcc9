package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageHandler processes one message. A failing handler is retried with
// backoff; once attempts run out Consume stops without committing, so the
// group redelivers the message to the next reader. Wrap the error with
// Permanent to skip a message that can never succeed.
type MessageHandler func(ctx context.Context, msg kafkago.Message) error

// messageReader is the subset of *kafkago.Reader the consumer needs.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// RetryPolicy bounds how often a failing message is handled again.
type RetryPolicy struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
}

// DefaultRetryPolicy retries for roughly three seconds before giving up.
var DefaultRetryPolicy = RetryPolicy{MaxAttempts: 5, InitialDelay: 200 * time.Millisecond, MaxDelay: 2 * time.Second}

// delay returns the wait before the given retry, starting at 1.
func (p RetryPolicy) delay(retry int) time.Duration {
	d := p.InitialDelay
	for i := 1; i < retry; i++ {
		d *= 2
		if d >= p.MaxDelay {
			return p.MaxDelay
		}
	}
	return d
}

type permanentError struct{ err error }

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying. The message is logged and committed.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent reports whether err was marked with Permanent.
func IsPermanent(err error) bool {
	var pe *permanentError
	return errors.As(err, &pe)
}

// Consumer reads a topic as part of a consumer group.
type Consumer struct {
	reader messageReader
	retry  RetryPolicy
	logger *zap.Logger
}

// ConsumerOption configures a Consumer.
type ConsumerOption func(*Consumer)

// WithRetryPolicy overrides DefaultRetryPolicy.
func WithRetryPolicy(p RetryPolicy) ConsumerOption {
	return func(c *Consumer) { c.retry = p }
}

// NewConsumer creates a group consumer for topic. Commits are synchronous so
// an offset is only stored once its handler has succeeded.
func NewConsumer(brokers []string, groupID, topic string, logger *zap.Logger, opts ...ConsumerOption) *Consumer {
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        brokers,
		GroupID:        groupID,
		Topic:          topic,
		MinBytes:       1,
		MaxBytes:       10e6,
		MaxWait:        500 * time.Millisecond,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	return newConsumer(reader, logger, opts...)
}

func newConsumer(reader messageReader, logger *zap.Logger, opts ...ConsumerOption) *Consumer {
	c := &Consumer{reader: reader, retry: DefaultRetryPolicy, logger: logger}
	for _, opt := range opts {
		opt(c)
	}
	if c.retry.MaxAttempts < 1 {
		c.retry.MaxAttempts = 1
	}
	return c
}

// Consume fetches messages until ctx is cancelled, committing each one the
// handler accepts. It returns an error when a message still fails after the
// last retry; that message stays uncommitted.
func (c *Consumer) Consume(ctx context.Context, handler MessageHandler) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("failed to fetch message: %w", err)
		}

		if err := c.handle(ctx, handler, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if !IsPermanent(err) {
				return fmt.Errorf("giving up on %s/%d@%d: %w", msg.Topic, msg.Partition, msg.Offset, err)
			}
			c.logger.Error("skipping unprocessable message",
				zap.String("topic", msg.Topic),
				zap.Int("partition", msg.Partition),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("failed to commit offset %d: %w", msg.Offset, err)
		}
	}
}

// handle runs handler until it succeeds, fails permanently, or the retry
// policy is exhausted.
func (c *Consumer) handle(ctx context.Context, handler MessageHandler, msg kafkago.Message) error {
	var err error
	for attempt := 1; ; attempt++ {
		if err = handler(ctx, msg); err == nil || IsPermanent(err) {
			return err
		}
		if attempt >= c.retry.MaxAttempts {
			return err
		}

		wait := c.retry.delay(attempt)
		c.logger.Warn("failed to handle message, retrying",
			zap.String("topic", msg.Topic),
			zap.Int("partition", msg.Partition),
			zap.Int64("offset", msg.Offset),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", wait),
			zap.Error(err),
		)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Close leaves the consumer group.
func (c *Consumer) Close() error {
	return c.reader.Close()
}
