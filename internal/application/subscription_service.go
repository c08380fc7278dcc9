package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fondos-platform/service-subscription/internal/adapter"
	"github.com/fondos-platform/service-subscription/internal/domain"
	"github.com/fondos-platform/service-subscription/internal/domain/client"
	"github.com/fondos-platform/service-subscription/internal/domain/product"
	"github.com/fondos-platform/service-subscription/internal/domain/subscription"
	"github.com/fondos-platform/service-subscription/internal/domain/transaction"
	"github.com/fondos-platform/service-subscription/internal/platform/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Notification event names used for logging and metrics.
const (
	eventSubscribed = "subscription.created"
	eventCancelled  = "subscription.cancelled"
)

// SubscribeRequest holds data to subscribe a client to a product.
// A nil Amount subscribes for exactly the product minimum.
type SubscribeRequest struct {
	ClientID            uuid.UUID        `json:"client_id" binding:"required"`
	ProductID           int              `json:"product_id" binding:"required,gt=0"`
	Amount              *decimal.Decimal `json:"amount"`
	NotificationChannel *string          `json:"notification_channel"`
}

// SubscriptionService coordinates the subscribe and cancel lifecycle.
type SubscriptionService struct {
	uow      UnitOfWork
	repos    Repositories
	notifier adapter.NotificationGateway
	clock    Clock
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewSubscriptionService creates a new SubscriptionService. repos serves
// read-only queries; every mutation goes through uow.
func NewSubscriptionService(
	uow UnitOfWork,
	repos Repositories,
	notifier adapter.NotificationGateway,
	clock Clock,
	m *metrics.Metrics,
	logger *zap.Logger,
) *SubscriptionService {
	return &SubscriptionService{
		uow:      uow,
		repos:    repos,
		notifier: notifier,
		clock:    clock,
		metrics:  m,
		logger:   logger,
	}
}

// lifecycleOutcome is what the notification step needs from a committed operation.
type lifecycleOutcome struct {
	client  *client.Client
	product *product.Product
	sub     *subscription.Subscription
	at      time.Time
}

// Subscribe debits the client and opens a subscription to the product.
func (s *SubscriptionService) Subscribe(ctx context.Context, req SubscribeRequest) (*SubscriptionDTO, error) {
	if err := ctx.Err(); err != nil {
		s.metrics.ObserveSubscription(resultLabel(err))
		return nil, fmt.Errorf("subscribe: %w", err)
	}

	var channel *client.NotificationChannel
	if req.NotificationChannel != nil {
		parsed, err := client.ParseNotificationChannel(*req.NotificationChannel)
		if err != nil {
			s.metrics.ObserveSubscription(resultLabel(err))
			return nil, err
		}
		channel = &parsed
	}

	var out lifecycleOutcome
	err := s.uow.Atomic(ctx, func(ctx context.Context, repos Repositories) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		p, err := repos.Products.FindByID(ctx, req.ProductID)
		if err != nil {
			return err
		}

		amount := p.MinimumAmount()
		if req.Amount != nil {
			amount = *req.Amount
			if amount.LessThan(p.MinimumAmount()) {
				return domain.NewError(domain.ErrBelowMinimumAmount,
					"amount %s is below the minimum of %s for %s",
					amount.StringFixed(domain.CurrencyPlaces),
					p.MinimumAmount().StringFixed(domain.CurrencyPlaces),
					p.Name())
			}
		}

		c, err := repos.Clients.FindByID(ctx, req.ClientID)
		if err != nil {
			return err
		}
		if channel != nil {
			if err := c.UpdateNotificationChannel(*channel); err != nil {
				return err
			}
		}

		if err := c.Debit(amount, p.Name()); err != nil {
			return err
		}
		if err := repos.Clients.Update(ctx, c); err != nil {
			return fmt.Errorf("failed to update client balance: %w", err)
		}

		now := s.clock.NowUTC()
		sub, err := subscription.NewSubscription(c.ID(), p.ID(), amount, now)
		if err != nil {
			return err
		}
		if err := repos.Subscriptions.Save(ctx, sub); err != nil {
			return fmt.Errorf("failed to save subscription: %w", err)
		}

		tx := transaction.NewTransaction(sub.ID(), p.ID(), amount, transaction.TypeSubscription, now)
		if err := repos.Transactions.Append(ctx, tx); err != nil {
			return fmt.Errorf("failed to append transaction: %w", err)
		}

		out = lifecycleOutcome{client: c, product: p, sub: sub, at: now}
		return nil
	})
	s.metrics.ObserveSubscription(resultLabel(err))
	if err != nil {
		return nil, operationError("subscribe", err)
	}

	s.logger.Info("subscription created",
		zap.String("subscription_id", out.sub.ID().String()),
		zap.String("client_id", out.client.ID().String()),
		zap.Int("product_id", out.product.ID()),
		zap.String("amount", out.sub.Amount().String()),
	)

	s.notify(ctx, eventSubscribed, out.sub.ID(), func(ctx context.Context) error {
		return s.notifier.Notify(ctx, out.client, out.product, out.client.NotificationChannel(), out.sub.ID(), out.sub.Amount(), out.at)
	})

	return toSubscriptionDTO(out.sub), nil
}

// Cancel closes an active subscription and refunds its original amount.
func (s *SubscriptionService) Cancel(ctx context.Context, subscriptionID uuid.UUID) (*SubscriptionDTO, error) {
	if err := ctx.Err(); err != nil {
		s.metrics.ObserveCancellation(resultLabel(err))
		return nil, fmt.Errorf("cancel subscription: %w", err)
	}

	var out lifecycleOutcome
	err := s.uow.Atomic(ctx, func(ctx context.Context, repos Repositories) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		sub, err := repos.Subscriptions.FindByID(ctx, subscriptionID)
		if err != nil {
			return err
		}
		if !sub.IsActive() {
			return domain.NewError(domain.ErrAlreadyCancelled, "subscription %s was already cancelled", sub.ID())
		}

		p, err := repos.Products.FindByID(ctx, sub.ProductID())
		if err != nil {
			return err
		}
		c, err := repos.Clients.FindByID(ctx, sub.ClientID())
		if err != nil {
			return err
		}

		now := s.clock.NowUTC()
		if err := sub.Cancel(now); err != nil {
			return err
		}
		if err := repos.Subscriptions.Update(ctx, sub); err != nil {
			return fmt.Errorf("failed to update subscription: %w", err)
		}

		if err := c.Credit(sub.Amount()); err != nil {
			return err
		}
		if err := repos.Clients.Update(ctx, c); err != nil {
			return fmt.Errorf("failed to update client balance: %w", err)
		}

		tx := transaction.NewTransaction(sub.ID(), p.ID(), sub.Amount(), transaction.TypeCancellation, now)
		if err := repos.Transactions.Append(ctx, tx); err != nil {
			return fmt.Errorf("failed to append transaction: %w", err)
		}

		out = lifecycleOutcome{client: c, product: p, sub: sub, at: now}
		return nil
	})
	s.metrics.ObserveCancellation(resultLabel(err))
	if err != nil {
		return nil, operationError("cancel subscription", err)
	}

	s.logger.Info("subscription cancelled",
		zap.String("subscription_id", out.sub.ID().String()),
		zap.String("client_id", out.client.ID().String()),
		zap.String("refund", out.sub.Amount().String()),
	)

	s.notify(ctx, eventCancelled, out.sub.ID(), func(ctx context.Context) error {
		return s.notifier.NotifyCancellation(ctx, out.client, out.product, out.client.NotificationChannel(), out.sub.ID(), out.sub.Amount(), out.at)
	})

	return toSubscriptionDTO(out.sub), nil
}

// GetSubscription returns a single subscription.
func (s *SubscriptionService) GetSubscription(ctx context.Context, id uuid.UUID) (*SubscriptionDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	sub, err := s.repos.Subscriptions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSubscriptionDTO(sub), nil
}

// ListSubscriptions returns every subscription, or only the client's when clientID is set.
func (s *SubscriptionService) ListSubscriptions(ctx context.Context, clientID *uuid.UUID) ([]*SubscriptionDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}

	var (
		subs []*subscription.Subscription
		err  error
	)
	if clientID != nil {
		if _, err := s.repos.Clients.FindByID(ctx, *clientID); err != nil {
			return nil, err
		}
		subs, err = s.repos.Subscriptions.FindByClientID(ctx, *clientID)
	} else {
		subs, err = s.repos.Subscriptions.FindAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	result := make([]*SubscriptionDTO, 0, len(subs))
	for _, sub := range subs {
		result = append(result, toSubscriptionDTO(sub))
	}
	return result, nil
}

// ListTransactions returns the client's transaction log, newest first.
func (s *SubscriptionService) ListTransactions(ctx context.Context, clientID uuid.UUID) ([]*TransactionDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	if _, err := s.repos.Clients.FindByID(ctx, clientID); err != nil {
		return nil, err
	}

	txs, err := s.repos.Transactions.ListByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	result := make([]*TransactionDTO, 0, len(txs))
	for _, tx := range txs {
		result = append(result, toTransactionDTO(tx))
	}
	return result, nil
}

// notify invokes the gateway after the operation has committed. Failures and
// panics are logged and counted, never returned.
func (s *SubscriptionService) notify(ctx context.Context, event string, subscriptionID uuid.UUID, send func(context.Context) error) {
	defer func() {
		if r := recover(); r != nil {
			s.metrics.ObserveNotificationFailure(event)
			s.logger.Error("notification gateway panicked",
				zap.String("event", event),
				zap.String("subscription_id", subscriptionID.String()),
				zap.Any("panic", r),
			)
		}
	}()

	if err := send(context.WithoutCancel(ctx)); err != nil {
		s.metrics.ObserveNotificationFailure(event)
		s.logger.Error("notification failed",
			zap.String("event", event),
			zap.String("subscription_id", subscriptionID.String()),
			zap.Error(err),
		)
	}
}

// operationError prefixes cancellation errors with the operation name and
// passes everything else through.
func operationError(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return err
}

// resultLabel classifies an operation outcome for metrics.
func resultLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrBelowMinimumAmount):
		return "below_minimum"
	case errors.Is(err, domain.ErrAlreadyCancelled):
		return "already_cancelled"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case domain.IsBusinessError(err):
		return "rejected"
	default:
		return "error"
	}
}
