package repository

import (
	"context"

	"github.com/fondos-platform/service-subscription/internal/domain"
	subDomain "github.com/fondos-platform/service-subscription/internal/domain/subscription"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSubscriptionRepository implements SubscriptionRepository using GORM.
type GormSubscriptionRepository struct {
	db        *gorm.DB
	forUpdate bool
}

// NewGormSubscriptionRepository creates a new GormSubscriptionRepository.
func NewGormSubscriptionRepository(db *gorm.DB) *GormSubscriptionRepository {
	return &GormSubscriptionRepository{db: db}
}

// Save persists a new subscription.
func (r *GormSubscriptionRepository) Save(ctx context.Context, s *subDomain.Subscription) error {
	model := toSubModel(s)
	err := r.db.WithContext(ctx).Omit("Client").Create(&model).Error
	if err != nil {
		return translate(err, domain.ErrSubscriptionNotFound, s.ID())
	}
	return nil
}

// Update writes the cancellation state. Everything else is immutable.
func (r *GormSubscriptionRepository) Update(ctx context.Context, s *subDomain.Subscription) error {
	result := r.db.WithContext(ctx).Model(&SubscriptionModel{}).Where("id = ?", s.ID()).
		Update("cancelled_at", s.CancelledAt())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError(domain.ErrSubscriptionNotFound, s.ID())
	}
	return nil
}

// FindByID returns a subscription by ID.
func (r *GormSubscriptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*subDomain.Subscription, error) {
	var model SubscriptionModel
	q := r.db.WithContext(ctx)
	if r.forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := q.Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translate(err, domain.ErrSubscriptionNotFound, id)
	}
	return toSubDomain(&model), nil
}

// FindAll returns every subscription, oldest first.
func (r *GormSubscriptionRepository) FindAll(ctx context.Context) ([]*subDomain.Subscription, error) {
	return r.find(r.db.WithContext(ctx))
}

// FindByClientID returns the client's subscriptions, oldest first.
func (r *GormSubscriptionRepository) FindByClientID(ctx context.Context, clientID uuid.UUID) ([]*subDomain.Subscription, error) {
	return r.find(r.db.WithContext(ctx).Where("client_id = ?", clientID))
}

// ExistsForClient reports whether any subscription references the client.
func (r *GormSubscriptionRepository) ExistsForClient(ctx context.Context, clientID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&SubscriptionModel{}).Where("client_id = ?", clientID).
		Limit(1).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormSubscriptionRepository) find(q *gorm.DB) ([]*subDomain.Subscription, error) {
	var models []SubscriptionModel
	if err := q.Order("subscribed_at ASC, id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	result := make([]*subDomain.Subscription, 0, len(models))
	for i := range models {
		result = append(result, toSubDomain(&models[i]))
	}
	return result, nil
}

func toSubModel(s *subDomain.Subscription) SubscriptionModel {
	return SubscriptionModel{
		ID: s.ID(), ClientID: s.ClientID(), ProductID: s.ProductID(),
		Amount: s.Amount(), SubscribedAt: s.SubscribedAt(), CancelledAt: s.CancelledAt(),
	}
}

func toSubDomain(m *SubscriptionModel) *subDomain.Subscription {
	return subDomain.Reconstruct(m.ID, m.ClientID, m.ProductID, m.Amount, m.SubscribedAt, m.CancelledAt)
}
