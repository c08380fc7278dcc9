package repository

import (
	"context"
	"time"

	"github.com/fondos-platform/service-subscription/internal/domain"
	"github.com/fondos-platform/service-subscription/internal/domain/client"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormClientRepository implements client.ClientRepository using GORM.
type GormClientRepository struct {
	db *gorm.DB
	// forUpdate row-locks reads; set only inside a transaction.
	forUpdate bool
}

// NewGormClientRepository creates a new GormClientRepository.
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// FindByID returns a client by ID.
func (r *GormClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	var model ClientModel
	q := r.db.WithContext(ctx)
	if r.forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := q.Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translate(err, domain.ErrClientNotFound, id)
	}
	return toClientDomain(&model), nil
}

// FindAll returns every client ordered by name.
func (r *GormClientRepository) FindAll(ctx context.Context) ([]*client.Client, error) {
	var models []ClientModel
	if err := r.db.WithContext(ctx).Order("first_name, last_name, id").Find(&models).Error; err != nil {
		return nil, err
	}
	result := make([]*client.Client, 0, len(models))
	for i := range models {
		result = append(result, toClientDomain(&models[i]))
	}
	return result, nil
}

// Save persists a new client.
func (r *GormClientRepository) Save(ctx context.Context, c *client.Client) error {
	model := toClientModel(c)
	now := time.Now().UTC()
	model.CreatedAt, model.UpdatedAt = now, now
	return translate(r.db.WithContext(ctx).Create(&model).Error, domain.ErrClientNotFound, c.ID())
}

// Update writes the client's mutable state.
func (r *GormClientRepository) Update(ctx context.Context, c *client.Client) error {
	info := c.Info()
	result := r.db.WithContext(ctx).Model(&ClientModel{}).Where("id = ?", c.ID()).Updates(map[string]any{
		"first_name":           info.FirstName,
		"last_name":            info.LastName,
		"city":                 info.City,
		"email":                info.Email,
		"phone":                info.Phone,
		"balance":              c.Balance(),
		"notification_channel": string(c.NotificationChannel()),
		"updated_at":           time.Now().UTC(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError(domain.ErrClientNotFound, c.ID())
	}
	return nil
}

// Delete removes a client. Referenced clients are a conflict.
func (r *GormClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&ClientModel{})
	if result.Error != nil {
		return translate(result.Error, domain.ErrClientNotFound, id)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError(domain.ErrClientNotFound, id)
	}
	return nil
}

func toClientModel(c *client.Client) ClientModel {
	info := c.Info()
	return ClientModel{
		ID: c.ID(), UserID: c.UserID(),
		FirstName: info.FirstName, LastName: info.LastName, City: info.City,
		Email: info.Email, Phone: info.Phone,
		Balance: c.Balance(), NotificationChannel: string(c.NotificationChannel()),
	}
}

func toClientDomain(m *ClientModel) *client.Client {
	info := client.PersonalInfo{
		FirstName: m.FirstName, LastName: m.LastName, City: m.City, Email: m.Email, Phone: m.Phone,
	}
	return client.Reconstruct(m.ID, m.UserID, info, m.Balance, client.NotificationChannel(m.NotificationChannel))
}
