package repository

import (
	"context"

	"github.com/fondos-platform/service-subscription/internal/domain"
	"github.com/fondos-platform/service-subscription/internal/domain/schedule"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAppointmentRepository implements schedule.AppointmentRepository using GORM.
type GormAppointmentRepository struct {
	db *gorm.DB
}

// NewGormAppointmentRepository creates a new GormAppointmentRepository.
func NewGormAppointmentRepository(db *gorm.DB) *GormAppointmentRepository {
	return &GormAppointmentRepository{db: db}
}

// FindByID returns an appointment by ID.
func (r *GormAppointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*schedule.Appointment, error) {
	var model AppointmentModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translate(err, domain.ErrAppointmentNotFound, id)
	}
	return toAppointmentDomain(&model), nil
}

// FindAll returns appointments in time order, optionally for one client.
func (r *GormAppointmentRepository) FindAll(ctx context.Context, clientID *uuid.UUID) ([]*schedule.Appointment, error) {
	q := r.db.WithContext(ctx).Order("scheduled_at, id")
	if clientID != nil {
		q = q.Where("client_id = ?", *clientID)
	}
	var models []AppointmentModel
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}
	result := make([]*schedule.Appointment, 0, len(models))
	for i := range models {
		result = append(result, toAppointmentDomain(&models[i]))
	}
	return result, nil
}

// Save persists a new appointment. A taken slot is a conflict.
func (r *GormAppointmentRepository) Save(ctx context.Context, a *schedule.Appointment) error {
	model := toAppointmentModel(a)
	err := r.db.WithContext(ctx).Omit("Branch", "Client").Create(&model).Error
	return translate(err, domain.ErrAppointmentNotFound, a.ID())
}

// Update reschedules an appointment.
func (r *GormAppointmentRepository) Update(ctx context.Context, a *schedule.Appointment) error {
	result := r.db.WithContext(ctx).Model(&AppointmentModel{}).Where("id = ?", a.ID()).Updates(map[string]any{
		"branch_id":    a.BranchID(),
		"client_id":    a.ClientID(),
		"scheduled_at": a.ScheduledAt(),
	})
	if result.Error != nil {
		return translate(result.Error, domain.ErrAppointmentNotFound, a.ID())
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError(domain.ErrAppointmentNotFound, a.ID())
	}
	return nil
}

// Delete removes an appointment.
func (r *GormAppointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&AppointmentModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError(domain.ErrAppointmentNotFound, id)
	}
	return nil
}

func toAppointmentModel(a *schedule.Appointment) AppointmentModel {
	return AppointmentModel{ID: a.ID(), BranchID: a.BranchID(), ClientID: a.ClientID(), ScheduledAt: a.ScheduledAt()}
}

func toAppointmentDomain(m *AppointmentModel) *schedule.Appointment {
	return schedule.Reconstruct(m.ID, m.BranchID, m.ClientID, m.ScheduledAt)
}
