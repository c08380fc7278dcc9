package application

import (
	"context"
	"fmt"
	"time"

	"github.com/fondos-platform/service-subscription/internal/domain/schedule"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AppointmentRequest books a client at a branch.
type AppointmentRequest struct {
	BranchID    uuid.UUID `json:"branch_id" binding:"required"`
	ClientID    uuid.UUID `json:"client_id" binding:"required"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
}

// ScheduleService handles client appointments at branches.
type ScheduleService struct {
	uow    UnitOfWork
	repo   schedule.AppointmentRepository
	logger *zap.Logger
}

// NewScheduleService creates a new ScheduleService.
func NewScheduleService(uow UnitOfWork, repo schedule.AppointmentRepository, logger *zap.Logger) *ScheduleService {
	return &ScheduleService{uow: uow, repo: repo, logger: logger}
}

// ListAppointments returns appointments in time order, optionally for one client.
func (s *ScheduleService) ListAppointments(ctx context.Context, clientID *uuid.UUID) ([]*AppointmentDTO, error) {
	appointments, err := s.repo.FindAll(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	result := make([]*AppointmentDTO, 0, len(appointments))
	for _, a := range appointments {
		result = append(result, toAppointmentDTO(a))
	}
	return result, nil
}

// GetAppointment returns a single appointment.
func (s *ScheduleService) GetAppointment(ctx context.Context, id uuid.UUID) (*AppointmentDTO, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toAppointmentDTO(a), nil
}

// BookAppointment schedules a client's visit. The branch and client must
// exist and the client may not already hold that branch and time.
func (s *ScheduleService) BookAppointment(ctx context.Context, req AppointmentRequest) (*AppointmentDTO, error) {
	a, err := schedule.NewAppointment(uuid.New(), req.BranchID, req.ClientID, req.ScheduledAt)
	if err != nil {
		return nil, err
	}

	err = s.uow.Atomic(ctx, func(ctx context.Context, repos Repositories) error {
		if err := checkParties(ctx, repos, a); err != nil {
			return err
		}
		return repos.Appointments.Save(ctx, a)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("appointment booked",
		zap.String("appointment_id", a.ID().String()),
		zap.String("branch_id", a.BranchID().String()),
		zap.String("client_id", a.ClientID().String()),
		zap.Time("scheduled_at", a.ScheduledAt()),
	)
	return toAppointmentDTO(a), nil
}

// RescheduleAppointment moves an appointment to another branch, client or time.
func (s *ScheduleService) RescheduleAppointment(ctx context.Context, id uuid.UUID, req AppointmentRequest) (*AppointmentDTO, error) {
	var updated *schedule.Appointment
	err := s.uow.Atomic(ctx, func(ctx context.Context, repos Repositories) error {
		a, err := repos.Appointments.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := a.Reschedule(req.BranchID, req.ClientID, req.ScheduledAt); err != nil {
			return err
		}
		if err := checkParties(ctx, repos, a); err != nil {
			return err
		}
		if err := repos.Appointments.Update(ctx, a); err != nil {
			return err
		}
		updated = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("appointment rescheduled", zap.String("appointment_id", id.String()))
	return toAppointmentDTO(updated), nil
}

// CancelAppointment removes an appointment.
func (s *ScheduleService) CancelAppointment(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("appointment cancelled", zap.String("appointment_id", id.String()))
	return nil
}

func checkParties(ctx context.Context, repos Repositories, a *schedule.Appointment) error {
	if _, err := repos.Branches.FindByID(ctx, a.BranchID()); err != nil {
		return requireReference(err)
	}
	if _, err := repos.Clients.FindByID(ctx, a.ClientID()); err != nil {
		return requireReference(err)
	}
	return nil
}
