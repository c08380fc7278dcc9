package schedule

import (
	"context"

	"github.com/google/uuid"
)

// AppointmentRepository defines persistence operations for appointments.
type AppointmentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	// FindAll returns appointments ordered by time, optionally for one client.
	FindAll(ctx context.Context, clientID *uuid.UUID) ([]*Appointment, error)
	Save(ctx context.Context, a *Appointment) error
	Update(ctx context.Context, a *Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
}
