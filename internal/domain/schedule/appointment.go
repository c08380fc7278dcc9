package schedule

import (
	"time"

	"github.com/fondos-platform/service-subscription/internal/domain"
	"github.com/google/uuid"
)

// Appointment is a client's visit booked at a branch. A client holds at most
// one appointment per branch at a given instant.
type Appointment struct {
	id          uuid.UUID
	branchID    uuid.UUID
	clientID    uuid.UUID
	scheduledAt time.Time
}

// NewAppointment validates and builds an Appointment. A nil id gets a fresh one.
func NewAppointment(id, branchID, clientID uuid.UUID, scheduledAt time.Time) (*Appointment, error) {
	if id == uuid.Nil {
		id = uuid.New()
	}
	a := &Appointment{id: id}
	if err := a.Reschedule(branchID, clientID, scheduledAt); err != nil {
		return nil, err
	}
	return a, nil
}

// Reconstruct rebuilds an Appointment from persistence.
func Reconstruct(id, branchID, clientID uuid.UUID, scheduledAt time.Time) *Appointment {
	return &Appointment{id: id, branchID: branchID, clientID: clientID, scheduledAt: scheduledAt.UTC()}
}

// Reschedule moves the appointment. The time is stored in UTC.
func (a *Appointment) Reschedule(branchID, clientID uuid.UUID, scheduledAt time.Time) error {
	if branchID == uuid.Nil {
		return domain.NewValidationError("branch id is required")
	}
	if clientID == uuid.Nil {
		return domain.NewValidationError("client id is required")
	}
	if scheduledAt.IsZero() {
		return domain.NewValidationError("appointment date is required")
	}
	a.branchID, a.clientID, a.scheduledAt = branchID, clientID, scheduledAt.UTC()
	return nil
}

// SameSlot reports whether b books the same client at the same branch and instant.
func (a *Appointment) SameSlot(b *Appointment) bool {
	return a.branchID == b.branchID && a.clientID == b.clientID && a.scheduledAt.Equal(b.scheduledAt)
}

// Getters.
func (a *Appointment) ID() uuid.UUID          { return a.id }
func (a *Appointment) BranchID() uuid.UUID    { return a.branchID }
func (a *Appointment) ClientID() uuid.UUID    { return a.clientID }
func (a *Appointment) ScheduledAt() time.Time { return a.scheduledAt }
