package memory

import (
	"context"
	"sort"
	"time"

	"github.com/fondos-platform/service-subscription/internal/domain"
	"github.com/fondos-platform/service-subscription/internal/domain/schedule"
	"github.com/google/uuid"
)

// AppointmentRepository implements schedule.AppointmentRepository on a Store.
type AppointmentRepository struct {
	store *Store
	tx    *journal
}

func (r *AppointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*schedule.Appointment, error) {
	defer r.store.readLock(r.tx)()
	a, ok := r.store.appointments[id]
	if !ok {
		return nil, domain.NewNotFoundError(domain.ErrAppointmentNotFound, id)
	}
	return &a, nil
}

func (r *AppointmentRepository) FindAll(ctx context.Context, clientID *uuid.UUID) ([]*schedule.Appointment, error) {
	defer r.store.readLock(r.tx)()
	result := make([]*schedule.Appointment, 0, len(r.store.appointments))
	for _, a := range r.store.appointments {
		if clientID != nil && a.ClientID() != *clientID {
			continue
		}
		result = append(result, &a)
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !a.ScheduledAt().Equal(b.ScheduledAt()) {
			return a.ScheduledAt().Before(b.ScheduledAt())
		}
		return a.ID().String() < b.ID().String()
	})
	return result, nil
}

func (r *AppointmentRepository) Save(ctx context.Context, a *schedule.Appointment) error {
	defer r.store.writeLock(r.tx)()
	if _, ok := r.store.appointments[a.ID()]; ok {
		return domain.NewConflictError("appointment %s already exists", a.ID())
	}
	if err := r.checkSlot(a); err != nil {
		return err
	}
	r.store.appointments[a.ID()] = *a
	r.tx.record(func() { delete(r.store.appointments, a.ID()) })
	return nil
}

func (r *AppointmentRepository) Update(ctx context.Context, a *schedule.Appointment) error {
	defer r.store.writeLock(r.tx)()
	prev, ok := r.store.appointments[a.ID()]
	if !ok {
		return domain.NewNotFoundError(domain.ErrAppointmentNotFound, a.ID())
	}
	if err := r.checkSlot(a); err != nil {
		return err
	}
	r.store.appointments[a.ID()] = *a
	r.tx.record(func() { r.store.appointments[prev.ID()] = prev })
	return nil
}

func (r *AppointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.store.writeLock(r.tx)()
	prev, ok := r.store.appointments[id]
	if !ok {
		return domain.NewNotFoundError(domain.ErrAppointmentNotFound, id)
	}
	r.store.dropAppointment(r.tx, id, prev)
	return nil
}

func (r *AppointmentRepository) checkSlot(a *schedule.Appointment) error {
	for id, other := range r.store.appointments {
		if id != a.ID() && other.SameSlot(a) {
			return domain.NewConflictError("client %s already has an appointment at branch %s at %s",
				a.ClientID(), a.BranchID(), a.ScheduledAt().Format(time.RFC3339))
		}
	}
	return nil
}

// dropAppointment deletes an appointment; the caller holds the write lock.
func (s *Store) dropAppointment(j *journal, id uuid.UUID, prev schedule.Appointment) {
	delete(s.appointments, id)
	j.record(func() { s.appointments[id] = prev })
}
