package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fondos-platform/service-subscription/internal/application"
	"github.com/fondos-platform/service-subscription/internal/domain"
	"github.com/fondos-platform/service-subscription/internal/domain/availability"
	"github.com/fondos-platform/service-subscription/internal/domain/branch"
	"github.com/fondos-platform/service-subscription/internal/domain/client"
	"github.com/fondos-platform/service-subscription/internal/domain/schedule"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedBranch(t *testing.T, s *Store, name string) *branch.Branch {
	t.Helper()
	b, err := branch.NewBranch(uuid.Nil, name, "Bogota")
	require.NoError(t, err)
	require.NoError(t, s.Branches().Save(context.Background(), b))
	return b
}

func TestAvailability_RejectsDuplicatePair(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()
	b := seedBranch(t, s, "Centro")

	first, err := availability.NewAvailability(uuid.Nil, b.ID(), 1)
	require.NoError(t, err)
	require.NoError(t, s.Availability().Save(ctx, first))

	dup, err := availability.NewAvailability(uuid.Nil, b.ID(), 1)
	require.NoError(t, err)
	assert.ErrorIs(t, s.Availability().Save(ctx, dup), domain.ErrConflict)

	other, err := availability.NewAvailability(uuid.Nil, b.ID(), 2)
	require.NoError(t, err)
	require.NoError(t, s.Availability().Save(ctx, other))
	require.NoError(t, other.Reassign(b.ID(), 1))
	assert.ErrorIs(t, s.Availability().Update(ctx, other), domain.ErrConflict)

	found, err := s.Availability().FindByBranchAndProduct(ctx, b.ID(), 1)
	require.NoError(t, err)
	assert.Equal(t, first.ID(), found.ID())

	_, err = s.Availability().FindByBranchAndProduct(ctx, b.ID(), 5)
	assert.ErrorIs(t, err, domain.ErrAvailabilityNotFound)
}

func TestAppointments_RejectDuplicateSlot(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()
	b := seedBranch(t, s, "Norte")

	a, err := schedule.NewAppointment(uuid.Nil, b.ID(), client.DefaultClientID, t0)
	require.NoError(t, err)
	require.NoError(t, s.Appointments().Save(ctx, a))

	same, err := schedule.NewAppointment(uuid.Nil, b.ID(), client.DefaultClientID, t0)
	require.NoError(t, err)
	assert.ErrorIs(t, s.Appointments().Save(ctx, same), domain.ErrConflict)

	// Rescheduling onto its own slot is not a conflict.
	require.NoError(t, s.Appointments().Update(ctx, a))
}

func TestBranchDelete_CascadesAndRollsBack(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()
	b := seedBranch(t, s, "Sur")
	keep := seedBranch(t, s, "Occidente")

	for _, branchID := range []uuid.UUID{b.ID(), keep.ID()} {
		av, err := availability.NewAvailability(uuid.Nil, branchID, 3)
		require.NoError(t, err)
		require.NoError(t, s.Availability().Save(ctx, av))
		ap, err := schedule.NewAppointment(uuid.Nil, branchID, client.DefaultClientID, t0)
		require.NoError(t, err)
		require.NoError(t, s.Appointments().Save(ctx, ap))
	}

	boom := errors.New("boom")
	err := s.Atomic(ctx, func(ctx context.Context, repos application.Repositories) error {
		require.NoError(t, repos.Branches.Delete(ctx, b.ID()))
		return boom
	})
	require.ErrorIs(t, err, boom)

	all, err := s.Availability().FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2, "rollback restores cascaded availability")
	appts, err := s.Appointments().FindAll(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, appts, 2, "rollback restores cascaded appointments")

	require.NoError(t, s.Branches().Delete(ctx, b.ID()))

	all, err = s.Availability().FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, keep.ID(), all[0].BranchID())
	appts, err = s.Appointments().FindAll(ctx, nil)
	require.NoError(t, err)
	require.Len(t, appts, 1)
	assert.Equal(t, keep.ID(), appts[0].BranchID())
}

func TestProductAndClientDelete_Cascade(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()
	b := seedBranch(t, s, "Chapinero")

	av, err := availability.NewAvailability(uuid.Nil, b.ID(), 4)
	require.NoError(t, err)
	require.NoError(t, s.Availability().Save(ctx, av))
	require.NoError(t, s.Products().Delete(ctx, 4))
	_, err = s.Availability().FindByID(ctx, av.ID())
	assert.ErrorIs(t, err, domain.ErrAvailabilityNotFound)

	ap, err := schedule.NewAppointment(uuid.Nil, b.ID(), client.DefaultClientID, t0)
	require.NoError(t, err)
	require.NoError(t, s.Appointments().Save(ctx, ap))
	require.NoError(t, s.Clients().Delete(ctx, client.DefaultClientID))
	_, err = s.Appointments().FindByID(ctx, ap.ID())
	assert.ErrorIs(t, err, domain.ErrAppointmentNotFound)
}

func TestAppointments_FilterByClientInTimeOrder(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()
	b := seedBranch(t, s, "Usaquen")
	other := uuid.New()

	late, err := schedule.NewAppointment(uuid.Nil, b.ID(), client.DefaultClientID, t0.Add(2*time.Hour))
	require.NoError(t, err)
	early, err := schedule.NewAppointment(uuid.Nil, b.ID(), client.DefaultClientID, t0)
	require.NoError(t, err)
	foreign, err := schedule.NewAppointment(uuid.Nil, b.ID(), other, t0)
	require.NoError(t, err)
	for _, a := range []*schedule.Appointment{late, early, foreign} {
		require.NoError(t, s.Appointments().Save(ctx, a))
	}

	id := client.DefaultClientID
	got, err := s.Appointments().FindAll(ctx, &id)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, early.ID(), got[0].ID())
	assert.Equal(t, late.ID(), got[1].ID())
}
