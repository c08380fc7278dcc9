package application_test

import (
	"context"
	"testing"
	"time"

	"github.com/fondos-platform/service-subscription/internal/application"
	"github.com/fondos-platform/service-subscription/internal/domain"
	"github.com/fondos-platform/service-subscription/internal/domain/client"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) branch(t *testing.T, name string) *application.BranchDTO {
	t.Helper()
	b, err := f.branches.CreateBranch(context.Background(), application.BranchRequest{Name: name, City: "Bogota"})
	require.NoError(t, err)
	return b
}

func TestBranchService_CRUD(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.branches.CreateBranch(ctx, application.BranchRequest{Name: " Centro ", City: "Cali"})
	require.NoError(t, err)
	assert.Equal(t, "Centro", created.Name)

	_, err = f.branches.CreateBranch(ctx, application.BranchRequest{Name: "Norte", City: "  "})
	assert.ErrorIs(t, err, domain.ErrValidation)

	updated, err := f.branches.UpdateBranch(ctx, created.ID, application.BranchRequest{Name: "Centro Historico", City: "Cali"})
	require.NoError(t, err)
	assert.Equal(t, "Centro Historico", updated.Name)

	got, err := f.branches.GetBranch(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Centro Historico", got.Name)

	_, err = f.branches.UpdateBranch(ctx, uuid.New(), application.BranchRequest{Name: "X", City: "Y"})
	assert.ErrorIs(t, err, domain.ErrBranchNotFound)

	require.NoError(t, f.branches.DeleteBranch(ctx, created.ID))
	_, err = f.branches.GetBranch(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrBranchNotFound)
}

func TestAvailabilityService_RequiresExistingBranchAndProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.branch(t, "Centro")

	_, err := f.avail.CreateAvailability(ctx, application.AvailabilityRequest{BranchID: uuid.New(), ProductID: 1})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorContains(t, err, "branch not found")

	_, err = f.avail.CreateAvailability(ctx, application.AvailabilityRequest{BranchID: b.ID, ProductID: 99})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorContains(t, err, "product not found")

	list, err := f.avail.ListAvailability(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAvailabilityService_RejectsDuplicatePair(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.branch(t, "Centro")

	first, err := f.avail.CreateAvailability(ctx, application.AvailabilityRequest{BranchID: b.ID, ProductID: 1})
	require.NoError(t, err)

	_, err = f.avail.CreateAvailability(ctx, application.AvailabilityRequest{BranchID: b.ID, ProductID: 1})
	assert.ErrorIs(t, err, domain.ErrConflict)

	second, err := f.avail.CreateAvailability(ctx, application.AvailabilityRequest{BranchID: b.ID, ProductID: 2})
	require.NoError(t, err)

	_, err = f.avail.UpdateAvailability(ctx, second.ID, application.AvailabilityRequest{BranchID: b.ID, ProductID: 1})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Re-saving an entry with its own pair is allowed.
	same, err := f.avail.UpdateAvailability(ctx, first.ID, application.AvailabilityRequest{BranchID: b.ID, ProductID: 1})
	require.NoError(t, err)
	assert.Equal(t, first.ID, same.ID)

	moved, err := f.avail.UpdateAvailability(ctx, second.ID, application.AvailabilityRequest{BranchID: b.ID, ProductID: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, moved.ProductID)

	require.NoError(t, f.avail.DeleteAvailability(ctx, first.ID))
	_, err = f.avail.GetAvailability(ctx, first.ID)
	assert.ErrorIs(t, err, domain.ErrAvailabilityNotFound)
}

func TestScheduleService_BookRescheduleCancel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.branch(t, "Centro")
	at := time.Date(2026, 11, 3, 9, 0, 0, 0, time.FixedZone("COT", -5*3600))

	booked, err := f.schedule.BookAppointment(ctx, application.AppointmentRequest{
		BranchID: b.ID, ClientID: client.DefaultClientID, ScheduledAt: at,
	})
	require.NoError(t, err)
	assert.Equal(t, time.UTC, booked.ScheduledAt.Location())
	assert.True(t, booked.ScheduledAt.Equal(at))

	_, err = f.schedule.BookAppointment(ctx, application.AppointmentRequest{
		BranchID: b.ID, ClientID: client.DefaultClientID, ScheduledAt: at.UTC(),
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	moved, err := f.schedule.RescheduleAppointment(ctx, booked.ID, application.AppointmentRequest{
		BranchID: b.ID, ClientID: client.DefaultClientID, ScheduledAt: at.Add(time.Hour),
	})
	require.NoError(t, err)
	assert.True(t, moved.ScheduledAt.Equal(at.Add(time.Hour)))

	id := client.DefaultClientID
	list, err := f.schedule.ListAppointments(ctx, &id)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, f.schedule.CancelAppointment(ctx, booked.ID))
	_, err = f.schedule.GetAppointment(ctx, booked.ID)
	assert.ErrorIs(t, err, domain.ErrAppointmentNotFound)
}

func TestScheduleService_RequiresExistingBranchAndClient(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.branch(t, "Centro")
	at := time.Date(2026, 11, 3, 9, 0, 0, 0, time.UTC)

	_, err := f.schedule.BookAppointment(ctx, application.AppointmentRequest{
		BranchID: uuid.New(), ClientID: client.DefaultClientID, ScheduledAt: at,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.schedule.BookAppointment(ctx, application.AppointmentRequest{
		BranchID: b.ID, ClientID: uuid.New(), ScheduledAt: at,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.schedule.RescheduleAppointment(ctx, uuid.New(), application.AppointmentRequest{
		BranchID: b.ID, ClientID: client.DefaultClientID, ScheduledAt: at,
	})
	assert.ErrorIs(t, err, domain.ErrAppointmentNotFound)
}
