package schedule

import (
	"testing"
	"time"

	"github.com/fondos-platform/service-subscription/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppointment_StoresUTC(t *testing.T) {
	bogota := time.FixedZone("COT", -5*3600)
	at := time.Date(2026, 11, 3, 9, 30, 0, 0, bogota)

	a, err := NewAppointment(uuid.Nil, uuid.New(), uuid.New(), at)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, a.ID())
	assert.Equal(t, time.UTC, a.ScheduledAt().Location())
	assert.True(t, a.ScheduledAt().Equal(at))
}

func TestNewAppointment_Rejects(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name     string
		branchID uuid.UUID
		clientID uuid.UUID
		at       time.Time
	}{
		{"no branch", uuid.Nil, uuid.New(), now},
		{"no client", uuid.New(), uuid.Nil, now},
		{"no date", uuid.New(), uuid.New(), time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAppointment(uuid.Nil, tt.branchID, tt.clientID, tt.at)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestSameSlot(t *testing.T) {
	branchID, clientID := uuid.New(), uuid.New()
	at := time.Date(2026, 11, 3, 14, 0, 0, 0, time.UTC)

	a, err := NewAppointment(uuid.Nil, branchID, clientID, at)
	require.NoError(t, err)
	b, err := NewAppointment(uuid.Nil, branchID, clientID, at.In(time.FixedZone("X", 3600)))
	require.NoError(t, err)
	c, err := NewAppointment(uuid.Nil, branchID, clientID, at.Add(time.Hour))
	require.NoError(t, err)

	assert.True(t, a.SameSlot(b))
	assert.False(t, a.SameSlot(c))
}
