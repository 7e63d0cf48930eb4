package release_slot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TherapyBookingService/internal/domain"
	"github.com/m04kA/SMC-TherapyBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-TherapyBookingService/pkg/logger"
	"github.com/m04kA/SMC-TherapyBookingService/pkg/ptr"
)

var start = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func bookedSlot(t *testing.T, store *memory.Store, id string, from time.Time) {
	t.Helper()
	ctx := context.Background()
	_, err := store.Slots().Add(ctx, domain.Slot{ID: id, TherapistID: "t1", StartTs: from, EndTs: from.Add(time.Hour)})
	require.NoError(t, err)
	_, err = store.Slots().SetBooked(ctx, id, true)
	require.NoError(t, err)
}

func booking(availabilityID *string, from time.Time) *domain.Booking {
	return &domain.Booking{
		ID:             "b1",
		ClientID:       "c1",
		TherapistID:    "t1",
		StartTs:        from,
		EndTs:          from.Add(time.Hour),
		Status:         domain.StatusConfirmed,
		AvailabilityID: availabilityID,
	}
}

func TestRelease_ByDirectReference(t *testing.T) {
	store := memory.NewStore()
	bookedSlot(t, store, "s1", start)
	r := NewReleaser(store.Slots(), logger.NewNop())

	released, err := r.Release(context.Background(), booking(ptr.Ptr("s1"), start))
	require.NoError(t, err)
	require.NotNil(t, released)
	assert.Equal(t, "s1", released.ID)
	assert.False(t, released.IsBooked)
}

func TestRelease_FallsBackToWindowMatch(t *testing.T) {
	tests := []struct {
		name           string
		availabilityID *string
	}{
		{name: "no reference", availabilityID: nil},
		{name: "dangling reference", availabilityID: ptr.Ptr("deleted")},
		{name: "reference to another window", availabilityID: ptr.Ptr("other")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewStore()
			bookedSlot(t, store, "s1", start)
			bookedSlot(t, store, "other", start.Add(3*time.Hour))
			r := NewReleaser(store.Slots(), logger.NewNop())

			released, err := r.Release(context.Background(), booking(tt.availabilityID, start))
			require.NoError(t, err)
			require.NotNil(t, released)
			assert.Equal(t, "s1", released.ID)

			other, err := store.Slots().GetByID(context.Background(), "other")
			require.NoError(t, err)
			assert.True(t, other.IsBooked)
		})
	}
}

func TestRelease_MissingSlotIsSkipped(t *testing.T) {
	store := memory.NewStore()
	r := NewReleaser(store.Slots(), logger.NewNop())

	released, err := r.Release(context.Background(), booking(nil, start))
	require.NoError(t, err)
	assert.Nil(t, released)
}

func TestRelease_FreeSlotIsLeftAlone(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	_, err := store.Slots().Add(ctx, domain.Slot{ID: "s1", TherapistID: "t1", StartTs: start, EndTs: start.Add(time.Hour)})
	require.NoError(t, err)
	r := NewReleaser(store.Slots(), logger.NewNop())

	released, err := r.Release(ctx, booking(ptr.Ptr("s1"), start))
	require.NoError(t, err)
	assert.Nil(t, released)

	slot, err := store.Slots().GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, slot.IsBooked)
}

func TestRelease_WindowMatchPrefersBookedTwin(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	_, err := store.Slots().Add(ctx, domain.Slot{ID: "a-twin", TherapistID: "t1", StartTs: start, EndTs: start.Add(time.Hour)})
	require.NoError(t, err)
	bookedSlot(t, store, "s1", start)
	r := NewReleaser(store.Slots(), logger.NewNop())

	released, err := r.Release(ctx, booking(nil, start))
	require.NoError(t, err)
	require.NotNil(t, released)
	assert.Equal(t, "s1", released.ID)

	s1, err := store.Slots().GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, s1.IsBooked)

	twin, err := store.Slots().GetByID(ctx, "a-twin")
	require.NoError(t, err)
	assert.False(t, twin.IsBooked)
}
