package cancel_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TherapyBookingService/internal/domain"
	"github.com/m04kA/SMC-TherapyBookingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-TherapyBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-TherapyBookingService/internal/usecase/release_slot"
	"github.com/m04kA/SMC-TherapyBookingService/pkg/logger"
)

var slotStart = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

type fixture struct {
	store     *memory.Store
	uc        *UseCase
	bookingID string
}

func setup(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	log := logger.NewNop()

	_, err := store.Slots().Add(ctx, domain.Slot{
		ID: "s1", TherapistID: "t1", StartTs: slotStart, EndTs: slotStart.Add(time.Hour),
	})
	require.NoError(t, err)

	create := create_booking.NewUseCase(store.Slots(), store.Bookings(), nil, store, nil, log)
	created, err := create.Execute(ctx, &create_booking.Request{
		ClientID: "c1", TherapistID: "t1", AvailabilityID: "s1", Amount: 50, Currency: "USD",
	})
	require.NoError(t, err)

	releaser := release_slot.NewReleaser(store.Slots(), log)
	return &fixture{
		store:     store,
		uc:        NewUseCase(store.Bookings(), releaser, store, nil, log),
		bookingID: created.ID,
	}
}

func (f *fixture) slotBooked(t *testing.T) bool {
	t.Helper()
	slot, err := f.store.Slots().GetByID(context.Background(), "s1")
	require.NoError(t, err)
	return slot.IsBooked
}

func (f *fixture) status(t *testing.T) domain.BookingStatus {
	t.Helper()
	b, err := f.store.Bookings().GetByID(context.Background(), f.bookingID)
	require.NoError(t, err)
	return b.Status
}

func TestExecute_ParticipantsAndAdminCanCancel(t *testing.T) {
	actors := []domain.Actor{
		{ID: "c1", Role: domain.RoleClient},
		{ID: "t1", Role: domain.RoleTherapist},
		{ID: "ops", Role: domain.RoleAdmin},
	}

	for _, actor := range actors {
		t.Run(string(actor.Role), func(t *testing.T) {
			f := setup(t)

			resp, err := f.uc.Execute(context.Background(), &Request{BookingID: f.bookingID, Actor: actor})
			require.NoError(t, err)
			assert.Equal(t, string(domain.StatusCancelled), resp.Status)
			assert.True(t, resp.SlotReleased)
			assert.False(t, f.slotBooked(t))
		})
	}
}

func TestExecute_ThirdPartyNotAuthorized(t *testing.T) {
	f := setup(t)

	_, err := f.uc.Execute(context.Background(), &Request{
		BookingID: f.bookingID,
		Actor:     domain.Actor{ID: "c2", Role: domain.RoleClient},
	})
	assert.ErrorIs(t, err, ErrNotAuthorized)
	assert.Equal(t, domain.StatusConfirmed, f.status(t))
	assert.True(t, f.slotBooked(t))
}

func TestExecute_BookingNotFound(t *testing.T) {
	f := setup(t)

	_, err := f.uc.Execute(context.Background(), &Request{
		BookingID: "missing",
		Actor:     domain.Actor{ID: "ops", Role: domain.RoleAdmin},
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.Equal(t, "BOOKING_NOT_FOUND", domain.ReasonOf(err))
}

func TestExecute_SecondCancelDoesNotTouchSlot(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	client := domain.Actor{ID: "c1", Role: domain.RoleClient}

	_, err := f.uc.Execute(ctx, &Request{BookingID: f.bookingID, Actor: client})
	require.NoError(t, err)

	// Слот заново занят другим бронированием
	_, err = f.store.Slots().SetBooked(ctx, "s1", true)
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, &Request{BookingID: f.bookingID, Actor: client})
	assert.ErrorIs(t, err, ErrBookingNotMutable)
	assert.True(t, f.slotBooked(t))
	assert.Equal(t, domain.StatusCancelled, f.status(t))
}

func TestExecute_MissingSlotIsSkipped(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	log := logger.NewNop()

	created, err := store.Bookings().Create(ctx, &domain.Booking{
		ClientID: "c1", TherapistID: "t1", StartTs: slotStart, EndTs: slotStart.Add(time.Hour), Status: domain.StatusPending,
	})
	require.NoError(t, err)

	uc := NewUseCase(store.Bookings(), release_slot.NewReleaser(store.Slots(), log), store, nil, log)
	resp, err := uc.Execute(ctx, &Request{BookingID: created.ID, Actor: domain.Actor{ID: "c1", Role: domain.RoleClient}})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.False(t, resp.SlotReleased)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := setup(t)

	_, err := f.uc.Execute(context.Background(), &Request{BookingID: "", Actor: domain.Actor{ID: "c1", Role: domain.RoleClient}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), &Request{BookingID: f.bookingID, Actor: domain.Actor{ID: "c1", Role: "ROOT"}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Equal(t, domain.StatusConfirmed, f.status(t))
}
