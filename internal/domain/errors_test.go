package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindAndReason(t *testing.T) {
	wrapped := fmt.Errorf("create_booking: %w", ErrSlotAlreadyBooked)

	assert.True(t, errors.Is(wrapped, ErrSlotAlreadyBooked))
	assert.False(t, errors.Is(wrapped, ErrNewSlotAlreadyBooked))
	assert.Equal(t, KindConflict, KindOf(wrapped))
	assert.Equal(t, "SLOT_ALREADY_BOOKED", ReasonOf(wrapped))
}

func TestKindOf_UnknownError(t *testing.T) {
	err := errors.New("connection reset by peer")

	assert.Equal(t, KindTransient, KindOf(err))
	assert.Equal(t, "INTERNAL", ReasonOf(err))
}

func TestReasons_AreDistinct(t *testing.T) {
	all := []*Error{
		ErrSlotNotFound, ErrNewSlotNotFound, ErrBookingNotFound,
		ErrSlotAlreadyBooked, ErrNewSlotAlreadyBooked, ErrBookingNotMutable,
		ErrSlotOwnershipMismatch, ErrSlotTherapistMismatch,
		ErrNotAuthorized, ErrInvalidInput, ErrInternal,
	}

	seen := make(map[string]bool)
	for _, e := range all {
		assert.False(t, seen[e.Reason], "duplicate reason %s", e.Reason)
		seen[e.Reason] = true
	}
}
