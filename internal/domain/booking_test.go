package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBooking_StateChecks(t *testing.T) {
	tests := []struct {
		status        BookingStatus
		cancellable   bool
		reschedulable bool
		terminal      bool
		active        bool
	}{
		{StatusPending, true, true, false, true},
		{StatusConfirmed, true, true, false, true},
		{StatusCancelled, false, false, true, false},
		{StatusRescheduled, false, false, true, true},
		{StatusCompleted, false, false, true, true},
		{StatusNoShow, false, false, true, true},
		{BookingStatus("ARCHIVED"), false, false, true, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			b := &Booking{Status: tt.status}
			assert.Equal(t, tt.cancellable, b.CanBeCancelled())
			assert.Equal(t, tt.reschedulable, b.CanBeRescheduled())
			assert.Equal(t, tt.terminal, b.IsTerminal())
			assert.Equal(t, tt.active, b.IsActive())
		})
	}
}

func TestBooking_MatchesSlot(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(50 * time.Minute)
	b := &Booking{TherapistID: "t1", StartTs: start, EndTs: end}

	assert.True(t, b.MatchesSlot(&Slot{TherapistID: "t1", StartTs: start.In(time.FixedZone("X", 3600)), EndTs: end}))
	assert.False(t, b.MatchesSlot(&Slot{TherapistID: "t2", StartTs: start, EndTs: end}))
	assert.False(t, b.MatchesSlot(&Slot{TherapistID: "t1", StartTs: start, EndTs: end.Add(time.Minute)}))
}

func TestBookingUpdate_Apply(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	b := &Booking{Status: StatusConfirmed, StartTs: start, EndTs: start.Add(time.Hour)}

	assert.True(t, BookingUpdate{}.IsEmpty())

	newStart := start.Add(24 * time.Hour)
	newEnd := newStart.Add(time.Hour)
	status := StatusRescheduled
	slotID := "slot-2"
	upd := BookingUpdate{Status: &status, StartTs: &newStart, EndTs: &newEnd, AvailabilityID: &slotID}
	assert.False(t, upd.IsEmpty())

	upd.Apply(b)
	assert.Equal(t, StatusRescheduled, b.Status)
	assert.Equal(t, newStart, b.StartTs)
	assert.Equal(t, newEnd, b.EndTs)
	if assert.NotNil(t, b.AvailabilityID) {
		assert.Equal(t, "slot-2", *b.AvailabilityID)
	}
}

func TestParseBookingStatus(t *testing.T) {
	s, ok := ParseBookingStatus("RESCHEDULED")
	assert.True(t, ok)
	assert.Equal(t, StatusRescheduled, s)

	_, ok = ParseBookingStatus("cancelled_by_user")
	assert.False(t, ok)
}
