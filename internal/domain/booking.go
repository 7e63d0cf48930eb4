package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending     BookingStatus = "PENDING"
	StatusConfirmed   BookingStatus = "CONFIRMED"
	StatusCancelled   BookingStatus = "CANCELLED"
	StatusRescheduled BookingStatus = "RESCHEDULED"
	StatusCompleted   BookingStatus = "COMPLETED"
	StatusNoShow      BookingStatus = "NO_SHOW"
)

// Booking represents a client's reservation of a therapist's time window.
// StartTs/EndTs are copied from the reserved slot at creation or reschedule time.
type Booking struct {
	ID          string
	ClientID    string
	TherapistID string
	StartTs     time.Time
	EndTs       time.Time
	Status      BookingStatus

	// AvailabilityID points at the slot reserved last. NULL for bookings that
	// predate the column; release then falls back to the window match.
	AvailabilityID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still holds its time window
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return !b.IsTerminal()
}

// CanBeRescheduled returns true if the booking can be moved to another slot
func (b *Booking) CanBeRescheduled() bool {
	return !b.IsTerminal()
}

// IsTerminal returns true if no engine transition applies to the booking anymore
func (b *Booking) IsTerminal() bool {
	switch b.Status {
	case StatusPending, StatusConfirmed:
		return false
	default:
		return true
	}
}

// MatchesSlot returns true if the slot covers exactly the booking's window
func (b *Booking) MatchesSlot(s *Slot) bool {
	return s.TherapistID == b.TherapistID && s.StartTs.Equal(b.StartTs) && s.EndTs.Equal(b.EndTs)
}

// BookingUpdate is a partial update of a booking row. Nil fields are left untouched.
type BookingUpdate struct {
	Status         *BookingStatus
	StartTs        *time.Time
	EndTs          *time.Time
	AvailabilityID *string
}

// IsEmpty returns true if the update changes nothing
func (u BookingUpdate) IsEmpty() bool {
	return u.Status == nil && u.StartTs == nil && u.EndTs == nil && u.AvailabilityID == nil
}

// Apply copies the set fields of the update onto the booking
func (u BookingUpdate) Apply(b *Booking) {
	if u.Status != nil {
		b.Status = *u.Status
	}
	if u.StartTs != nil {
		b.StartTs = *u.StartTs
	}
	if u.EndTs != nil {
		b.EndTs = *u.EndTs
	}
	if u.AvailabilityID != nil {
		id := *u.AvailabilityID
		b.AvailabilityID = &id
	}
}

// BookingsFilter is used to list bookings of a participant
type BookingsFilter struct {
	ClientID    *string // Exactly one of ClientID and TherapistID must be set
	TherapistID *string
	Status      *BookingStatus // Optional
}

// ParseBookingStatus converts a string into a known BookingStatus
func ParseBookingStatus(status string) (BookingStatus, bool) {
	s := BookingStatus(status)
	for _, valid := range AllStatuses {
		if s == valid {
			return s, true
		}
	}
	return "", false
}
