package domain

import "time"

// Slot represents a fixed time window a therapist offers for booking
type Slot struct {
	ID          string
	TherapistID string
	StartTs     time.Time
	EndTs       time.Time
	IsBooked    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsFree returns true if the slot can be reserved
func (s *Slot) IsFree() bool {
	return !s.IsBooked
}

// Duration returns the length of the slot
func (s *Slot) Duration() time.Duration {
	return s.EndTs.Sub(s.StartTs)
}

// SlotsFilter selects free slots of a therapist
type SlotsFilter struct {
	TherapistID string
	From        *time.Time // start_ts >= From
	To          *time.Time // end_ts <= To
}
