package domain

import "time"

// PaymentStatusPaid is the only status the booking flow records
const PaymentStatusPaid = "PAID"

// Payment is an auxiliary bookkeeping record tied to a booking.
// A booking is valid without it.
type Payment struct {
	ID        string
	BookingID string
	Amount    float64
	Currency  string
	Status    string
	Reference *string
	CreatedAt time.Time
}
