package domain

// Validation constants
const (
	MaxIDLength        = 64
	CurrencyCodeLength = 3
)

// TimeFormat is used for instants on the wire
const TimeFormat = "2006-01-02T15:04:05Z07:00" // RFC 3339

// AllStatuses lists every known booking status
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCancelled,
	StatusRescheduled,
	StatusCompleted,
	StatusNoShow,
}
