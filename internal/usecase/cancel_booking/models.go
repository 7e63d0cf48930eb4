package cancel_booking

import (
	"time"

	"github.com/m04kA/SMC-TherapyBookingService/internal/domain"
)

// Request модель запроса на отмену бронирования
type Request struct {
	BookingID string       // ID бронирования
	Actor     domain.Actor // Кто отменяет
}

// Response модель ответа с отмененным бронированием
type Response struct {
	ID             string
	ClientID       string
	TherapistID    string
	AvailabilityID *string
	StartTs        time.Time
	EndTs          time.Time
	Status         string
	SlotReleased   bool // Был ли освобожден слот
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
