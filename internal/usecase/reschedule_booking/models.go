package reschedule_booking

import (
	"time"

	"github.com/m04kA/SMC-TherapyBookingService/internal/domain"
)

// Request модель запроса на перенос бронирования
type Request struct {
	BookingID         string       // ID бронирования
	NewAvailabilityID string       // ID нового слота
	Actor             domain.Actor // Кто переносит
}

// Response модель ответа с перенесенным бронированием
type Response struct {
	ID             string
	ClientID       string
	TherapistID    string
	AvailabilityID *string
	StartTs        time.Time
	EndTs          time.Time
	Status         string
	ReleasedSlotID *string // Освобожденный старый слот (nil, если слот не найден)
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
