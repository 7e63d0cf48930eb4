package cancel_booking

import (
	"time"

	"github.com/m04kA/SMC-TherapyBookingService/internal/domain"
	cancelBooking "github.com/m04kA/SMC-TherapyBookingService/internal/usecase/cancel_booking"
)

// BookingResponse HTTP response model
type BookingResponse struct {
	ID           string `json:"id"`
	ClientID     string `json:"clientId"`
	TherapistID  string `json:"therapistId"`
	StartTs      string `json:"startTs"`
	EndTs        string `json:"endTs"`
	Status       string `json:"status"`
	SlotReleased bool   `json:"slotReleased"`
	UpdatedAt    string `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:           resp.ID,
		ClientID:     resp.ClientID,
		TherapistID:  resp.TherapistID,
		StartTs:      resp.StartTs.Format(domain.TimeFormat),
		EndTs:        resp.EndTs.Format(domain.TimeFormat),
		Status:       resp.Status,
		SlotReleased: resp.SlotReleased,
		UpdatedAt:    resp.UpdatedAt.Format(time.RFC3339),
	}
}
