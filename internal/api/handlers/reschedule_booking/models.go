package reschedule_booking

import (
	"time"

	"github.com/m04kA/SMC-TherapyBookingService/internal/domain"
	rescheduleBooking "github.com/m04kA/SMC-TherapyBookingService/internal/usecase/reschedule_booking"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	NewAvailabilityID string `json:"newAvailabilityId"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID             string  `json:"id"`
	ClientID       string  `json:"clientId"`
	TherapistID    string  `json:"therapistId"`
	AvailabilityID *string `json:"availabilityId,omitempty"`
	StartTs        string  `json:"startTs"`
	EndTs          string  `json:"endTs"`
	Status         string  `json:"status"`
	ReleasedSlotID *string `json:"releasedSlotId,omitempty"`
	UpdatedAt      string  `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:             resp.ID,
		ClientID:       resp.ClientID,
		TherapistID:    resp.TherapistID,
		AvailabilityID: resp.AvailabilityID,
		StartTs:        resp.StartTs.Format(domain.TimeFormat),
		EndTs:          resp.EndTs.Format(domain.TimeFormat),
		Status:         resp.Status,
		ReleasedSlotID: resp.ReleasedSlotID,
		UpdatedAt:      resp.UpdatedAt.Format(time.RFC3339),
	}
}
