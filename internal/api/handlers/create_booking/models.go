package create_booking

import (
	"time"

	"github.com/m04kA/SMC-TherapyBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-TherapyBookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ClientID         *string `json:"clientId,omitempty"` // Только для администратора
	TherapistID      string  `json:"therapistId"`
	AvailabilityID   string  `json:"availabilityId"`
	Amount           float64 `json:"amount"`
	Currency         string  `json:"currency"`
	PaymentReference *string `json:"paymentReference,omitempty"`
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
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(clientID string) *createBooking.Request {
	return &createBooking.Request{
		ClientID:         clientID,
		TherapistID:      r.TherapistID,
		AvailabilityID:   r.AvailabilityID,
		Amount:           r.Amount,
		Currency:         r.Currency,
		PaymentReference: r.PaymentReference,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:             resp.ID,
		ClientID:       resp.ClientID,
		TherapistID:    resp.TherapistID,
		AvailabilityID: resp.AvailabilityID,
		StartTs:        resp.StartTs.Format(domain.TimeFormat),
		EndTs:          resp.EndTs.Format(domain.TimeFormat),
		Status:         resp.Status,
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      resp.UpdatedAt.Format(time.RFC3339),
	}
}
