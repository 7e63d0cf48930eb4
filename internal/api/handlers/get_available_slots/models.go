package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-TherapyBookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-TherapyBookingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	TherapistID string          `json:"therapistId"`
	From        string          `json:"from"`
	To          *string         `json:"to,omitempty"`
	Slots       []AvailableSlot `json:"slots"`
}

// AvailableSlot модель свободного слота
type AvailableSlot struct {
	ID              string `json:"id"`
	StartTs         string `json:"startTs"`
	EndTs           string `json:"endTs"`
	DurationMinutes int    `json:"durationMinutes"`
}

// ToUseCaseRequest конвертирует параметры запроса в модель use case
func ToUseCaseRequest(therapistID, from, to string) (*getAvailableSlots.Request, error) {
	req := &getAvailableSlots.Request{TherapistID: therapistID}

	if from != "" {
		t, err := time.Parse(domain.TimeFormat, from)
		if err != nil {
			return nil, err
		}
		req.From = &t
	}

	if to != "" {
		t, err := time.Parse(domain.TimeFormat, to)
		if err != nil {
			return nil, err
		}
		req.To = &t
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	result := &AvailableSlotsResponse{
		TherapistID: resp.TherapistID,
		From:        resp.From.Format(domain.TimeFormat),
		Slots:       make([]AvailableSlot, 0, len(resp.Slots)),
	}

	if resp.To != nil {
		to := resp.To.UTC().Format(domain.TimeFormat)
		result.To = &to
	}

	for _, s := range resp.Slots {
		result.Slots = append(result.Slots, AvailableSlot{
			ID:              s.ID,
			StartTs:         s.StartTs.Format(domain.TimeFormat),
			EndTs:           s.EndTs.Format(domain.TimeFormat),
			DurationMinutes: s.DurationMinutes,
		})
	}

	return result
}
