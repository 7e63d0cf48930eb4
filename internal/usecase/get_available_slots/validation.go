package get_available_slots

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TherapyBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.TherapistID) == "" {
		return fmt.Errorf("%w: therapistID is required", ErrInvalidInput)
	}

	if len(req.TherapistID) > domain.MaxIDLength {
		return fmt.Errorf("%w: therapistID is longer than %d characters", ErrInvalidInput, domain.MaxIDLength)
	}

	// Если указаны обе границы, начало должно быть раньше конца
	if req.From != nil && req.To != nil && !req.From.Before(*req.To) {
		return fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	return nil
}
