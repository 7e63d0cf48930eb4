package create_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TherapyBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if err := validateID("clientID", req.ClientID); err != nil {
		return err
	}

	if err := validateID("therapistID", req.TherapistID); err != nil {
		return err
	}

	if err := validateID("availabilityID", req.AvailabilityID); err != nil {
		return err
	}

	if req.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	if len(req.Currency) != domain.CurrencyCodeLength || strings.ToUpper(req.Currency) != req.Currency {
		return fmt.Errorf("%w: currency must be a %d-letter upper-case code", ErrInvalidInput, domain.CurrencyCodeLength)
	}

	if req.PaymentReference != nil && strings.TrimSpace(*req.PaymentReference) == "" {
		return fmt.Errorf("%w: paymentReference must not be blank", ErrInvalidInput)
	}

	return nil
}

func validateID(name, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidInput, name)
	}
	if len(id) > domain.MaxIDLength {
		return fmt.Errorf("%w: %s is longer than %d characters", ErrInvalidInput, name, domain.MaxIDLength)
	}
	return nil
}
