package get_available_slots

import "github.com/m04kA/SMC-TherapyBookingService/internal/domain"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.ErrInvalidInput

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = domain.ErrInternal
)
