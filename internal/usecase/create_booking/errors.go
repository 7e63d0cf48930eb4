package create_booking

import "github.com/m04kA/SMC-TherapyBookingService/internal/domain"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = domain.ErrSlotNotFound

	// ErrSlotAlreadyBooked возвращается, когда слот уже занят
	ErrSlotAlreadyBooked = domain.ErrSlotAlreadyBooked

	// ErrSlotOwnershipMismatch возвращается, когда слот принадлежит другому терапевту
	ErrSlotOwnershipMismatch = domain.ErrSlotOwnershipMismatch

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.ErrInvalidInput

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = domain.ErrInternal
)
