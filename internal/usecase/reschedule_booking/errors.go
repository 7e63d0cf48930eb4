package reschedule_booking

import "github.com/m04kA/SMC-TherapyBookingService/internal/domain"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = domain.ErrBookingNotFound

	// ErrNotAuthorized возвращается, когда пользователь не участник бронирования и не администратор
	ErrNotAuthorized = domain.ErrNotAuthorized

	// ErrBookingNotMutable возвращается, когда бронирование уже нельзя перенести
	ErrBookingNotMutable = domain.ErrBookingNotMutable

	// ErrNewSlotNotFound возвращается, когда новый слот не найден
	ErrNewSlotNotFound = domain.ErrNewSlotNotFound

	// ErrNewSlotAlreadyBooked возвращается, когда новый слот уже занят
	ErrNewSlotAlreadyBooked = domain.ErrNewSlotAlreadyBooked

	// ErrSlotTherapistMismatch возвращается, когда новый слот принадлежит другому терапевту
	ErrSlotTherapistMismatch = domain.ErrSlotTherapistMismatch

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.ErrInvalidInput

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = domain.ErrInternal
)
