package cancel_booking

import "github.com/m04kA/SMC-TherapyBookingService/internal/domain"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = domain.ErrBookingNotFound

	// ErrNotAuthorized возвращается, когда пользователь не участник бронирования и не администратор
	ErrNotAuthorized = domain.ErrNotAuthorized

	// ErrBookingNotMutable возвращается, когда бронирование уже нельзя отменить
	ErrBookingNotMutable = domain.ErrBookingNotMutable

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.ErrInvalidInput

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = domain.ErrInternal
)
