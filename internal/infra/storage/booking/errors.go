package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrWindowTaken возвращается, когда у терапевта уже есть активное бронирование на это окно
	// (нарушение частичного уникального индекса bookings_active_window_uniq)
	ErrWindowTaken = errors.New("booking.repository: active booking for this window already exists")

	// ErrEmptyUpdate возвращается, когда в частичном обновлении нет полей
	ErrEmptyUpdate = errors.New("booking.repository: nothing to update")

	// ErrInvalidFilter возвращается, когда фильтр не задает участника
	ErrInvalidFilter = errors.New("booking.repository: filter must set exactly one participant")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
