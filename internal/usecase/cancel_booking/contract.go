package cancel_booking

import (
	"context"

	"github.com/m04kA/SMC-TherapyBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	Update(ctx context.Context, id string, upd domain.BookingUpdate) (*domain.Booking, error)
}

// SlotReleaser освобождает слот бронирования
type SlotReleaser interface {
	Release(ctx context.Context, booking *domain.Booking) (*domain.Slot, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс для метрик операций бронирования
type Metrics interface {
	ObserveBookingOperation(operation, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
