package create_booking

import (
	"context"

	"github.com/m04kA/SMC-TherapyBookingService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Slot, error)
	SetBooked(ctx context.Context, id string, booked bool) (*domain.Slot, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// PaymentRecorder опциональный регистратор платежей.
// nil означает, что учет платежей отключен
type PaymentRecorder interface {
	Record(ctx context.Context, payment *domain.Payment) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс для метрик операций бронирования
type Metrics interface {
	ObserveBookingOperation(operation, result string)
	ObservePaymentRecordFailure()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
