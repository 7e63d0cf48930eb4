package memory

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TherapyBookingService/internal/domain"
)

// ErrPaymentBookingMissing возвращается, когда платеж ссылается на несуществующее бронирование
var ErrPaymentBookingMissing = errors.New("memory: payment references unknown booking")

// PaymentRepository репозиторий платежей в памяти
type PaymentRepository struct {
	store *Store
}

// Record сохраняет запись о платеже
func (r *PaymentRepository) Record(ctx context.Context, p *domain.Payment) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	return r.store.withState(ctx, func(st *state) error {
		if _, ok := st.bookings[p.BookingID]; !ok {
			return ErrPaymentBookingMissing
		}
		p.CreatedAt = r.store.now()
		st.payments[p.ID] = *p
		return nil
	})
}

// ListByBooking возвращает платежи бронирования в порядке создания
func (r *PaymentRepository) ListByBooking(ctx context.Context, bookingID string) ([]domain.Payment, error) {
	payments := make([]domain.Payment, 0)
	err := r.store.withState(ctx, func(st *state) error {
		for _, p := range st.payments {
			if p.BookingID == bookingID {
				payments = append(payments, p)
			}
		}
		return nil
	})
	sort.Slice(payments, func(i, j int) bool {
		return payments[i].CreatedAt.Before(payments[j].CreatedAt)
	})
	return payments, err
}
