package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TherapyBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TherapyBookingService/internal/infra/storage/booking"
)

// BookingRepository репозиторий бронирований в памяти
type BookingRepository struct {
	store *Store
}

// Create создает бронирование. Как и частичный уникальный индекс в PostgreSQL,
// не допускает второго неотмененного бронирования на то же окно терапевта
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}

	err := r.store.withState(ctx, func(st *state) error {
		if windowTaken(st, booking, "") {
			return bookingRepo.ErrWindowTaken
		}
		now := r.store.now()
		booking.CreatedAt, booking.UpdatedAt = now, now
		st.bookings[booking.ID] = cloneBooking(*booking)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// GetByID получает бронирование по ID
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	var out *domain.Booking
	err := r.store.withState(ctx, func(st *state) error {
		b, ok := st.bookings[id]
		if !ok {
			return bookingRepo.ErrBookingNotFound
		}
		b = cloneBooking(b)
		out = &b
		return nil
	})
	return out, err
}

// Update частично обновляет бронирование
func (r *BookingRepository) Update(ctx context.Context, id string, upd domain.BookingUpdate) (*domain.Booking, error) {
	if upd.IsEmpty() {
		return nil, bookingRepo.ErrEmptyUpdate
	}

	var out *domain.Booking
	err := r.store.withState(ctx, func(st *state) error {
		b, ok := st.bookings[id]
		if !ok {
			return bookingRepo.ErrBookingNotFound
		}
		b = cloneBooking(b)
		upd.Apply(&b)
		if windowTaken(st, &b, id) {
			return bookingRepo.ErrWindowTaken
		}
		b.UpdatedAt = r.store.now()
		st.bookings[id] = b
		res := cloneBooking(b)
		out = &res
		return nil
	})
	return out, err
}

// List получает бронирования клиента или терапевта, новые первыми
func (r *BookingRepository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	if (filter.ClientID == nil) == (filter.TherapistID == nil) {
		return nil, bookingRepo.ErrInvalidFilter
	}

	bookings := make([]*domain.Booking, 0)
	err := r.store.withState(ctx, func(st *state) error {
		for _, b := range st.bookings {
			if filter.ClientID != nil && b.ClientID != *filter.ClientID {
				continue
			}
			if filter.TherapistID != nil && b.TherapistID != *filter.TherapistID {
				continue
			}
			if filter.Status != nil && b.Status != *filter.Status {
				continue
			}
			c := cloneBooking(b)
			bookings = append(bookings, &c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(bookings, func(i, j int) bool {
		if bookings[i].StartTs.Equal(bookings[j].StartTs) {
			return bookings[i].ID < bookings[j].ID
		}
		return bookings[i].StartTs.After(bookings[j].StartTs)
	})
	return bookings, nil
}

// windowTaken проверяет, есть ли другое неотмененное бронирование на окно b
func windowTaken(st *state, b *domain.Booking, exceptID string) bool {
	if !b.IsActive() {
		return false
	}
	for id, other := range st.bookings {
		if id == exceptID || id == b.ID || !other.IsActive() {
			continue
		}
		if other.TherapistID == b.TherapistID && other.StartTs.Equal(b.StartTs) && other.EndTs.Equal(b.EndTs) {
			return true
		}
	}
	return false
}
