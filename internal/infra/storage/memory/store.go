// Package memory реализует хранилище слотов, бронирований и платежей в памяти.
// Транзакции сериализуются мьютексом и работают с копией состояния,
// которая подменяет зафиксированное состояние только при commit.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-TherapyBookingService/internal/domain"
)

type state struct {
	slots    map[string]domain.Slot
	bookings map[string]domain.Booking
	payments map[string]domain.Payment
}

func newState() *state {
	return &state{
		slots:    make(map[string]domain.Slot),
		bookings: make(map[string]domain.Booking),
		payments: make(map[string]domain.Payment),
	}
}

func (s *state) clone() *state {
	c := &state{
		slots:    make(map[string]domain.Slot, len(s.slots)),
		bookings: make(map[string]domain.Booking, len(s.bookings)),
		payments: make(map[string]domain.Payment, len(s.payments)),
	}
	for k, v := range s.slots {
		c.slots[k] = v
	}
	for k, v := range s.bookings {
		c.bookings[k] = cloneBooking(v)
	}
	for k, v := range s.payments {
		c.payments[k] = v
	}
	return c
}

func cloneBooking(b domain.Booking) domain.Booking {
	if b.AvailabilityID != nil {
		id := *b.AvailabilityID
		b.AvailabilityID = &id
	}
	return b
}

type txKey struct{}

type unit struct {
	working *state
}

// Store хранилище в памяти
type Store struct {
	mu        sync.Mutex
	committed *state
	now       func() time.Time
	txTimeout time.Duration
}

// Option настройка Store
type Option func(*Store)

// WithTxTimeout ограничивает время транзакции: по истечении изменения не применяются
func WithTxTimeout(timeout time.Duration) Option {
	return func(s *Store) {
		s.txTimeout = timeout
	}
}

// NewStore создает пустое хранилище
func NewStore(opts ...Option) *Store {
	s := &Store{
		committed: newState(),
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Do выполняет fn в транзакции. Изменения применяются только если fn вернула nil
// и контекст не истек; вложенный вызов присоединяется к внешней транзакции.
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*unit); ok {
		return fn(ctx)
	}

	if s.txTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.txTimeout)
		defer cancel()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	u := &unit{working: s.committed.clone()}
	if err := fn(context.WithValue(ctx, txKey{}, u)); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	s.committed = u.working
	return nil
}

// withState выполняет fn над рабочей копией транзакции из контекста,
// либо над зафиксированным состоянием под мьютексом (autocommit)
func (s *Store) withState(ctx context.Context, fn func(st *state) error) error {
	if u, ok := ctx.Value(txKey{}).(*unit); ok {
		return fn(u.working)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.committed)
}

// Slots возвращает репозиторий слотов
func (s *Store) Slots() *SlotRepository {
	return &SlotRepository{store: s}
}

// Bookings возвращает репозиторий бронирований
func (s *Store) Bookings() *BookingRepository {
	return &BookingRepository{store: s}
}

// Payments возвращает репозиторий платежей
func (s *Store) Payments() *PaymentRepository {
	return &PaymentRepository{store: s}
}
