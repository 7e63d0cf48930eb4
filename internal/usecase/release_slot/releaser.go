// Package release_slot освобождает слот, занятый бронированием.
// Используется отменой и переносом внутри их транзакций.
package release_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TherapyBookingService/internal/domain"
	slotRepo "github.com/m04kA/SMC-TherapyBookingService/internal/infra/storage/slot"
)

// Releaser освобождает слот бронирования по принципу best-effort
type Releaser struct {
	slotRepo SlotRepository
	logger   Logger
}

// NewReleaser создает новый экземпляр Releaser
func NewReleaser(slotRepo SlotRepository, logger Logger) *Releaser {
	return &Releaser{
		slotRepo: slotRepo,
		logger:   logger,
	}
}

// Release снимает флаг is_booked со слота бронирования.
// Слот ищется по прямой ссылке availability_id, а если её нет или она указывает
// на слот с другим окном, то по (therapist_id, start_ts, end_ts).
// Отсутствующий или уже свободный слот пропускается без ошибки.
// Возвращает освобожденный слот или nil.
func (r *Releaser) Release(ctx context.Context, booking *domain.Booking) (*domain.Slot, error) {
	slot, err := r.find(ctx, booking)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			r.logger.Info("ReleaseSlot: no slot for booking id=%s (therapist=%s, %s - %s), skipping",
				booking.ID, booking.TherapistID,
				booking.StartTs.Format(domain.TimeFormat), booking.EndTs.Format(domain.TimeFormat))
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find slot: %w", err)
	}

	if slot.IsFree() {
		r.logger.Info("ReleaseSlot: slot id=%s of booking id=%s is already free", slot.ID, booking.ID)
		return nil, nil
	}

	released, err := r.slotRepo.SetBooked(ctx, slot.ID, false)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) || errors.Is(err, slotRepo.ErrSlotStateConflict) {
			r.logger.Warn("ReleaseSlot: slot id=%s changed while releasing: %v", slot.ID, err)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to release slot id=%s: %w", slot.ID, err)
	}

	r.logger.Info("ReleaseSlot: released slot id=%s of booking id=%s", slot.ID, booking.ID)
	return released, nil
}

func (r *Releaser) find(ctx context.Context, booking *domain.Booking) (*domain.Slot, error) {
	if booking.AvailabilityID != nil {
		slot, err := r.slotRepo.GetByID(ctx, *booking.AvailabilityID)
		switch {
		case err == nil && booking.MatchesSlot(slot):
			return slot, nil
		case err == nil:
			r.logger.Warn("ReleaseSlot: slot id=%s does not match window of booking id=%s, falling back to window lookup",
				slot.ID, booking.ID)
		case !errors.Is(err, slotRepo.ErrSlotNotFound):
			return nil, err
		}
	}

	return r.slotRepo.FindByTherapistAndWindow(ctx, booking.TherapistID, booking.StartTs, booking.EndTs)
}
