package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TherapyBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TherapyBookingService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/SMC-TherapyBookingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-TherapyBookingService/pkg/ptr"
)

const operationName = "reschedule"

// UseCase use case для переноса бронирования на другой слот того же терапевта
type UseCase struct {
	bookingRepo BookingRepository
	slotRepo    SlotRepository
	releaser    SlotReleaser
	txManager   TransactionManager
	metrics     Metrics
	logger      Logger
}

// NewUseCase создает новый экземпляр use case. metrics может быть nil
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	releaser SlotReleaser,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		slotRepo:    slotRepo,
		releaser:    releaser,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute выполняет use case переноса бронирования.
// Новый слот резервируется до обновления бронирования; любая ошибка откатывает все шаги
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	defer func() { uc.observe(err) }()

	uc.logger.Info("RescheduleBooking: booking=%s, new availability=%s, actor=%s (%s)",
		req.BookingID, req.NewAvailabilityID, req.Actor.ID, req.Actor.Role)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	var (
		result   *domain.Booking
		released *domain.Slot
	)

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Бронирование должно существовать (строка блокируется)
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("RescheduleBooking: booking id=%s not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to get booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 2. Проверяем права
		if domain.Authorize(req.Actor, booking) == domain.Deny {
			uc.logger.Warn("RescheduleBooking: actor=%s is not allowed to reschedule booking id=%s", req.Actor.ID, booking.ID)
			return ErrNotAuthorized
		}

		if !booking.CanBeRescheduled() {
			uc.logger.Warn("RescheduleBooking: booking id=%s has status %s", booking.ID, booking.Status)
			return fmt.Errorf("%w: status %s", ErrBookingNotMutable, booking.Status)
		}

		// 3. Новый слот должен существовать (строка блокируется)
		newSlot, err := uc.slotRepo.GetByID(txCtx, req.NewAvailabilityID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("RescheduleBooking: new slot id=%s not found", req.NewAvailabilityID)
				return ErrNewSlotNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to get slot id=%s: %v", req.NewAvailabilityID, err)
			return fmt.Errorf("%w: failed to get new slot: %v", ErrInternal, err)
		}

		// 4. Новый слот должен быть свободен
		if !newSlot.IsFree() {
			uc.logger.Warn("RescheduleBooking: new slot id=%s already booked", newSlot.ID)
			return ErrNewSlotAlreadyBooked
		}

		// 5. Новый слот должен принадлежать тому же терапевту
		if newSlot.TherapistID != booking.TherapistID {
			uc.logger.Warn("RescheduleBooking: new slot id=%s belongs to therapist=%s, booking therapist=%s",
				newSlot.ID, newSlot.TherapistID, booking.TherapistID)
			return ErrSlotTherapistMismatch
		}

		// 6. Освобождаем старый слот
		released, err = uc.releaser.Release(txCtx, booking)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to release old slot of booking id=%s: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to release old slot: %v", ErrInternal, err)
		}

		// 7. Резервируем новый слот до обновления бронирования
		if _, err := uc.slotRepo.SetBooked(txCtx, newSlot.ID, true); err != nil {
			if errors.Is(err, slotRepo.ErrSlotStateConflict) {
				uc.logger.Warn("RescheduleBooking: new slot id=%s was booked concurrently", newSlot.ID)
				return ErrNewSlotAlreadyBooked
			}
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrNewSlotNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to reserve slot id=%s: %v", newSlot.ID, err)
			return fmt.Errorf("%w: failed to reserve new slot: %v", ErrInternal, err)
		}

		// 8. Переносим бронирование на окно нового слота
		updated, err := uc.bookingRepo.Update(txCtx, booking.ID, domain.BookingUpdate{
			Status:         ptr.Ptr(domain.StatusRescheduled),
			StartTs:        ptr.Ptr(newSlot.StartTs),
			EndTs:          ptr.Ptr(newSlot.EndTs),
			AvailabilityID: ptr.Ptr(newSlot.ID),
		})
		if err != nil {
			if errors.Is(err, bookingRepo.ErrWindowTaken) {
				uc.logger.Warn("RescheduleBooking: window of slot id=%s already has an active booking", newSlot.ID)
				return ErrNewSlotAlreadyBooked
			}
			uc.logger.Error("RescheduleBooking: failed to update booking id=%s: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		result = updated
		return nil
	})

	if err != nil {
		var de *domain.Error
		if !errors.As(err, &de) {
			uc.logger.Error("RescheduleBooking: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: booking id=%s moved to slot id=%s", result.ID, req.NewAvailabilityID)

	resp = &Response{
		ID:             result.ID,
		ClientID:       result.ClientID,
		TherapistID:    result.TherapistID,
		AvailabilityID: result.AvailabilityID,
		StartTs:        result.StartTs,
		EndTs:          result.EndTs,
		Status:         string(result.Status),
		CreatedAt:      result.CreatedAt,
		UpdatedAt:      result.UpdatedAt,
	}
	if released != nil {
		resp.ReleasedSlotID = ptr.Ptr(released.ID)
	}
	return resp, nil
}

func validateRequest(req *Request) error {
	fields := []struct {
		name  string
		value string
	}{
		{"bookingID", req.BookingID},
		{"newAvailabilityID", req.NewAvailabilityID},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" || len(f.value) > domain.MaxIDLength {
			return fmt.Errorf("%w: %s is required and must be at most %d characters", ErrInvalidInput, f.name, domain.MaxIDLength)
		}
	}
	if _, ok := domain.ParseActorRole(string(req.Actor.Role)); !ok {
		return fmt.Errorf("%w: unknown actor role %q", ErrInvalidInput, req.Actor.Role)
	}
	return nil
}

func (uc *UseCase) observe(err error) {
	if uc.metrics == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = domain.ReasonOf(err)
	}
	uc.metrics.ObserveBookingOperation(operationName, result)
}
