package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TherapyBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TherapyBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-TherapyBookingService/pkg/ptr"
)

const operationName = "cancel"

// UseCase use case для отмены бронирования
type UseCase struct {
	bookingRepo BookingRepository
	releaser    SlotReleaser
	txManager   TransactionManager
	metrics     Metrics
	logger      Logger
}

// NewUseCase создает новый экземпляр use case. metrics может быть nil
func NewUseCase(
	bookingRepo BookingRepository,
	releaser SlotReleaser,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		releaser:    releaser,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute выполняет use case отмены бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	defer func() { uc.observe(err) }()

	uc.logger.Info("CancelBooking: booking=%s, actor=%s (%s)", req.BookingID, req.Actor.ID, req.Actor.Role)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
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
				uc.logger.Warn("CancelBooking: booking id=%s not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CancelBooking: failed to get booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 2. Проверяем права
		if domain.Authorize(req.Actor, booking) == domain.Deny {
			uc.logger.Warn("CancelBooking: actor=%s is not allowed to cancel booking id=%s", req.Actor.ID, booking.ID)
			return ErrNotAuthorized
		}

		// 3. Отменить можно только ожидающее или подтвержденное бронирование
		if !booking.CanBeCancelled() {
			uc.logger.Warn("CancelBooking: booking id=%s has status %s", booking.ID, booking.Status)
			return fmt.Errorf("%w: status %s", ErrBookingNotMutable, booking.Status)
		}

		// 4. Меняем статус
		updated, err := uc.bookingRepo.Update(txCtx, booking.ID, domain.BookingUpdate{
			Status: ptr.Ptr(domain.StatusCancelled),
		})
		if err != nil {
			uc.logger.Error("CancelBooking: failed to update booking id=%s: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		// 5. Освобождаем слот, если он есть
		released, err = uc.releaser.Release(txCtx, booking)
		if err != nil {
			uc.logger.Error("CancelBooking: failed to release slot of booking id=%s: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to release slot: %v", ErrInternal, err)
		}

		result = updated
		return nil
	})

	if err != nil {
		var de *domain.Error
		if !errors.As(err, &de) {
			uc.logger.Error("CancelBooking: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.logger.Info("CancelBooking: booking id=%s cancelled", result.ID)

	return &Response{
		ID:             result.ID,
		ClientID:       result.ClientID,
		TherapistID:    result.TherapistID,
		AvailabilityID: result.AvailabilityID,
		StartTs:        result.StartTs,
		EndTs:          result.EndTs,
		Status:         string(result.Status),
		SlotReleased:   released != nil,
		CreatedAt:      result.CreatedAt,
		UpdatedAt:      result.UpdatedAt,
	}, nil
}

func validateRequest(req *Request) error {
	if strings.TrimSpace(req.BookingID) == "" || len(req.BookingID) > domain.MaxIDLength {
		return fmt.Errorf("%w: bookingID is required and must be at most %d characters", ErrInvalidInput, domain.MaxIDLength)
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
