package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TherapyBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TherapyBookingService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/SMC-TherapyBookingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-TherapyBookingService/pkg/ptr"
)

const operationName = "create"

// UseCase use case для создания бронирования
type UseCase struct {
	slotRepo    SlotRepository
	bookingRepo BookingRepository
	payments    PaymentRecorder
	txManager   TransactionManager
	metrics     Metrics
	logger      Logger
}

// NewUseCase создает новый экземпляр use case.
// payments и metrics могут быть nil
func NewUseCase(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	payments PaymentRecorder,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:    slotRepo,
		bookingRepo: bookingRepo,
		payments:    payments,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка слота, создание бронирования, запись платежа и резервирование слота
// выполняются в одной транзакции; ошибка записи платежа транзакцию не откатывает
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	defer func() { uc.observe(err) }()

	uc.logger.Info("CreateBooking: client=%s, therapist=%s, availability=%s",
		req.ClientID, req.TherapistID, req.AvailabilityID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	// 2. Все операции с хранилищем выполняем в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2.1. Слот должен существовать (строка блокируется до конца транзакции)
		slot, err := uc.slotRepo.GetByID(txCtx, req.AvailabilityID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("CreateBooking: slot id=%s not found", req.AvailabilityID)
				return ErrSlotNotFound
			}
			uc.logger.Error("CreateBooking: failed to get slot id=%s: %v", req.AvailabilityID, err)
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		// 2.2. Слот должен быть свободен
		if !slot.IsFree() {
			uc.logger.Warn("CreateBooking: slot id=%s already booked", slot.ID)
			return ErrSlotAlreadyBooked
		}

		// 2.3. Слот должен принадлежать терапевту из запроса
		if slot.TherapistID != req.TherapistID {
			uc.logger.Warn("CreateBooking: slot id=%s belongs to therapist=%s, not %s",
				slot.ID, slot.TherapistID, req.TherapistID)
			return ErrSlotOwnershipMismatch
		}

		// 2.4. Создаем бронирование с окном слота
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			ClientID:       req.ClientID,
			TherapistID:    req.TherapistID,
			StartTs:        slot.StartTs,
			EndTs:          slot.EndTs,
			Status:         domain.StatusConfirmed,
			AvailabilityID: ptr.Ptr(slot.ID),
		})
		if err != nil {
			if errors.Is(err, bookingRepo.ErrWindowTaken) {
				uc.logger.Warn("CreateBooking: window of slot id=%s already has an active booking", slot.ID)
				return ErrSlotAlreadyBooked
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 2.5. Запись платежа (ошибка не прерывает транзакцию)
		uc.recordPayment(txCtx, created, req)

		// 2.6. Резервируем слот
		if _, err := uc.slotRepo.SetBooked(txCtx, slot.ID, true); err != nil {
			if errors.Is(err, slotRepo.ErrSlotStateConflict) {
				uc.logger.Warn("CreateBooking: slot id=%s was booked concurrently", slot.ID)
				return ErrSlotAlreadyBooked
			}
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			uc.logger.Error("CreateBooking: failed to reserve slot id=%s: %v", slot.ID, err)
			return fmt.Errorf("%w: failed to reserve slot: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		var de *domain.Error
		if !errors.As(err, &de) {
			uc.logger.Error("CreateBooking: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s", result.ID)

	return &Response{
		ID:             result.ID,
		ClientID:       result.ClientID,
		TherapistID:    result.TherapistID,
		AvailabilityID: result.AvailabilityID,
		StartTs:        result.StartTs,
		EndTs:          result.EndTs,
		Status:         string(result.Status),
		CreatedAt:      result.CreatedAt,
		UpdatedAt:      result.UpdatedAt,
	}, nil
}

// recordPayment пытается сохранить платеж. Ошибка логируется и учитывается в метриках,
// но не возвращается и не повторяется
func (uc *UseCase) recordPayment(ctx context.Context, booking *domain.Booking, req *Request) {
	if uc.payments == nil {
		return
	}

	payment := &domain.Payment{
		BookingID: booking.ID,
		Amount:    req.Amount,
		Currency:  req.Currency,
		Status:    domain.PaymentStatusPaid,
		Reference: req.PaymentReference,
	}

	if err := uc.payments.Record(ctx, payment); err != nil {
		uc.logger.Warn("CreateBooking: failed to record payment for booking id=%s: %v", booking.ID, err)
		if uc.metrics != nil {
			uc.metrics.ObservePaymentRecordFailure()
		}
		return
	}

	uc.logger.Info("CreateBooking: recorded payment id=%s for booking id=%s", payment.ID, booking.ID)
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
