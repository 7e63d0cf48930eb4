package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-TherapyBookingService/internal/domain"
)

// UseCase use case для получения свободных слотов терапевта
type UseCase struct {
	slotRepo     SlotRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slotRepo SlotRepository, logger Logger) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения свободных слотов.
// Без явного начала диапазона прошедшие слоты не возвращаются
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: therapist=%s", req.TherapistID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Начало диапазона
	from := uc.timeProvider.Now().UTC()
	if req.From != nil {
		from = req.From.UTC()
	}

	if req.To != nil && !from.Before(*req.To) {
		uc.logger.Info("GetAvailableSlots: empty range for therapist=%s", req.TherapistID)
		return &Response{TherapistID: req.TherapistID, From: from, To: req.To, Slots: []Slot{}}, nil
	}

	// 3. Получаем свободные слоты
	slots, err := uc.slotRepo.ListFree(ctx, domain.SlotsFilter{
		TherapistID: req.TherapistID,
		From:        &from,
		To:          req.To,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list slots for therapist=%s: %v", req.TherapistID, err)
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}

	result := make([]Slot, 0, len(slots))
	for _, s := range slots {
		result = append(result, Slot{
			ID:              s.ID,
			StartTs:         s.StartTs,
			EndTs:           s.EndTs,
			DurationMinutes: int(s.Duration().Minutes()),
		})
	}

	uc.logger.Info("GetAvailableSlots: found %d free slots for therapist=%s", len(result), req.TherapistID)

	return &Response{
		TherapistID: req.TherapistID,
		From:        from,
		To:          req.To,
		Slots:       result,
	}, nil
}
