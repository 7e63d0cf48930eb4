package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TherapyBookingService/internal/domain"
	slotRepo "github.com/m04kA/SMC-TherapyBookingService/internal/infra/storage/slot"
)

// SlotRepository репозиторий слотов в памяти
type SlotRepository struct {
	store *Store
}

// Add добавляет слот (управление расписанием терапевта вне движка бронирований)
func (r *SlotRepository) Add(ctx context.Context, slot domain.Slot) (*domain.Slot, error) {
	if slot.ID == "" {
		slot.ID = uuid.NewString()
	}
	if !slot.StartTs.Before(slot.EndTs) {
		return nil, fmt.Errorf("memory: slot %s must start before it ends", slot.ID)
	}

	err := r.store.withState(ctx, func(st *state) error {
		if _, exists := st.slots[slot.ID]; exists {
			return fmt.Errorf("memory: slot %s already exists", slot.ID)
		}
		now := r.store.now()
		slot.CreatedAt, slot.UpdatedAt = now, now
		st.slots[slot.ID] = slot
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// GetByID получает слот по ID
func (r *SlotRepository) GetByID(ctx context.Context, id string) (*domain.Slot, error) {
	var out *domain.Slot
	err := r.store.withState(ctx, func(st *state) error {
		slot, ok := st.slots[id]
		if !ok {
			return slotRepo.ErrSlotNotFound
		}
		out = &slot
		return nil
	})
	return out, err
}

// FindByTherapistAndWindow ищет слот терапевта с точно совпадающим окном.
// Занятые слоты имеют приоритет над свободными, среди равных первый по id
func (r *SlotRepository) FindByTherapistAndWindow(ctx context.Context, therapistID string, start, end time.Time) (*domain.Slot, error) {
	var out *domain.Slot
	err := r.store.withState(ctx, func(st *state) error {
		for _, slot := range sortedSlots(st) {
			if slot.TherapistID != therapistID || !slot.StartTs.Equal(start) || !slot.EndTs.Equal(end) {
				continue
			}
			if out == nil || (slot.IsBooked && !out.IsBooked) {
				s := slot
				out = &s
			}
		}
		if out == nil {
			return slotRepo.ErrSlotNotFound
		}
		return nil
	})
	return out, err
}

// SetBooked меняет флаг is_booked, только если текущее значение противоположно
func (r *SlotRepository) SetBooked(ctx context.Context, id string, booked bool) (*domain.Slot, error) {
	var out *domain.Slot
	err := r.store.withState(ctx, func(st *state) error {
		slot, ok := st.slots[id]
		if !ok {
			return slotRepo.ErrSlotNotFound
		}
		if slot.IsBooked == booked {
			return slotRepo.ErrSlotStateConflict
		}
		slot.IsBooked = booked
		slot.UpdatedAt = r.store.now()
		st.slots[id] = slot
		out = &slot
		return nil
	})
	return out, err
}

// ListFree возвращает свободные слоты терапевта, отсортированные по времени начала
func (r *SlotRepository) ListFree(ctx context.Context, filter domain.SlotsFilter) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0)
	err := r.store.withState(ctx, func(st *state) error {
		for _, slot := range sortedSlots(st) {
			if slot.TherapistID != filter.TherapistID || slot.IsBooked {
				continue
			}
			if filter.From != nil && slot.StartTs.Before(*filter.From) {
				continue
			}
			if filter.To != nil && slot.EndTs.After(*filter.To) {
				continue
			}
			s := slot
			slots = append(slots, &s)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].StartTs.Before(slots[j].StartTs)
	})
	return slots, nil
}

func sortedSlots(st *state) []domain.Slot {
	slots := make([]domain.Slot, 0, len(st.slots))
	for _, slot := range st.slots {
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].ID < slots[j].ID
	})
	return slots
}

type seedSlot struct {
	ID          string    `json:"id"`
	TherapistID string    `json:"therapist_id"`
	StartTs     time.Time `json:"start_ts"`
	EndTs       time.Time `json:"end_ts"`
}

// LoadSeed загружает слоты из JSON файла: [{"id":..., "therapist_id":..., "start_ts":..., "end_ts":...}]
func (r *SlotRepository) LoadSeed(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("memory: failed to read seed file: %w", err)
	}

	var seed []seedSlot
	if err := json.Unmarshal(data, &seed); err != nil {
		return 0, fmt.Errorf("memory: failed to parse seed file: %w", err)
	}

	err = r.store.Do(ctx, func(txCtx context.Context) error {
		for _, s := range seed {
			_, err := r.Add(txCtx, domain.Slot{
				ID:          s.ID,
				TherapistID: s.TherapistID,
				StartTs:     s.StartTs.UTC(),
				EndTs:       s.EndTs.UTC(),
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return len(seed), nil
}
