package get_available_slots

import (
	"time"
)

// Request модель запроса на получение свободных слотов терапевта
type Request struct {
	TherapistID string     // ID терапевта
	From        *time.Time // Начало диапазона (по умолчанию текущее время)
	To          *time.Time // Конец диапазона (опционально)
}

// Response модель ответа со списком свободных слотов
type Response struct {
	TherapistID string
	From        time.Time
	To          *time.Time
	Slots       []Slot
}

// Slot модель свободного слота
type Slot struct {
	ID              string
	StartTs         time.Time
	EndTs           time.Time
	DurationMinutes int
}
