package create_booking

import (
	"time"
)

// Request модель запроса на создание бронирования
type Request struct {
	ClientID         string  // ID клиента
	TherapistID      string  // ID терапевта
	AvailabilityID   string  // ID слота
	Amount           float64 // Сумма оплаты
	Currency         string  // Код валюты (ISO 4217)
	PaymentReference *string // Внешний идентификатор платежа (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID             string
	ClientID       string
	TherapistID    string
	AvailabilityID *string
	StartTs        time.Time
	EndTs          time.Time
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
