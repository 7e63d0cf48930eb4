package models

import (
	"time"

	"github.com/m04kA/SMC-TherapyBookingService/internal/domain"
)

// Request модели

// ListBookingsRequest запрос на получение бронирований
type ListBookingsRequest struct {
	Actor       domain.Actor
	ClientID    *string // Только для администратора
	TherapistID *string // Только для администратора
	Status      *string // Фильтр по статусу (опционально)
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID             string    `json:"id"`
	ClientID       string    `json:"clientId"`
	TherapistID    string    `json:"therapistId"`
	AvailabilityID *string   `json:"availabilityId,omitempty"`
	StartTs        time.Time `json:"startTs"`
	EndTs          time.Time `json:"endTs"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:             b.ID,
		ClientID:       b.ClientID,
		TherapistID:    b.TherapistID,
		AvailabilityID: b.AvailabilityID,
		StartTs:        b.StartTs,
		EndTs:          b.EndTs,
		Status:         string(b.Status),
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}
	return resp
}
