package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TherapyBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TherapyBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-TherapyBookingService/internal/service/bookings/models"
)

// Service сервис чтения бронирований
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID.
// Видеть бронирование могут его клиент, терапевт и администраторы
func (s *Service) GetByID(ctx context.Context, id string, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for actor=%s", id, actor.ID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if domain.Authorize(actor, booking) == domain.Deny {
		s.logger.Warn("GetByID: access denied for actor=%s to booking id=%s", actor.ID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%s", id)
	return models.FromDomainBooking(booking), nil
}

// ListForActor получает бронирования пользователя, новые первыми.
// Клиент видит свои бронирования, терапевт свои, администратор
// должен указать клиента или терапевта
func (s *Service) ListForActor(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListForActor: fetching bookings for actor=%s (%s), status=%v", req.Actor.ID, req.Actor.Role, req.Status)

	filter, err := toFilter(req)
	if err != nil {
		s.logger.Warn("ListForActor: invalid request from actor=%s: %v", req.Actor.ID, err)
		return nil, err
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListForActor: repository error for actor=%s: %v", req.Actor.ID, err)
		return nil, fmt.Errorf("%w: ListForActor - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListForActor: successfully fetched %d bookings for actor=%s", len(bookings), req.Actor.ID)
	return models.FromDomainBookingList(bookings), nil
}

func toFilter(req *models.ListBookingsRequest) (domain.BookingsFilter, error) {
	var filter domain.BookingsFilter

	if req.Status != nil {
		status, ok := domain.ParseBookingStatus(*req.Status)
		if !ok {
			return filter, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
		}
		filter.Status = &status
	}

	if req.Actor.ID == "" {
		return filter, ErrAccessDenied
	}

	switch req.Actor.Role {
	case domain.RoleClient:
		filter.ClientID = &req.Actor.ID
	case domain.RoleTherapist:
		filter.TherapistID = &req.Actor.ID
	case domain.RoleAdmin:
		if (req.ClientID == nil) == (req.TherapistID == nil) {
			return filter, fmt.Errorf("%w: exactly one of clientId and therapistId is required", ErrInvalidInput)
		}
		filter.ClientID = req.ClientID
		filter.TherapistID = req.TherapistID
	default:
		return filter, fmt.Errorf("%w: unknown actor role %q", ErrInvalidInput, req.Actor.Role)
	}

	return filter, nil
}
