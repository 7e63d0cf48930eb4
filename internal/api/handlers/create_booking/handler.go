package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TherapyBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TherapyBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-TherapyBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-TherapyBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные бронирования"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgClientRequired     = "администратор должен указать clientId"
	msgForbidden          = "создавать бронирования могут только клиенты и администраторы"
	msgSlotNotFound       = "слот не найден"
	msgSlotAlreadyBooked  = "выбранный слот уже забронирован"
	msgSlotOwnership      = "слот не принадлежит указанному терапевту"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Клиент бронирует для себя, администратор указывает клиента явно
	var clientID string
	switch actor.Role {
	case domain.RoleClient:
		clientID = actor.ID
	case domain.RoleAdmin:
		if req.ClientID == nil {
			handlers.RespondBadRequest(w, msgClientRequired)
			return
		}
		clientID = *req.ClientID
	default:
		h.logger.Warn("POST /bookings - Role %s cannot create bookings: user_id=%s", actor.Role, actor.ID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(clientID))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%s, error=%v", actor.ID, err)
			handlers.RespondDomainError(w, err, msgInvalidInput)

		case errors.Is(err, createBooking.ErrSlotNotFound):
			h.logger.Warn("POST /bookings - Slot not found: availability_id=%s", req.AvailabilityID)
			handlers.RespondDomainError(w, err, msgSlotNotFound)

		case errors.Is(err, createBooking.ErrSlotAlreadyBooked):
			h.logger.Warn("POST /bookings - Slot already booked: availability_id=%s, user_id=%s", req.AvailabilityID, actor.ID)
			handlers.RespondDomainError(w, err, msgSlotAlreadyBooked)

		case errors.Is(err, createBooking.ErrSlotOwnershipMismatch):
			h.logger.Warn("POST /bookings - Slot ownership mismatch: availability_id=%s, therapist_id=%s",
				req.AvailabilityID, req.TherapistID)
			handlers.RespondDomainError(w, err, msgSlotOwnership)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%s, availability_id=%s, error=%v",
				actor.ID, req.AvailabilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, client_id=%s, availability_id=%s",
		result.ID, clientID, req.AvailabilityID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
