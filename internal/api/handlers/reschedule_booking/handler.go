package reschedule_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TherapyBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TherapyBookingService/internal/api/middleware"
	rescheduleBooking "github.com/m04kA/SMC-TherapyBookingService/internal/usecase/reschedule_booking"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidInput         = "некорректные данные переноса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgNotFound             = "бронирование не найдено"
	msgForbidden            = "доступ запрещен"
	msgCannotReschedule     = "бронирование не может быть перенесено"
	msgNewSlotNotFound      = "новый слот не найден"
	msgNewSlotAlreadyBooked = "новый слот уже забронирован"
	msgTherapistMismatch    = "новый слот принадлежит другому терапевту"
)

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/reschedule - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RescheduleBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &rescheduleBooking.Request{
		BookingID:         bookingID,
		NewAvailabilityID: req.NewAvailabilityID,
		Actor:             actor,
	})
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/reschedule - Invalid input: %v", err)
			handlers.RespondDomainError(w, err, msgInvalidInput)

		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/reschedule - Booking not found: booking_id=%s", bookingID)
			handlers.RespondDomainError(w, err, msgNotFound)

		case errors.Is(err, rescheduleBooking.ErrNotAuthorized):
			h.logger.Warn("POST /bookings/{id}/reschedule - Access denied: booking_id=%s, user_id=%s", bookingID, actor.ID)
			handlers.RespondDomainError(w, err, msgForbidden)

		case errors.Is(err, rescheduleBooking.ErrBookingNotMutable):
			h.logger.Warn("POST /bookings/{id}/reschedule - Cannot reschedule: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondDomainError(w, err, msgCannotReschedule)

		case errors.Is(err, rescheduleBooking.ErrNewSlotNotFound):
			h.logger.Warn("POST /bookings/{id}/reschedule - New slot not found: availability_id=%s", req.NewAvailabilityID)
			handlers.RespondDomainError(w, err, msgNewSlotNotFound)

		case errors.Is(err, rescheduleBooking.ErrNewSlotAlreadyBooked):
			h.logger.Warn("POST /bookings/{id}/reschedule - New slot already booked: availability_id=%s", req.NewAvailabilityID)
			handlers.RespondDomainError(w, err, msgNewSlotAlreadyBooked)

		case errors.Is(err, rescheduleBooking.ErrSlotTherapistMismatch):
			h.logger.Warn("POST /bookings/{id}/reschedule - Therapist mismatch: booking_id=%s, availability_id=%s",
				bookingID, req.NewAvailabilityID)
			handlers.RespondDomainError(w, err, msgTherapistMismatch)

		default:
			h.logger.Error("POST /bookings/{id}/reschedule - Failed to reschedule booking: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/reschedule - Booking rescheduled successfully: booking_id=%s, availability_id=%s",
		bookingID, req.NewAvailabilityID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
