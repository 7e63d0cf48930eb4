package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TherapyBookingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-TherapyBookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidRange = "некорректный диапазон, ожидается from < to в формате RFC 3339"
	msgInvalidInput = "некорректный запрос свободных слотов"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/therapists/{therapistId}/availability
// Query params: from, to (optional, RFC 3339)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	therapistID := mux.Vars(r)["therapistId"]
	query := r.URL.Query()

	useCaseReq, err := ToUseCaseRequest(therapistID, query.Get("from"), query.Get("to"))
	if err != nil {
		h.logger.Warn("GET /therapists/{id}/availability - Invalid range: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /therapists/{id}/availability - Invalid input: therapist_id=%s, error=%v", therapistID, err)
			handlers.RespondDomainError(w, err, msgInvalidInput)

		default:
			h.logger.Error("GET /therapists/{id}/availability - Failed to get slots: therapist_id=%s, error=%v", therapistID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /therapists/{id}/availability - Slots retrieved successfully: therapist_id=%s, slots_count=%d",
		therapistID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
