package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/m04kA/SMC-TherapyBookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-TherapyBookingService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-TherapyBookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-TherapyBookingService/internal/api/handlers/get_booking"
	listBookingsHandler "github.com/m04kA/SMC-TherapyBookingService/internal/api/handlers/list_bookings"
	rescheduleBookingHandler "github.com/m04kA/SMC-TherapyBookingService/internal/api/handlers/reschedule_booking"
	"github.com/m04kA/SMC-TherapyBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-TherapyBookingService/pkg/metrics"
)

// Handlers набор HTTP обработчиков сервиса
type Handlers struct {
	CreateBooking     *createBookingHandler.Handler
	CancelBooking     *cancelBookingHandler.Handler
	RescheduleBooking *rescheduleBookingHandler.Handler
	GetBooking        *getBookingHandler.Handler
	ListBookings      *listBookingsHandler.Handler
	GetAvailableSlots *getAvailableSlotsHandler.Handler
}

// MetricsOptions настройки HTTP метрик. Если Collector nil, метрики не подключаются
type MetricsOptions struct {
	Collector *metrics.Metrics
	Path      string
}

// NewRouter настраивает маршруты API
func NewRouter(h Handlers, m MetricsOptions) *mux.Router {
	r := mux.NewRouter()

	if m.Collector != nil {
		r.Use(middleware.MetricsMiddleware(m.Collector))
		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(m.Path, promhttp.Handler()).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты терапевта
	api.HandleFunc("/therapists/{therapistId}/availability", h.GetAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID и X-User-Role)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/bookings", h.CreateBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", h.ListBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", h.GetBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", h.CancelBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/reschedule", h.RescheduleBooking.Handle).Methods(http.MethodPost)

	return r
}
