package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	assignTechnicianHandler "github.com/m04kA/SMC-SanitationBookingService/internal/api/handlers/assign_technician"
	cancelBookingHandler "github.com/m04kA/SMC-SanitationBookingService/internal/api/handlers/cancel_booking"
	confirmBookingHandler "github.com/m04kA/SMC-SanitationBookingService/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/m04kA/SMC-SanitationBookingService/internal/api/handlers/create_booking"
	decidePaymentHandler "github.com/m04kA/SMC-SanitationBookingService/internal/api/handlers/decide_payment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SanitationBookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-SanitationBookingService/internal/api/handlers/get_booking"
	getClientBookingsHandler "github.com/m04kA/SMC-SanitationBookingService/internal/api/handlers/get_client_bookings"
	listPendingPaymentsHandler "github.com/m04kA/SMC-SanitationBookingService/internal/api/handlers/list_pending_payments"
	listServicesHandler "github.com/m04kA/SMC-SanitationBookingService/internal/api/handlers/list_services"
	rescheduleBookingHandler "github.com/m04kA/SMC-SanitationBookingService/internal/api/handlers/reschedule_booking"
	"github.com/m04kA/SMC-SanitationBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SanitationBookingService/pkg/metrics"
)

// Handlers обработчики всех маршрутов API
type Handlers struct {
	ListServices        *listServicesHandler.Handler
	GetAvailableSlots   *getAvailableSlotsHandler.Handler
	CreateBooking       *createBookingHandler.Handler
	GetBooking          *getBookingHandler.Handler
	CancelBooking       *cancelBookingHandler.Handler
	RescheduleBooking   *rescheduleBookingHandler.Handler
	GetClientBookings   *getClientBookingsHandler.Handler
	DecidePayment       *decidePaymentHandler.Handler
	ConfirmBooking      *confirmBookingHandler.Handler
	AssignTechnician    *assignTechnicianHandler.Handler
	ListPendingPayments *listPendingPaymentsHandler.Handler
}

// RouterConfig настройки роутера. Metrics == nil отключает метрики HTTP и /metrics
type RouterConfig struct {
	AdminAPIKey string
	Metrics     *metrics.Metrics
	MetricsPath string
	ServiceName string
}

// NewRouter собирает маршруты /api/v1
func NewRouter(h Handlers, cfg RouterConfig, logger middleware.Logger) *mux.Router {
	r := mux.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(logger))

	// Метрики HTTP (если включены)
	if cfg.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(cfg.Metrics, cfg.ServiceName))
		r.Handle(cfg.MetricsPath, promhttp.Handler()).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Key header)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.AdminAPIKey))

	// Очередь проверки переводов
	admin.HandleFunc("/payments/pending", h.ListPendingPayments.Handle).Methods(http.MethodGet)

	// Любое бронирование без проверки владельца
	admin.HandleFunc("/bookings/{bookingId}", h.GetBooking.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}/cancel", h.CancelBooking.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId}/reschedule", h.RescheduleBooking.Handle).Methods(http.MethodPatch)

	// Решение по переводу и подтверждение после переноса
	admin.HandleFunc("/bookings/{bookingId}/decision", h.DecidePayment.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{bookingId}/confirm", h.ConfirmBooking.Handle).Methods(http.MethodPost)

	// Назначение техника
	admin.HandleFunc("/bookings/{bookingId}/technician", h.AssignTechnician.Handle).Methods(http.MethodPut)

	// ============================================================
	// PUBLIC ROUTES (X-Client-ID необязателен)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	public.Use(middleware.OptionalClient)

	// Каталог услуг, с фильтром по стране и региону клиента
	public.HandleFunc("/services", h.ListServices.Handle).Methods(http.MethodGet)

	// Доступные слоты услуги
	public.HandleFunc("/services/{serviceId}/available-slots", h.GetAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// CLIENT ROUTES (требуют X-Client-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.ClientAuth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", h.CreateBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", h.GetBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", h.CancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/reschedule", h.RescheduleBooking.Handle).Methods(http.MethodPatch)

	// История бронирований клиента
	protected.HandleFunc("/clients/{clientId}/bookings", h.GetClientBookings.Handle).Methods(http.MethodGet)

	return r
}
