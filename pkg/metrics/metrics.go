package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор метрик сервиса
type Metrics struct {
	serviceName string

	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec
	DBQueryDuration    *prometheus.HistogramVec

	// Бизнес-метрики
	BookingsCreated  *prometheus.CounterVec
	BookingConflicts *prometheus.CounterVec
	AdminDecisions   *prometheus.CounterVec
	Reschedules      *prometheus.CounterVec
}

// New создает и регистрирует метрики в стандартном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики и регистрирует их в переданном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		serviceName: serviceName,
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"service", "method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"service", "method", "route"},
		),
		DBOpenConnections: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "db_open_connections",
				Help: "Number of established database connections",
			},
			[]string{"service"},
		),
		DBInUseConnections: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "db_in_use_connections",
				Help: "Number of database connections currently in use",
			},
			[]string{"service"},
		),
		DBIdleConnections: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "db_idle_connections",
				Help: "Number of idle database connections",
			},
			[]string{"service"},
		),
		DBWaitCount: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "db_wait_count",
				Help: "Total number of connections waited for",
			},
			[]string{"service"},
		),
		DBQueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "db_query_duration_seconds",
				Help:    "Database query duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"service", "operation"},
		),
		BookingsCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookings_created_total",
				Help: "Bookings created, by payment method and client type",
			},
			[]string{"service", "payment_method", "client_type"},
		),
		BookingConflicts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "booking_slot_conflicts_total",
				Help: "Attempts to take an occupied slot",
			},
			[]string{"service", "operation"},
		),
		AdminDecisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "booking_admin_decisions_total",
				Help: "Admin decisions on pending transfer payments",
			},
			[]string{"service", "decision"},
		),
		Reschedules: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "booking_reschedules_total",
				Help: "Successful booking reschedules, by previous status",
			},
			[]string{"service", "previous_status"},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.DBQueryDuration,
		m.BookingsCreated,
		m.BookingConflicts,
		m.AdminDecisions,
		m.Reschedules,
	)

	return m
}

// Методы ниже безопасны для nil-получателя: при выключенных метриках usecase получает nil

// IncBookingCreated учитывает созданное бронирование
func (m *Metrics) IncBookingCreated(paymentMethod, clientType string) {
	if m == nil {
		return
	}
	m.BookingsCreated.WithLabelValues(m.serviceName, paymentMethod, clientType).Inc()
}

// IncSlotConflict учитывает попытку занять уже занятый слот
func (m *Metrics) IncSlotConflict(operation string) {
	if m == nil {
		return
	}
	m.BookingConflicts.WithLabelValues(m.serviceName, operation).Inc()
}

// IncAdminDecision учитывает решение администратора по переводу
func (m *Metrics) IncAdminDecision(decision string) {
	if m == nil {
		return
	}
	m.AdminDecisions.WithLabelValues(m.serviceName, decision).Inc()
}

// IncReschedule учитывает перенос бронирования
func (m *Metrics) IncReschedule(previousStatus string) {
	if m == nil {
		return
	}
	m.Reschedules.WithLabelValues(m.serviceName, previousStatus).Inc()
}
