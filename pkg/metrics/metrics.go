// Package metrics Prometheus метрики сервиса
package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Результаты попытки бронирования для slot_bookings_total
const (
	BookingResultSuccess     = "success"
	BookingResultInvalid     = "invalid"
	BookingResultNotFound    = "not_found"
	BookingResultUnpublished = "unpublished"
	BookingResultFull        = "full"
	BookingResultDuplicate   = "duplicate"
	BookingResultError       = "error"
)

// Metrics набор метрик сервиса. Все методы безопасны для nil-получателя.
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	bookingsTotal       *prometheus.CounterVec
	cancellationsTotal  prometheus.Counter
	dbQueryDuration     *prometheus.HistogramVec
	dbQueryErrors       *prometheus.CounterVec
	dbOpenConnections   prometheus.Gauge
	dbInUseConnections  prometheus.Gauge
	dbIdleConnections   prometheus.Gauge
	dbWaitCount         prometheus.Gauge
}

// New регистрирует метрики в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует метрики в переданном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		bookingsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "slot_bookings_total",
			Help:        "Slot booking attempts by result",
			ConstLabels: labels,
		}, []string{"result"}),
		cancellationsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name:        "slot_booking_cancellations_total",
			Help:        "Cancelled slot bookings",
			ConstLabels: labels,
		}),
		dbQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: labels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		dbQueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Database query errors",
			ConstLabels: labels,
		}, []string{"operation"}),
		dbOpenConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Open database connections",
			ConstLabels: labels,
		}),
		dbInUseConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Database connections in use",
			ConstLabels: labels,
		}),
		dbIdleConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Idle database connections",
			ConstLabels: labels,
		}),
		dbWaitCount: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: labels,
		}),
	}
}

// ObserveHTTPRequest учитывает HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordBooking учитывает попытку бронирования
func (m *Metrics) RecordBooking(result string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(result).Inc()
}

// RecordCancellation учитывает отмену бронирования
func (m *Metrics) RecordCancellation() {
	if m == nil {
		return
	}
	m.cancellationsTotal.Inc()
}

// ObserveQuery реализует dbmetrics.Collector
func (m *Metrics) ObserveQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil && err != sql.ErrNoRows {
		m.dbQueryErrors.WithLabelValues(operation).Inc()
	}
}

// SetPoolStats реализует dbmetrics.Collector
func (m *Metrics) SetPoolStats(stats sql.DBStats) {
	if m == nil {
		return
	}
	m.dbOpenConnections.Set(float64(stats.OpenConnections))
	m.dbInUseConnections.Set(float64(stats.InUse))
	m.dbIdleConnections.Set(float64(stats.Idle))
	m.dbWaitCount.Set(float64(stats.WaitCount))
}
