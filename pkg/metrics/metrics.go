package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Booking outcomes
const (
	OutcomeSuccess           = "success"
	OutcomeInvalid           = "invalid"
	OutcomeCapacityExceeded  = "capacity_exceeded"
	OutcomeInsufficientSeats = "insufficient_seats"
	OutcomeConflict          = "conflict"
	OutcomeError             = "error"
)

// Cancellation kinds
const (
	KindCancelAll = "cancel_all"
	KindReset     = "reset"
)

// Metrics holds the application's Prometheus collectors. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	// Total HTTP requests (method, path, status_code)
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTP request latency (method, path)
	HTTPRequestDuration *prometheus.HistogramVec

	// Booking attempts by outcome
	BookingsTotal *prometheus.CounterVec

	// Transactions re-run after losing a race
	BookingConflictRetries prometheus.Counter

	// End-to-end booking latency including retries
	BookingDuration prometheus.Histogram

	// Bookings cancelled (kind: cancel_all, reset)
	CancellationsTotal *prometheus.CounterVec
}

// New creates a Metrics instance registered on the default registry
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers the collectors on reg
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		BookingsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookings_total",
				Help: "Total number of booking attempts by outcome",
			},
			[]string{"outcome"},
		),
		BookingConflictRetries: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "booking_conflict_retries_total",
				Help: "Booking transactions retried after a concurrent update conflict",
			},
		),
		BookingDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "booking_duration_seconds",
				Help:    "Time to complete a booking request, retries included",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
		),
		CancellationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cancellations_total",
				Help: "Total number of bookings cancelled",
			},
			[]string{"kind"},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.BookingsTotal,
		m.BookingConflictRetries,
		m.BookingDuration,
		m.CancellationsTotal,
	)

	return m
}

func (m *Metrics) ObserveBooking(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.BookingsTotal.WithLabelValues(outcome).Inc()
	m.BookingDuration.Observe(d.Seconds())
}

func (m *Metrics) IncConflictRetry() {
	if m == nil {
		return
	}
	m.BookingConflictRetries.Inc()
}

func (m *Metrics) AddCancellations(kind string, bookings int64) {
	if m == nil || bookings <= 0 {
		return
	}
	m.CancellationsTotal.WithLabelValues(kind).Add(float64(bookings))
}

// GinMiddleware records request counts and latency per route template
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
