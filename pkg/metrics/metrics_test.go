package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	require.NotNil(t, m)
	assert.NotNil(t, m.HTTPRequestsTotal)
	assert.NotNil(t, m.BookingsTotal)
	assert.NotNil(t, m.BookingConflictRetries)
	assert.NotNil(t, m.CancellationsTotal)
}

func TestBookingMetrics(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())

	m.ObserveBooking(OutcomeSuccess, 10*time.Millisecond)
	m.ObserveBooking(OutcomeSuccess, 20*time.Millisecond)
	m.ObserveBooking(OutcomeConflict, time.Millisecond)
	m.IncConflictRetry()
	m.AddCancellations(KindCancelAll, 2)
	m.AddCancellations(KindReset, 0)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.BookingsTotal.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.BookingsTotal.WithLabelValues(OutcomeConflict)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.BookingConflictRetries))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.CancellationsTotal.WithLabelValues(KindCancelAll)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.CancellationsTotal))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveBooking(OutcomeSuccess, time.Second)
	m.IncConflictRetry()
	m.AddCancellations(KindReset, 3)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(m.GinMiddleware())
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGinMiddleware(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(m.GinMiddleware())
	r.GET("/seats/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/seats/1", "/seats/2", "/missing"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/seats/:id", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "404")))
}
