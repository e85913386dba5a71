package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"seatbook/internal/auth"
	"seatbook/internal/shared/config"
	"seatbook/internal/shared/database"
	"seatbook/internal/testutil"
	"seatbook/internal/users"
	"seatbook/pkg/logger"
	"seatbook/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiResponse struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
}

type testServer struct {
	engine *gin.Engine
	secret string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	testutil.StandardLayout(t, db)

	cfg := config.Load()
	cfg.JWT.Secret = "routes-secret"
	cfg.MetricsEnabled = true

	reg := prometheus.NewRegistry()
	router := NewRouter(cfg, &database.DB{PostgreSQL: db}, Dependencies{
		Metrics:   metrics.NewWithRegistry(reg),
		Gatherer:  reg,
		Publisher: &testutil.RecordingPublisher{},
		Logger:    logger.Discard(),
	})
	return &testServer{engine: router.NewEngine(), secret: cfg.JWT.Secret}
}

func (s *testServer) token(t *testing.T, role users.Role) (uuid.UUID, string) {
	t.Helper()
	id := uuid.New()
	token, err := auth.IssueAccessToken(s.secret, id, "", role, time.Hour)
	require.NoError(t, err)
	return id, token
}

func (s *testServer) do(t *testing.T, method, path, token, body string) (int, apiResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var resp apiResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w.Code, resp
}

func TestBookingLifecycle(t *testing.T) {
	srv := newTestServer(t)
	_, userToken := srv.token(t, users.RoleUser)
	_, adminToken := srv.token(t, users.RoleAdmin)

	code, _ := srv.do(t, http.MethodPost, "/api/v1/bookings", "", `{"numberOfSeats": 2}`)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, resp := srv.do(t, http.MethodPost, "/api/v1/bookings", userToken, `{"numberOfSeats": 5}`)
	require.Equal(t, http.StatusCreated, code)
	var created struct {
		Seats []struct {
			Row int `json:"row"`
		} `json:"seats"`
		TotalSeatsBooked int `json:"totalSeatsBooked"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &created))
	assert.Equal(t, 5, created.TotalSeatsBooked)
	for _, s := range created.Seats {
		assert.Equal(t, 1, s.Row)
	}

	code, _ = srv.do(t, http.MethodPost, "/api/v1/bookings", userToken, `{"numberOfSeats": 3}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = srv.do(t, http.MethodPost, "/api/v1/bookings", userToken, `{"numberOfSeats": 8}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, resp = srv.do(t, http.MethodGet, "/api/v1/seats/my-bookings", userToken, "")
	require.Equal(t, http.StatusOK, code)
	var mine struct {
		TotalBookedSeats int `json:"totalBookedSeats"`
		RemainingAllowed int `json:"remainingAllowed"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &mine))
	assert.Equal(t, 5, mine.TotalBookedSeats)
	assert.Equal(t, 2, mine.RemainingAllowed)

	code, resp = srv.do(t, http.MethodGet, "/api/v1/seats/count", userToken, "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"available": 75, "booked": 5, "blocked": 0, "total": 80}`, string(resp.Data))

	code, _ = srv.do(t, http.MethodDelete, "/api/v1/bookings/cancel-all", userToken, "")
	assert.Equal(t, http.StatusOK, code)
	code, _ = srv.do(t, http.MethodDelete, "/api/v1/bookings/cancel-all", userToken, "")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = srv.do(t, http.MethodGet, "/api/v1/analytics/dashboard", userToken, "")
	assert.Equal(t, http.StatusForbidden, code)
	code, resp = srv.do(t, http.MethodGet, "/api/v1/analytics/dashboard", adminToken, "")
	require.Equal(t, http.StatusOK, code)
	var dashboard struct {
		TotalSeats int64 `json:"totalSeats"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &dashboard))
	assert.Equal(t, int64(80), dashboard.TotalSeats)

	code, _ = srv.do(t, http.MethodPost, "/api/v1/seats/reset", userToken, "")
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = srv.do(t, http.MethodPost, "/api/v1/seats/reset", adminToken, "")
	assert.Equal(t, http.StatusOK, code)

	code, resp = srv.do(t, http.MethodGet, "/api/v1/bookings", userToken, "")
	require.Equal(t, http.StatusOK, code)
	var history []struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &history))
	require.Len(t, history, 1)
	assert.Equal(t, "cancelled", history[0].Status)
}

func TestOperationalRoutes(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/", "/health", "/ping", "/status"} {
		code, _ := srv.do(t, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusOK, code, path)
	}

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	srv.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}
