package cancellation_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"seatbook/internal/cancellation"
	"seatbook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stubService struct {
	cancelErr error
	resets    int
}

func (s *stubService) CancelAll(context.Context, uuid.UUID) (*cancellation.CancelAllResponse, error) {
	if s.cancelErr != nil {
		return nil, s.cancelErr
	}
	return &cancellation.CancelAllResponse{CancelledBookings: 1, SeatsReleased: 2}, nil
}

func (s *stubService) ResetAll(_ context.Context, isAdmin bool) (*cancellation.ResetResponse, error) {
	if !isAdmin {
		return nil, cancellation.ErrNotAuthorized
	}
	s.resets++
	return &cancellation.ResetResponse{}, nil
}

func newRouter(svc cancellation.Service, admin bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, uuid.NewString())
		c.Set(middleware.ContextIsAdmin, admin)
		c.Next()
	})
	cancellation.SetupCancellationRoutes(r.Group("/bookings"), r.Group("/seats"), cancellation.NewController(svc))
	return r
}

func serve(r *gin.Engine, method, path string) int {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w.Code
}

func TestController_CancelAll(t *testing.T) {
	assert.Equal(t, http.StatusOK, serve(newRouter(&stubService{}, false), http.MethodDelete, "/bookings/cancel-all"))

	svc := &stubService{cancelErr: cancellation.ErrNoActiveBookings}
	assert.Equal(t, http.StatusNotFound, serve(newRouter(svc, false), http.MethodDelete, "/bookings/cancel-all"))
}

func TestController_Reset(t *testing.T) {
	svc := &stubService{}
	assert.Equal(t, http.StatusForbidden, serve(newRouter(svc, false), http.MethodPost, "/seats/reset"))
	assert.Zero(t, svc.resets)

	assert.Equal(t, http.StatusOK, serve(newRouter(svc, true), http.MethodPost, "/seats/reset"))
	assert.Equal(t, 1, svc.resets)
}
