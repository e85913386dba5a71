package cancellation

import (
	"errors"
	"net/http"

	"seatbook/internal/shared/dberr"
	"seatbook/internal/shared/middleware"
	"seatbook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

// Controller handles cancel-all and reset requests
type Controller struct {
	service Service
}

// NewController creates a new cancellation controller
func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// CancelAll godoc
// @Summary      Cancel all my bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.StandardApiResponse{data=CancelAllResponse}
// @Failure      401  {object}  response.StandardApiResponse
// @Failure      404  {object}  response.StandardApiResponse
// @Failure      409  {object}  response.StandardApiResponse
// @Failure      500  {object}  response.StandardApiResponse
// @Router       /bookings/cancel-all [delete]
func (c *Controller) CancelAll(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	result, err := c.service.CancelAll(ctx.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoActiveBookings):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "No active bookings found", nil, nil)
		case errors.Is(err, dberr.ErrConflict):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Bookings changed concurrently, please retry", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to cancel bookings", nil, err.Error())
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "All bookings cancelled successfully", result, nil)
}

// Reset godoc
// @Summary      Reset all seats and bookings
// @Description  Admin only. Cancels every active booking and returns every seat to available.
// @Tags         seats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.StandardApiResponse{data=ResetResponse}
// @Failure      401  {object}  response.StandardApiResponse
// @Failure      403  {object}  response.StandardApiResponse
// @Failure      500  {object}  response.StandardApiResponse
// @Router       /seats/reset [post]
func (c *Controller) Reset(ctx *gin.Context) {
	result, err := c.service.ResetAll(ctx.Request.Context(), middleware.IsAdmin(ctx))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotAuthorized):
			response.RespondJSON(ctx, "error", http.StatusForbidden, err.Error(), nil, nil)
		case errors.Is(err, dberr.ErrConflict):
			response.RespondJSON(ctx, "error", http.StatusConflict, "Seats changed concurrently, please retry", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Error resetting seats and bookings", nil, err.Error())
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "All seats and bookings reset successfully", result, nil)
}
