package cancellation

import (
	"seatbook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupCancellationRoutes registers cancel-all and reset on authenticated groups
func SetupCancellationRoutes(bookings, seats *gin.RouterGroup, controller *Controller) {
	bookings.DELETE("/cancel-all", controller.CancelAll) // DELETE /api/v1/bookings/cancel-all

	seats.POST("/reset", middleware.RequireAdmin(), controller.Reset) // POST /api/v1/seats/reset
}
