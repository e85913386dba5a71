package seats

import (
	"github.com/gin-gonic/gin"
)

// SetupSeatRoutes registers the seat read endpoints on an authenticated group
func SetupSeatRoutes(seats *gin.RouterGroup, controller *Controller) {
	seats.GET("", controller.ListSeats)               // GET /api/v1/seats
	seats.GET("/count", controller.CountSeats)        // GET /api/v1/seats/count
	seats.GET("/available", controller.ListAvailable) // GET /api/v1/seats/available
}
