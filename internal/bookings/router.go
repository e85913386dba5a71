package bookings

import (
	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes registers booking endpoints on authenticated groups
func SetupBookingRoutes(bookings, seats *gin.RouterGroup, controller *Controller) {
	bookings.POST("", controller.CreateBooking) // POST /api/v1/bookings
	bookings.GET("", controller.ListBookings)   // GET /api/v1/bookings

	seats.GET("/my-bookings", controller.MyBookings)     // GET /api/v1/seats/my-bookings
	seats.GET("/user-bookings", controller.UserBookings) // GET /api/v1/seats/user-bookings
}
