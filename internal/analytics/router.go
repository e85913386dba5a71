package analytics

import (
	"seatbook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAnalyticsRoutes registers the admin analytics endpoints on an
// authenticated group
func SetupAnalyticsRoutes(rg *gin.RouterGroup, controller *Controller) {
	admin := rg.Group("/analytics", middleware.RequireAdmin())
	{
		admin.GET("/dashboard", controller.GetDashboard)    // GET /api/v1/analytics/dashboard
		admin.GET("/occupancy", controller.GetRowOccupancy) // GET /api/v1/analytics/occupancy
	}
}
