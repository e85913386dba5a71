package analytics

import (
	"net/http"

	"seatbook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

// Controller handles analytics HTTP requests
type Controller struct {
	service Service
}

// NewController creates a new analytics controller
func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// GetDashboard godoc
// @Summary      Occupancy and booking dashboard
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.StandardApiResponse{data=Dashboard}
// @Failure      403  {object}  response.StandardApiResponse
// @Failure      500  {object}  response.StandardApiResponse
// @Router       /analytics/dashboard [get]
func (c *Controller) GetDashboard(ctx *gin.Context) {
	dashboard, err := c.service.GetDashboard(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get dashboard analytics", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Dashboard analytics retrieved successfully", dashboard, nil)
}

// GetRowOccupancy godoc
// @Summary      Seat status per row
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.StandardApiResponse{data=[]RowOccupancy}
// @Failure      403  {object}  response.StandardApiResponse
// @Failure      500  {object}  response.StandardApiResponse
// @Router       /analytics/occupancy [get]
func (c *Controller) GetRowOccupancy(ctx *gin.Context) {
	rows, err := c.service.GetRowOccupancy(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get row occupancy", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Row occupancy retrieved successfully", rows, nil)
}
