package seats

import (
	"net/http"

	"seatbook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// ListSeats godoc
// @Summary      List seats
// @Description  Lists the seat layout, optionally only available seats or a single row
// @Tags         seats
// @Produce      json
// @Security     BearerAuth
// @Param        available  query  bool  false  "only available seats"
// @Param        row        query  int   false  "row number"
// @Success      200  {object}  response.StandardApiResponse{data=[]SeatResponse}
// @Failure      400  {object}  response.StandardApiResponse
// @Failure      500  {object}  response.StandardApiResponse
// @Router       /seats [get]
func (c *Controller) ListSeats(ctx *gin.Context) {
	var query ListSeatsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, response.BindingErrors(err))
		return
	}

	seats, err := c.service.ListSeats(ctx.Request.Context(), query.Filter())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get seats", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seats retrieved successfully", seats, nil)
}

// CountSeats godoc
// @Summary      Count seats
// @Tags         seats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.StandardApiResponse{data=SeatCountResponse}
// @Failure      500  {object}  response.StandardApiResponse
// @Router       /seats/count [get]
func (c *Controller) CountSeats(ctx *gin.Context) {
	counts, err := c.service.CountSeats(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to count seats", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat count retrieved successfully", counts, nil)
}

// ListAvailable godoc
// @Summary      List available seats
// @Description  Available seats ordered by row then seat number
// @Tags         seats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.StandardApiResponse{data=[]AvailableSeatResponse}
// @Failure      500  {object}  response.StandardApiResponse
// @Router       /seats/available [get]
func (c *Controller) ListAvailable(ctx *gin.Context) {
	seats, err := c.service.ListAvailable(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get available seats", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Available seats retrieved successfully", seats, nil)
}
