package bookings

import (
	"errors"
	"net/http"

	"seatbook/internal/allocation"
	"seatbook/internal/shared/dberr"
	"seatbook/internal/shared/middleware"
	"seatbook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// CreateBooking godoc
// @Summary      Book seats
// @Description  Reserves 1 to 7 seats for the caller, preferring a single row
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  CreateBookingRequest  true  "seat count"
// @Success      201  {object}  response.StandardApiResponse{data=CreateBookingResponse}
// @Failure      400  {object}  response.StandardApiResponse{errors=CapacityDetails}
// @Failure      401  {object}  response.StandardApiResponse
// @Failure      409  {object}  response.StandardApiResponse
// @Failure      500  {object}  response.StandardApiResponse
// @Router       /bookings [post]
func (c *Controller) CreateBooking(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req CreateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, response.BindingErrors(err))
		return
	}

	result, err := c.service.Book(ctx.Request.Context(), userID, *req.NumberOfSeats)
	if err != nil {
		respondBookingError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Seats booked successfully", result, nil)
}

func respondBookingError(ctx *gin.Context, err error) {
	var capErr *CapacityError
	switch {
	case errors.Is(err, ErrInvalidRequest):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, err.Error(), nil, nil)
	case errors.As(err, &capErr):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, capErr.Error(), nil, CapacityDetails{
			CurrentlyBooked:  capErr.CurrentlyBooked,
			RemainingAllowed: capErr.RemainingAllowed,
			Requested:        capErr.Requested,
			MaxSeatsPerUser:  MaxSeatsPerUser,
		})
	case errors.Is(err, allocation.ErrInsufficientSeats):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, err.Error(), nil, nil)
	case errors.Is(err, dberr.ErrConflict):
		response.RespondJSON(ctx, "error", http.StatusConflict, "Seats were taken by a concurrent booking, please retry", nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to book seats", nil, err.Error())
	}
}

// ListBookings godoc
// @Summary      List my bookings
// @Description  Every booking of the caller, cancelled ones included
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.StandardApiResponse{data=[]BookingResponse}
// @Failure      401  {object}  response.StandardApiResponse
// @Failure      500  {object}  response.StandardApiResponse
// @Router       /bookings [get]
func (c *Controller) ListBookings(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	bookings, err := c.service.ListUserBookings(ctx.Request.Context(), userID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get bookings", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bookings retrieved successfully", bookings, nil)
}

// MyBookings godoc
// @Summary      My booked seats
// @Tags         seats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.StandardApiResponse{data=MyBookingsResponse}
// @Failure      401  {object}  response.StandardApiResponse
// @Failure      500  {object}  response.StandardApiResponse
// @Router       /seats/my-bookings [get]
func (c *Controller) MyBookings(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	result, err := c.service.MyBookings(ctx.Request.Context(), userID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get booked seats", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booked seats retrieved successfully", result, nil)
}

// UserBookings godoc
// @Summary      Active bookings grouped by user
// @Tags         seats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.StandardApiResponse{data=[]UserBookingsResponse}
// @Failure      500  {object}  response.StandardApiResponse
// @Router       /seats/user-bookings [get]
func (c *Controller) UserBookings(ctx *gin.Context) {
	summaries, err := c.service.UserBookingSummaries(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get user bookings", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "User bookings retrieved successfully", summaries, nil)
}
