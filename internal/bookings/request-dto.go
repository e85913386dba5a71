package bookings

// CreateBookingRequest is the body of POST /bookings. The range is checked
// by the coordinator so out-of-range counts map to InvalidRequest.
type CreateBookingRequest struct {
	NumberOfSeats *int `json:"numberOfSeats" binding:"required"`
}
