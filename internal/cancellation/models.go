package cancellation

import "errors"

var (
	ErrNoActiveBookings = errors.New("no active bookings to cancel")
	ErrNotAuthorized    = errors.New("only administrators can reset seats")
)

// CancelAllResponse is returned by DELETE /bookings/cancel-all
type CancelAllResponse struct {
	CancelledBookings int64 `json:"cancelledBookings"`
	SeatsReleased     int64 `json:"seatsReleased"`
}

// ResetResponse is returned by POST /seats/reset
type ResetResponse struct {
	CancelledBookings int64 `json:"cancelledBookings"`
	SeatsReleased     int64 `json:"seatsReleased"`
}
