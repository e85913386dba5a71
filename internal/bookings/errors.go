package bookings

import (
	"errors"
	"fmt"
)

// MaxSeatsPerUser is the capacity ceiling across all of a user's active
// bookings, and also the largest single request.
const MaxSeatsPerUser = 7

var (
	ErrInvalidRequest   = errors.New("number of seats must be between 1 and 7")
	ErrCapacityExceeded = errors.New("seat capacity exceeded")
)

// CapacityError reports how far a request would overshoot the ceiling so
// the caller can retry with a smaller count.
type CapacityError struct {
	CurrentlyBooked  int
	RemainingAllowed int
	Requested        int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("cannot book %d seats: %d already booked, %d remaining of %d",
		e.Requested, e.CurrentlyBooked, e.RemainingAllowed, MaxSeatsPerUser)
}

func (e *CapacityError) Unwrap() error {
	return ErrCapacityExceeded
}
