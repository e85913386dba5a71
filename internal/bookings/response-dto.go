package bookings

import (
	"time"

	"seatbook/internal/seats"
)

type BookedSeat struct {
	SeatID     uint `json:"seatId"`
	Row        int  `json:"row"`
	SeatNumber int  `json:"seatNumber"`
}

// CreateBookingResponse is returned by POST /bookings
type CreateBookingResponse struct {
	BookingID        string       `json:"bookingId"`
	Seats            []BookedSeat `json:"seats"`
	TotalSeatsBooked int          `json:"totalSeatsBooked"`
}

// BookingResponse is one entry of GET /bookings
type BookingResponse struct {
	BookingID   string       `json:"bookingId"`
	Status      Status       `json:"status"`
	CreatedAt   time.Time    `json:"createdAt"`
	CancelledAt *time.Time   `json:"cancelledAt,omitempty"`
	Seats       []BookedSeat `json:"seats"`
}

type MyBookedSeat struct {
	BookingID string         `json:"bookingId"`
	SeatID    uint           `json:"seatId"`
	Position  seats.Position `json:"position"`
}

// MyBookingsResponse is returned by GET /seats/my-bookings
type MyBookingsResponse struct {
	Seats            []MyBookedSeat `json:"seats"`
	TotalBookedSeats int            `json:"totalBookedSeats"`
	RemainingAllowed int            `json:"remainingAllowed"`
}

type SummarySeat struct {
	SeatID   uint           `json:"seatId"`
	Position seats.Position `json:"position"`
}

type SummaryBooking struct {
	BookingID string        `json:"bookingId"`
	Seats     []SummarySeat `json:"seats"`
}

// UserBookingsResponse is one entry of GET /seats/user-bookings
type UserBookingsResponse struct {
	UserID           string           `json:"userId"`
	Name             string           `json:"name"`
	Email            *string          `json:"email"`
	PhoneNumber      string           `json:"phoneNumber"`
	Bookings         []SummaryBooking `json:"bookings"`
	TotalBookedSeats int              `json:"totalBookedSeats"`
}

// CapacityDetails is returned in the errors field when a request would
// exceed the per-user ceiling
type CapacityDetails struct {
	CurrentlyBooked  int `json:"currentlyBooked"`
	RemainingAllowed int `json:"remainingAllowed"`
	Requested        int `json:"requested"`
	MaxSeatsPerUser  int `json:"maxSeatsPerUser"`
}

func (b *Booking) bookedSeats() []BookedSeat {
	out := make([]BookedSeat, 0, len(b.Seats))
	for _, link := range b.Seats {
		if link.Seat == nil {
			continue
		}
		out = append(out, BookedSeat{
			SeatID:     link.SeatID,
			Row:        link.Seat.RowNumber,
			SeatNumber: link.Seat.SeatNumber,
		})
	}
	return out
}

func (b *Booking) ToResponse() BookingResponse {
	return BookingResponse{
		BookingID:   b.ID.String(),
		Status:      b.Status,
		CreatedAt:   b.CreatedAt,
		CancelledAt: b.CancelledAt,
		Seats:       b.bookedSeats(),
	}
}
