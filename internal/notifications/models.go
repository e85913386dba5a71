package notifications

import (
	"encoding/json"
	"time"
)

type EventType string

const (
	EventBookingCreated    EventType = "booking.created"
	EventBookingsCancelled EventType = "bookings.cancelled"
	EventSeatsReset        EventType = "seats.reset"
)

// SeatRef identifies one seat in an event payload
type SeatRef struct {
	SeatID     uint `json:"seatId"`
	Row        int  `json:"row"`
	SeatNumber int  `json:"seatNumber"`
}

// Event is published after a booking, cancellation or reset commits
type Event struct {
	Type              EventType `json:"type"`
	UserID            string    `json:"userId,omitempty"`
	BookingIDs        []string  `json:"bookingIds,omitempty"`
	Seats             []SeatRef `json:"seats,omitempty"`
	CancelledBookings int64     `json:"cancelledBookings,omitempty"`
	SeatsReleased     int64     `json:"seatsReleased,omitempty"`
	OccurredAt        time.Time `json:"occurredAt"`
}

func (e *Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// PartitionKey keeps all events of one user on the same partition. System
// wide events share a fixed key.
func (e *Event) PartitionKey() string {
	if e.UserID == "" {
		return "system"
	}
	return e.UserID
}
