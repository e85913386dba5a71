package seats

import (
	"time"

	"seatbook/internal/allocation"
)

// Seat is one bookable unit of the fixed layout. Rows are created by the
// layout seeder and never deleted by booking operations.
type Seat struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	RowNumber  int       `gorm:"not null;uniqueIndex:idx_seat_position;check:chk_seats_row_positive,row_number > 0" json:"row_number"`
	SeatNumber int       `gorm:"not null;uniqueIndex:idx_seat_position;check:chk_seats_seat_positive,seat_number > 0" json:"seat_number"`
	Status     Status    `gorm:"type:varchar(20);not null;default:'available';index" json:"status"`
	IsBooked   bool      `gorm:"not null;default:false" json:"is_booked"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName sets the table name for Seat
func (Seat) TableName() string {
	return "seats"
}

func (s *Seat) IsAvailable() bool {
	return s.Status == StatusAvailable
}

// Candidate converts the seat into the shape the allocation engine works on
func (s *Seat) Candidate() allocation.Candidate {
	return allocation.Candidate{
		SeatID:     s.ID,
		Row:        s.RowNumber,
		SeatNumber: s.SeatNumber,
	}
}

// Filter narrows a seat listing
type Filter struct {
	AvailableOnly bool
	Row           *int
}
