package bookings

import (
	"time"

	"seatbook/internal/seats"
	"seatbook/internal/users"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Booking is one successful reservation. Bookings are never deleted; a
// cancelled booking keeps its seat links for audit.
type Booking struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_bookings_user_status,priority:1" json:"user_id"`
	Status      Status     `gorm:"type:varchar(20);not null;default:'active';index:idx_bookings_user_status,priority:2" json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	// Relationships
	User  *users.User   `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT;"`
	Seats []BookingSeat `json:"seats,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:RESTRICT;"`
}

// BookingSeat links a booking to one seat, keyed by (booking_id, seat_id)
type BookingSeat struct {
	BookingID uuid.UUID `gorm:"type:uuid;primaryKey" json:"booking_id"`
	SeatID    uint      `gorm:"primaryKey;autoIncrement:false;index" json:"seat_id"`
	CreatedAt time.Time `json:"created_at"`

	Seat *seats.Seat `json:"seat,omitempty" gorm:"foreignKey:SeatID;constraint:OnDelete:RESTRICT;"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

// TableName sets the table name for BookingSeat
func (BookingSeat) TableName() string {
	return "booking_seats"
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.Status == "" {
		b.Status = StatusActive
	}
	return nil
}

func (b *Booking) IsActive() bool {
	return b.Status.IsActive()
}
