package database

import (
	"seatbook/internal/bookings"
	"seatbook/internal/seats"
	"seatbook/internal/users"

	"gorm.io/gorm"
)

// Migrate creates the users, seats, bookings and booking_seats tables.
// Order matters: booking_seats references both bookings and seats.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&seats.Seat{},
		&bookings.Booking{},
		&bookings.BookingSeat{},
	)
}
