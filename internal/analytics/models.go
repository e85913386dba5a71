package analytics

import "time"

// RowOccupancy is the seat status breakdown of one row
type RowOccupancy struct {
	RowNumber     int     `json:"row" gorm:"column:row_number"`
	Total         int64   `json:"total"`
	Available     int64   `json:"available"`
	Booked        int64   `json:"booked"`
	Blocked       int64   `json:"blocked"`
	OccupancyRate float64 `json:"occupancyRate" gorm:"-"`
}

// BookingOverview summarizes the booking ledger
type BookingOverview struct {
	ActiveBookings         int64   `json:"activeBookings"`
	CancelledBookings      int64   `json:"cancelledBookings"`
	BookedSeats            int64   `json:"bookedSeats"`
	UsersWithBookings      int64   `json:"usersWithBookings"`
	AverageSeatsPerBooking float64 `json:"averageSeatsPerBooking"`
	CancellationRate       float64 `json:"cancellationRate"`
}

// DailyBookingStats counts bookings created and cancelled on one UTC day
type DailyBookingStats struct {
	Date      string `json:"date"`
	Created   int64  `json:"created"`
	Cancelled int64  `json:"cancelled"`
}

// Dashboard is returned by GET /analytics/dashboard
type Dashboard struct {
	TotalSeats    int64               `json:"totalSeats"`
	OccupancyRate float64             `json:"occupancyRate"`
	Rows          []RowOccupancy      `json:"rows"`
	Bookings      BookingOverview     `json:"bookings"`
	Daily         []DailyBookingStats `json:"daily"`
	GeneratedAt   time.Time           `json:"generatedAt"`
}

// occupancy is booked over sellable seats; blocked seats are not for sale
func occupancy(booked, total, blocked int64) float64 {
	sellable := total - blocked
	if sellable <= 0 {
		return 0
	}
	return float64(booked) / float64(sellable)
}
