package analytics

import (
	"context"
	"time"

	"seatbook/internal/bookings"
	"seatbook/internal/seats"
	"seatbook/internal/shared/dberr"

	"gorm.io/gorm"
)

// Repository defines the analytics repository interface
type Repository interface {
	GetRowOccupancy(ctx context.Context) ([]RowOccupancy, error)
	GetBookingOverview(ctx context.Context) (*BookingOverview, error)
	GetDailyBookingStats(ctx context.Context, since time.Time) ([]DailyBookingStats, error)
}

// repository implements the Repository interface
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new analytics repository instance
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetRowOccupancy(ctx context.Context) ([]RowOccupancy, error) {
	var rows []RowOccupancy
	err := r.db.WithContext(ctx).
		Model(&seats.Seat{}).
		Select(`row_number,
			COUNT(*) AS total,
			SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS available,
			SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS booked,
			SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS blocked`,
			seats.StatusAvailable, seats.StatusBooked, seats.StatusBlocked).
		Group("row_number").
		Order("row_number ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, dberr.Classify("row occupancy", err)
	}

	for i := range rows {
		rows[i].OccupancyRate = occupancy(rows[i].Booked, rows[i].Total, rows[i].Blocked)
	}
	return rows, nil
}

func (r *repository) GetBookingOverview(ctx context.Context) (*BookingOverview, error) {
	db := r.db.WithContext(ctx)
	overview := &BookingOverview{}

	if err := db.Model(&bookings.Booking{}).
		Where("status = ?", bookings.StatusActive).
		Count(&overview.ActiveBookings).Error; err != nil {
		return nil, dberr.Classify("count active bookings", err)
	}

	if err := db.Model(&bookings.Booking{}).
		Where("status = ?", bookings.StatusCancelled).
		Count(&overview.CancelledBookings).Error; err != nil {
		return nil, dberr.Classify("count cancelled bookings", err)
	}

	if err := db.Model(&bookings.Booking{}).
		Where("status = ?", bookings.StatusActive).
		Distinct("user_id").
		Count(&overview.UsersWithBookings).Error; err != nil {
		return nil, dberr.Classify("count booking users", err)
	}

	if err := db.Model(&bookings.BookingSeat{}).
		Joins("JOIN bookings ON bookings.id = booking_seats.booking_id").
		Where("bookings.status = ?", bookings.StatusActive).
		Count(&overview.BookedSeats).Error; err != nil {
		return nil, dberr.Classify("count booked seats", err)
	}

	if overview.ActiveBookings > 0 {
		overview.AverageSeatsPerBooking = float64(overview.BookedSeats) / float64(overview.ActiveBookings)
	}
	if total := overview.ActiveBookings + overview.CancelledBookings; total > 0 {
		overview.CancellationRate = float64(overview.CancelledBookings) / float64(total)
	}
	return overview, nil
}

// GetDailyBookingStats buckets in Go rather than SQL so the date handling
// is the same on every database
func (r *repository) GetDailyBookingStats(ctx context.Context, since time.Time) ([]DailyBookingStats, error) {
	since = since.UTC().Truncate(24 * time.Hour)

	var ledger []bookings.Booking
	err := r.db.WithContext(ctx).
		Select("id", "created_at", "cancelled_at").
		Where("created_at >= ? OR cancelled_at >= ?", since, since).
		Find(&ledger).Error
	if err != nil {
		return nil, dberr.Classify("daily booking stats", err)
	}

	days := int(time.Now().UTC().Sub(since).Hours()/24) + 1
	stats := make([]DailyBookingStats, days)
	index := make(map[string]int, days)
	for i := range stats {
		day := since.AddDate(0, 0, i).Format(time.DateOnly)
		stats[i] = DailyBookingStats{Date: day}
		index[day] = i
	}

	for _, b := range ledger {
		if i, ok := index[b.CreatedAt.UTC().Format(time.DateOnly)]; ok {
			stats[i].Created++
		}
		if b.CancelledAt != nil {
			if i, ok := index[b.CancelledAt.UTC().Format(time.DateOnly)]; ok {
				stats[i].Cancelled++
			}
		}
	}
	return stats, nil
}
