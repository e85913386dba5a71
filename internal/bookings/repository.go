package bookings

import (
	"context"
	"time"

	"seatbook/internal/shared/dberr"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository is the booking ledger: bookings and their seat links.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	// Writes, always inside a transaction
	Create(ctx context.Context, booking *Booking) error
	CreateLinks(ctx context.Context, links []BookingSeat) error
	LockActiveByUser(ctx context.Context, userID uuid.UUID) ([]Booking, error)
	LockAllActive(ctx context.Context) (int64, error)
	LinkedSeatIDs(ctx context.Context, bookingIDs []uuid.UUID) ([]uint, error)
	Cancel(ctx context.Context, bookingIDs []uuid.UUID) (int64, error)
	CancelAllActive(ctx context.Context) (int64, error)

	// Reads
	CountActiveSeats(ctx context.Context, userID uuid.UUID) (int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]Booking, error)
	ListActiveWithUsers(ctx context.Context) ([]Booking, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new booking repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

// WRITES

// Create inserts the booking row only; links are written explicitly with
// CreateLinks so the caller controls them inside its transaction.
func (r *repository) Create(ctx context.Context, booking *Booking) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(booking).Error
	return dberr.Classify("create booking", err)
}

func (r *repository) CreateLinks(ctx context.Context, links []BookingSeat) error {
	if len(links) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&links).Error
	return dberr.Classify("create booking links", err)
}

// LockActiveByUser returns the user's active bookings and locks them until
// the transaction ends.
func (r *repository) LockActiveByUser(ctx context.Context, userID uuid.UUID) ([]Booking, error) {
	var bookings []Booking
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND status = ?", userID, StatusActive).
		Order("created_at ASC, id ASC").
		Find(&bookings).Error
	return bookings, dberr.Classify("lock active bookings", err)
}

// LockAllActive locks every active booking until the transaction ends and
// returns how many it holds. Bookings committed after the lock are not
// covered; callers that need those must also lock the seats they hold.
func (r *repository) LockAllActive(ctx context.Context) (int64, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&Booking{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("status = ?", StatusActive).
		Order("created_at ASC, id ASC").
		Pluck("id", &ids).Error
	return int64(len(ids)), dberr.Classify("lock all active bookings", err)
}

func (r *repository) LinkedSeatIDs(ctx context.Context, bookingIDs []uuid.UUID) ([]uint, error) {
	if len(bookingIDs) == 0 {
		return nil, nil
	}
	var seatIDs []uint
	err := r.db.WithContext(ctx).
		Model(&BookingSeat{}).
		Where("booking_id IN ?", bookingIDs).
		Order("seat_id ASC").
		Pluck("seat_id", &seatIDs).Error
	return seatIDs, dberr.Classify("list linked seats", err)
}

func (r *repository) Cancel(ctx context.Context, bookingIDs []uuid.UUID) (int64, error) {
	if len(bookingIDs) == 0 {
		return 0, nil
	}
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("id IN ? AND status = ?", bookingIDs, StatusActive).
		Updates(map[string]interface{}{
			"status":       StatusCancelled,
			"cancelled_at": now,
		})
	return result.RowsAffected, dberr.Classify("cancel bookings", result.Error)
}

func (r *repository) CancelAllActive(ctx context.Context) (int64, error) {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("status = ?", StatusActive).
		Updates(map[string]interface{}{
			"status":       StatusCancelled,
			"cancelled_at": now,
		})
	return result.RowsAffected, dberr.Classify("cancel all bookings", result.Error)
}

// READS

// CountActiveSeats sums the seats linked to the user's active bookings
func (r *repository) CountActiveSeats(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&BookingSeat{}).
		Joins("JOIN bookings ON bookings.id = booking_seats.booking_id").
		Where("bookings.user_id = ? AND bookings.status = ?", userID, StatusActive).
		Count(&count).Error
	return count, dberr.Classify("count active seats", err)
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]Booking, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if activeOnly {
		query = query.Where("status = ?", StatusActive)
	}

	var bookings []Booking
	err := query.
		Preload("Seats", func(db *gorm.DB) *gorm.DB {
			return db.Order("seat_id ASC")
		}).
		Preload("Seats.Seat").
		Order("created_at ASC, id ASC").
		Find(&bookings).Error
	return bookings, dberr.Classify("list user bookings", err)
}

// ListActiveWithUsers returns every active booking with its owner and seats
func (r *repository) ListActiveWithUsers(ctx context.Context) ([]Booking, error) {
	var bookings []Booking
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusActive).
		Preload("User").
		Preload("Seats", func(db *gorm.DB) *gorm.DB {
			return db.Order("seat_id ASC")
		}).
		Preload("Seats.Seat").
		Order("user_id ASC, created_at ASC, id ASC").
		Find(&bookings).Error
	return bookings, dberr.Classify("list active bookings", err)
}
