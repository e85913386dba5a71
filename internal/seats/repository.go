package seats

import (
	"context"

	"seatbook/internal/shared/dberr"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository is the seat store. Status mutations are only issued from the
// booking and cancellation transactions via WithTx.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	// Layout
	CreateSeats(ctx context.Context, seats []Seat) error

	// Reads
	List(ctx context.Context, filter Filter) ([]Seat, error)
	ListAvailable(ctx context.Context) ([]Seat, error)
	CountByStatus(ctx context.Context) (map[Status]int64, error)

	// Transactional writes
	LockAvailable(ctx context.Context) ([]Seat, error)
	LockAll(ctx context.Context) (int64, error)
	MarkBooked(ctx context.Context, seatIDs []uint) error
	Release(ctx context.Context, seatIDs []uint) (int64, error)
	ReleaseAll(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

// LAYOUT

func (r *repository) CreateSeats(ctx context.Context, seats []Seat) error {
	if len(seats) == 0 {
		return nil
	}
	return dberr.Classify("create seats", r.db.WithContext(ctx).CreateInBatches(&seats, 100).Error)
}

// READS

func (r *repository) List(ctx context.Context, filter Filter) ([]Seat, error) {
	query := r.db.WithContext(ctx).Model(&Seat{})
	if filter.AvailableOnly {
		query = query.Where("status = ?", StatusAvailable)
	}
	if filter.Row != nil {
		query = query.Where("row_number = ?", *filter.Row)
	}

	var seats []Seat
	err := query.Order("row_number ASC, seat_number ASC").Find(&seats).Error
	return seats, dberr.Classify("list seats", err)
}

func (r *repository) ListAvailable(ctx context.Context) ([]Seat, error) {
	return r.List(ctx, Filter{AvailableOnly: true})
}

func (r *repository) CountByStatus(ctx context.Context) (map[Status]int64, error) {
	var rows []struct {
		Status Status
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&Seat{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, dberr.Classify("count seats", err)
	}

	counts := map[Status]int64{
		StatusAvailable: 0,
		StatusBooked:    0,
		StatusBlocked:   0,
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// TRANSACTIONAL WRITES

// LockAvailable returns every available seat ordered by position and holds a
// row lock on each one until the surrounding transaction ends. The fixed
// ordering keeps concurrent lockers from deadlocking each other.
func (r *repository) LockAvailable(ctx context.Context) ([]Seat, error) {
	var seats []Seat
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("status = ?", StatusAvailable).
		Order("row_number ASC, seat_number ASC").
		Find(&seats).Error
	return seats, dberr.Classify("lock available seats", err)
}

// LockAll row-locks every seat in position order, waiting out any booking
// that already holds some of them.
func (r *repository) LockAll(ctx context.Context) (int64, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&Seat{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Order("row_number ASC, seat_number ASC").
		Pluck("id", &ids).Error
	return int64(len(ids)), dberr.Classify("lock all seats", err)
}

// MarkBooked flips the given seats to booked. The update is guarded on the
// seats still being available; touching fewer rows than requested means a
// concurrent transaction got there first.
func (r *repository) MarkBooked(ctx context.Context, seatIDs []uint) error {
	result := r.db.WithContext(ctx).
		Model(&Seat{}).
		Where("id IN ? AND status = ?", seatIDs, StatusAvailable).
		Updates(map[string]interface{}{
			"status":    StatusBooked,
			"is_booked": true,
		})
	if result.Error != nil {
		return dberr.Classify("mark seats booked", result.Error)
	}
	if result.RowsAffected != int64(len(seatIDs)) {
		return dberr.Conflict("mark seats booked", int64(len(seatIDs)), result.RowsAffected)
	}
	return nil
}

func (r *repository) Release(ctx context.Context, seatIDs []uint) (int64, error) {
	if len(seatIDs) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Model(&Seat{}).
		Where("id IN ? AND status = ?", seatIDs, StatusBooked).
		Updates(map[string]interface{}{
			"status":    StatusAvailable,
			"is_booked": false,
		})
	return result.RowsAffected, dberr.Classify("release seats", result.Error)
}

// ReleaseAll returns every seat to available, blocked seats included. The
// layout seeder is what blocks seats again.
func (r *repository) ReleaseAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&Seat{}).
		Where("status <> ?", StatusAvailable).
		Updates(map[string]interface{}{
			"status":    StatusAvailable,
			"is_booked": false,
		})
	return result.RowsAffected, dberr.Classify("release all seats", result.Error)
}
