package cancellation

import (
	"context"
	"errors"

	"seatbook/internal/bookings"
	"seatbook/internal/notifications"
	"seatbook/internal/seats"
	"seatbook/internal/shared/dberr"
	"seatbook/internal/users"
	"seatbook/pkg/logger"
	"seatbook/pkg/metrics"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service reverses bookings: one user's, or everyone's
type Service interface {
	CancelAll(ctx context.Context, userID uuid.UUID) (*CancelAllResponse, error)
	ResetAll(ctx context.Context, requesterIsAdmin bool) (*ResetResponse, error)
}

// Deps groups the collaborators of the cancellation service
type Deps struct {
	DB           *gorm.DB
	Bookings     bookings.Repository
	Seats        seats.Repository
	Users        users.Repository
	Availability bookings.AvailabilityCache
	Publisher    notifications.Publisher
	Metrics      *metrics.Metrics
	Logger       *logger.Logger
}

type service struct {
	Deps
}

// NewService creates a new cancellation service
func NewService(deps Deps) Service {
	if deps.Publisher == nil {
		deps.Publisher = notifications.NoopPublisher{}
	}
	if deps.Logger == nil {
		deps.Logger = logger.GetDefault()
	}
	return &service{Deps: deps}
}

// CancelAll cancels every active booking of userID and frees their seats in
// one transaction. Locks are taken in the same order as a booking: the user
// row, then bookings, then seats.
func (s *service) CancelAll(ctx context.Context, userID uuid.UUID) (*CancelAllResponse, error) {
	var (
		result     CancelAllResponse
		bookingIDs []uuid.UUID
	)

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ledger := s.Bookings.WithTx(tx)
		seatRepo := s.Seats.WithTx(tx)

		if err := s.Users.WithTx(tx).LockForUpdate(ctx, userID); err != nil {
			if errors.Is(err, users.ErrUserNotFound) {
				return ErrNoActiveBookings
			}
			return err
		}

		active, err := ledger.LockActiveByUser(ctx, userID)
		if err != nil {
			return err
		}
		if len(active) == 0 {
			return ErrNoActiveBookings
		}

		bookingIDs = make([]uuid.UUID, len(active))
		for i, b := range active {
			bookingIDs[i] = b.ID
		}

		seatIDs, err := ledger.LinkedSeatIDs(ctx, bookingIDs)
		if err != nil {
			return err
		}
		released, err := seatRepo.Release(ctx, seatIDs)
		if err != nil {
			return err
		}
		if released != int64(len(seatIDs)) {
			return dberr.Conflict("release seats", int64(len(seatIDs)), released)
		}

		cancelled, err := ledger.Cancel(ctx, bookingIDs)
		if err != nil {
			return err
		}

		result = CancelAllResponse{CancelledBookings: cancelled, SeatsReleased: released}
		return nil
	})
	if err != nil {
		return nil, classifyTxError(err)
	}

	s.Logger.LogBookingsCancelled(ctx, userID.String(), result.CancelledBookings, result.SeatsReleased)
	s.Metrics.AddCancellations(metrics.KindCancelAll, result.CancelledBookings)

	ids := make([]string, len(bookingIDs))
	for i, id := range bookingIDs {
		ids[i] = id.String()
	}
	s.afterCommit(ctx, notifications.Event{
		Type:              notifications.EventBookingsCancelled,
		UserID:            userID.String(),
		BookingIDs:        ids,
		CancelledBookings: result.CancelledBookings,
		SeatsReleased:     result.SeatsReleased,
	})
	return &result, nil
}

// ResetAll cancels every active booking and returns every seat to available.
//
// Locks come first, in the cancel-all order: active bookings, then every
// seat. Locking the seats waits out any booking still in flight, and the
// writes that follow run on fresh snapshots that include it, so no booking
// can stay active over a released seat.
func (s *service) ResetAll(ctx context.Context, requesterIsAdmin bool) (*ResetResponse, error) {
	if !requesterIsAdmin {
		return nil, ErrNotAuthorized
	}

	var result ResetResponse
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ledger := s.Bookings.WithTx(tx)
		seatRepo := s.Seats.WithTx(tx)

		if _, err := ledger.LockAllActive(ctx); err != nil {
			return err
		}
		if _, err := seatRepo.LockAll(ctx); err != nil {
			return err
		}

		cancelled, err := ledger.CancelAllActive(ctx)
		if err != nil {
			return err
		}
		released, err := seatRepo.ReleaseAll(ctx)
		if err != nil {
			return err
		}
		result = ResetResponse{CancelledBookings: cancelled, SeatsReleased: released}
		return nil
	})
	if err != nil {
		return nil, classifyTxError(err)
	}

	s.Logger.LogSeatsReset(ctx, result.CancelledBookings, result.SeatsReleased)
	s.Metrics.AddCancellations(metrics.KindReset, result.CancelledBookings)
	s.afterCommit(ctx, notifications.Event{
		Type:              notifications.EventSeatsReset,
		CancelledBookings: result.CancelledBookings,
		SeatsReleased:     result.SeatsReleased,
	})
	return &result, nil
}

func (s *service) afterCommit(ctx context.Context, event notifications.Event) {
	if s.Availability != nil {
		s.Availability.InvalidateAvailability(ctx)
	}
	if err := s.Publisher.Publish(ctx, event); err != nil {
		s.Logger.ErrorWithContext(ctx, "Failed to publish cancellation event", err, map[string]interface{}{
			"type": string(event.Type),
		})
	}
}

func classifyTxError(err error) error {
	switch {
	case errors.Is(err, ErrNoActiveBookings),
		errors.Is(err, dberr.ErrConflict),
		errors.Is(err, dberr.ErrStorage):
		return err
	}
	return dberr.Classify("cancellation transaction", err)
}
