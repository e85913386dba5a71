package bookings

import (
	"context"
	"errors"
	"time"

	"seatbook/internal/allocation"
	"seatbook/internal/notifications"
	"seatbook/internal/seats"
	"seatbook/internal/shared/dberr"
	"seatbook/internal/users"
	"seatbook/pkg/logger"
	"seatbook/pkg/metrics"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AvailabilityCache is told when committed writes change seat availability
type AvailabilityCache interface {
	InvalidateAvailability(ctx context.Context)
}

// Service is the booking coordinator plus the read-only booking views
type Service interface {
	Book(ctx context.Context, userID uuid.UUID, count int) (*CreateBookingResponse, error)

	ListUserBookings(ctx context.Context, userID uuid.UUID) ([]BookingResponse, error)
	MyBookings(ctx context.Context, userID uuid.UUID) (*MyBookingsResponse, error)
	UserBookingSummaries(ctx context.Context) ([]UserBookingsResponse, error)
}

// Options tunes the retry loop around the booking transaction
type Options struct {
	MaxAttempts  int
	RetryBackoff time.Duration
}

// Deps groups the collaborators of the booking service
type Deps struct {
	DB           *gorm.DB
	Bookings     Repository
	Seats        seats.Repository
	Users        users.Repository
	Strategy     allocation.Strategy
	Availability AvailabilityCache
	Publisher    notifications.Publisher
	Metrics      *metrics.Metrics
	Logger       *logger.Logger
}

type service struct {
	Deps
	opts Options
}

// NewService creates a new booking service
func NewService(deps Deps, opts Options) Service {
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}
	if deps.Strategy == nil {
		deps.Strategy = allocation.RowFirst{}
	}
	if deps.Publisher == nil {
		deps.Publisher = notifications.NoopPublisher{}
	}
	if deps.Logger == nil {
		deps.Logger = logger.GetDefault()
	}
	return &service{Deps: deps, opts: opts}
}

// Book reserves count seats for userID. Validation, the capacity check, seat
// selection and all writes happen in one transaction; a transaction that
// loses a race is re-run from a fresh snapshot up to MaxAttempts times.
func (s *service) Book(ctx context.Context, userID uuid.UUID, count int) (*CreateBookingResponse, error) {
	start := time.Now()

	if count < 1 || count > MaxSeatsPerUser {
		s.Metrics.ObserveBooking(metrics.OutcomeInvalid, time.Since(start))
		return nil, ErrInvalidRequest
	}

	var (
		result  *CreateBookingResponse
		err     error
		attempt int
	)
	for attempt = 1; attempt <= s.opts.MaxAttempts; attempt++ {
		result, err = s.bookOnce(ctx, userID, count)
		if !errors.Is(err, dberr.ErrConflict) {
			break
		}

		s.Logger.LogBookingConflict(ctx, userID.String(), attempt, err)
		if attempt == s.opts.MaxAttempts {
			break
		}
		s.Metrics.IncConflictRetry()
		if waitErr := sleepCtx(ctx, s.opts.RetryBackoff*time.Duration(attempt)); waitErr != nil {
			err = waitErr
			break
		}
	}

	s.Metrics.ObserveBooking(outcome(err), time.Since(start))
	if err != nil {
		return nil, err
	}

	s.Logger.LogBookingCreated(ctx, result.BookingID, userID.String(), result.TotalSeatsBooked, attempt)
	s.afterCommit(ctx, userID, result)
	return result, nil
}

func (s *service) bookOnce(ctx context.Context, userID uuid.UUID, count int) (*CreateBookingResponse, error) {
	var result *CreateBookingResponse

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		userRepo := s.Users.WithTx(tx)
		ledger := s.Bookings.WithTx(tx)
		seatRepo := s.Seats.WithTx(tx)

		// Serialize the capacity check against other bookings by this user
		if err := userRepo.EnsureExists(ctx, userID); err != nil {
			return err
		}
		if err := userRepo.LockForUpdate(ctx, userID); err != nil {
			return dberr.Classify("lock user", err)
		}

		current, err := ledger.CountActiveSeats(ctx, userID)
		if err != nil {
			return err
		}
		if int(current)+count > MaxSeatsPerUser {
			return &CapacityError{
				CurrentlyBooked:  int(current),
				RemainingAllowed: MaxSeatsPerUser - int(current),
				Requested:        count,
			}
		}

		available, err := seatRepo.LockAvailable(ctx)
		if err != nil {
			return err
		}
		snapshot := make([]allocation.Candidate, len(available))
		for i := range available {
			snapshot[i] = available[i].Candidate()
		}

		selected, err := s.Strategy.Select(count, snapshot)
		if err != nil {
			return err
		}

		seatIDs := make([]uint, len(selected))
		for i, c := range selected {
			seatIDs[i] = c.SeatID
		}
		if err := seatRepo.MarkBooked(ctx, seatIDs); err != nil {
			return err
		}

		booking := &Booking{UserID: userID, Status: StatusActive}
		if err := ledger.Create(ctx, booking); err != nil {
			return err
		}

		links := make([]BookingSeat, len(seatIDs))
		for i, id := range seatIDs {
			links[i] = BookingSeat{BookingID: booking.ID, SeatID: id}
		}
		if err := ledger.CreateLinks(ctx, links); err != nil {
			return err
		}

		result = &CreateBookingResponse{
			BookingID:        booking.ID.String(),
			Seats:            make([]BookedSeat, len(selected)),
			TotalSeatsBooked: len(selected),
		}
		for i, c := range selected {
			result.Seats[i] = BookedSeat{SeatID: c.SeatID, Row: c.Row, SeatNumber: c.SeatNumber}
		}
		return nil
	})
	if err != nil {
		return nil, classifyTxError(err)
	}
	return result, nil
}

// classifyTxError leaves domain and already classified errors untouched and
// classifies what is left, which can only come from begin or commit.
func classifyTxError(err error) error {
	switch {
	case errors.Is(err, ErrCapacityExceeded),
		errors.Is(err, allocation.ErrInsufficientSeats),
		errors.Is(err, dberr.ErrConflict),
		errors.Is(err, dberr.ErrStorage):
		return err
	}
	return dberr.Classify("booking transaction", err)
}

func (s *service) afterCommit(ctx context.Context, userID uuid.UUID, result *CreateBookingResponse) {
	if s.Availability != nil {
		s.Availability.InvalidateAvailability(ctx)
	}

	refs := make([]notifications.SeatRef, len(result.Seats))
	for i, seat := range result.Seats {
		refs[i] = notifications.SeatRef{SeatID: seat.SeatID, Row: seat.Row, SeatNumber: seat.SeatNumber}
	}
	event := notifications.Event{
		Type:       notifications.EventBookingCreated,
		UserID:     userID.String(),
		BookingIDs: []string{result.BookingID},
		Seats:      refs,
	}
	if err := s.Publisher.Publish(ctx, event); err != nil {
		s.Logger.ErrorWithContext(ctx, "Failed to publish booking event", err, map[string]interface{}{
			"booking_id": result.BookingID,
		})
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, ErrCapacityExceeded):
		return metrics.OutcomeCapacityExceeded
	case errors.Is(err, allocation.ErrInsufficientSeats):
		return metrics.OutcomeInsufficientSeats
	case errors.Is(err, dberr.ErrConflict):
		return metrics.OutcomeConflict
	default:
		return metrics.OutcomeError
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// READS

func (s *service) ListUserBookings(ctx context.Context, userID uuid.UUID) ([]BookingResponse, error) {
	bookings, err := s.Bookings.ListByUser(ctx, userID, false)
	if err != nil {
		return nil, err
	}

	out := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, bookings[i].ToResponse())
	}
	return out, nil
}

func (s *service) MyBookings(ctx context.Context, userID uuid.UUID) (*MyBookingsResponse, error) {
	bookings, err := s.Bookings.ListByUser(ctx, userID, true)
	if err != nil {
		return nil, err
	}

	resp := &MyBookingsResponse{Seats: []MyBookedSeat{}}
	for _, b := range bookings {
		for _, link := range b.Seats {
			if link.Seat == nil {
				continue
			}
			resp.Seats = append(resp.Seats, MyBookedSeat{
				BookingID: b.ID.String(),
				SeatID:    link.SeatID,
				Position:  link.Seat.Position(),
			})
		}
	}
	resp.TotalBookedSeats = len(resp.Seats)
	resp.RemainingAllowed = MaxSeatsPerUser - resp.TotalBookedSeats
	return resp, nil
}

// UserBookingSummaries lists every user holding at least one active booking
func (s *service) UserBookingSummaries(ctx context.Context) ([]UserBookingsResponse, error) {
	bookings, err := s.Bookings.ListActiveWithUsers(ctx)
	if err != nil {
		return nil, err
	}

	out := []UserBookingsResponse{}
	index := make(map[uuid.UUID]int)
	for _, b := range bookings {
		i, ok := index[b.UserID]
		if !ok {
			entry := UserBookingsResponse{UserID: b.UserID.String(), Bookings: []SummaryBooking{}}
			if b.User != nil {
				entry.Name = b.User.Name
				entry.Email = b.User.Email
				entry.PhoneNumber = b.User.PhoneNumber
			}
			out = append(out, entry)
			i = len(out) - 1
			index[b.UserID] = i
		}

		summary := SummaryBooking{BookingID: b.ID.String(), Seats: []SummarySeat{}}
		for _, link := range b.Seats {
			if link.Seat == nil {
				continue
			}
			summary.Seats = append(summary.Seats, SummarySeat{SeatID: link.SeatID, Position: link.Seat.Position()})
		}
		out[i].Bookings = append(out[i].Bookings, summary)
		out[i].TotalBookedSeats += len(summary.Seats)
	}
	return out, nil
}

