package seats

import (
	"context"
	"time"

	"seatbook/internal/shared/constants"
	"seatbook/pkg/cache"
	"seatbook/pkg/logger"
)

// Service serves the read-only seat views. Counts and the available list are
// cached; writers call InvalidateAvailability after they commit.
type Service interface {
	ListSeats(ctx context.Context, filter Filter) ([]SeatResponse, error)
	CountSeats(ctx context.Context) (*SeatCountResponse, error)
	ListAvailable(ctx context.Context) ([]AvailableSeatResponse, error)

	InvalidateAvailability(ctx context.Context)
}

type service struct {
	repo         Repository
	cacheService cache.Service
	ttl          time.Duration
	logger       *logger.Logger
}

// NewService wires the seat reads. A nil cacheService disables caching and a
// non-positive ttl falls back to the default for live seat counts.
func NewService(repo Repository, cacheService cache.Service, ttl time.Duration, log *logger.Logger) Service {
	if cacheService == nil {
		cacheService = cache.NewService(nil)
	}
	if ttl <= 0 {
		ttl = constants.TTL_SEATS_COUNT
	}
	if log == nil {
		log = logger.GetDefault()
	}
	return &service{
		repo:         repo,
		cacheService: cacheService,
		ttl:          ttl,
		logger:       log,
	}
}

func (s *service) ListSeats(ctx context.Context, filter Filter) ([]SeatResponse, error) {
	seats, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]SeatResponse, 0, len(seats))
	for i := range seats {
		out = append(out, seats[i].ToResponse())
	}
	return out, nil
}

func (s *service) CountSeats(ctx context.Context) (*SeatCountResponse, error) {
	var result SeatCountResponse
	err := s.cacheService.GetOrSet(ctx, constants.CACHE_KEY_SEATS_COUNT, s.ttl, func() (interface{}, error) {
		counts, err := s.repo.CountByStatus(ctx)
		if err != nil {
			return nil, err
		}
		return SeatCountResponse{
			Available: counts[StatusAvailable],
			Booked:    counts[StatusBooked],
			Blocked:   counts[StatusBlocked],
			Total:     counts[StatusAvailable] + counts[StatusBooked] + counts[StatusBlocked],
		}, nil
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *service) ListAvailable(ctx context.Context) ([]AvailableSeatResponse, error) {
	result := []AvailableSeatResponse{}
	err := s.cacheService.GetOrSet(ctx, constants.CACHE_KEY_SEATS_AVAILABLE, s.ttl, func() (interface{}, error) {
		seats, err := s.repo.ListAvailable(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]AvailableSeatResponse, 0, len(seats))
		for i := range seats {
			out = append(out, AvailableSeatResponse{SeatID: seats[i].ID, Position: seats[i].Position()})
		}
		return out, nil
	}, &result)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// InvalidateAvailability drops the cached seat views. Failures are logged
// only; the short TTL bounds how stale a missed invalidation can get.
//
// A reader that loaded before the commit can still write its value back
// after the first delete, so the delete is repeated once after
// CACHE_INVALIDATION_REPLAY.
func (s *service) InvalidateAvailability(ctx context.Context) {
	s.dropAvailability(ctx)
	time.AfterFunc(constants.CACHE_INVALIDATION_REPLAY, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		s.dropAvailability(ctx)
	})
}

func (s *service) dropAvailability(ctx context.Context) {
	if err := s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_SEATS_ALL); err != nil {
		s.logger.Warn("Failed to invalidate seat cache", "error", err)
	}
}
