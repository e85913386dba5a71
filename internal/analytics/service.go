package analytics

import (
	"context"
	"fmt"
	"time"

	"seatbook/internal/shared/constants"
	"seatbook/pkg/cache"
)

const dailyWindowDays = 7

// Service defines the analytics service interface
type Service interface {
	GetDashboard(ctx context.Context) (*Dashboard, error)
	GetRowOccupancy(ctx context.Context) ([]RowOccupancy, error)
}

// service implements the Service interface
type service struct {
	repo         Repository
	cacheService cache.Service
}

// NewService creates a new analytics service instance. A nil cache reads
// straight from the repository.
func NewService(repo Repository, cacheService cache.Service) Service {
	if cacheService == nil {
		cacheService = cache.NewService(nil)
	}
	return &service{repo: repo, cacheService: cacheService}
}

func (s *service) GetDashboard(ctx context.Context) (*Dashboard, error) {
	var dashboard Dashboard
	err := s.cacheService.GetOrSet(ctx, constants.CACHE_KEY_ANALYTICS_DASHBOARD, constants.TTL_ANALYTICS_DASHBOARD,
		func() (interface{}, error) {
			return s.buildDashboard(ctx)
		}, &dashboard)
	if err != nil {
		return nil, fmt.Errorf("failed to get dashboard analytics: %w", err)
	}
	return &dashboard, nil
}

func (s *service) buildDashboard(ctx context.Context) (*Dashboard, error) {
	rows, err := s.repo.GetRowOccupancy(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get row occupancy: %w", err)
	}

	overview, err := s.repo.GetBookingOverview(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking overview: %w", err)
	}

	now := time.Now().UTC()
	daily, err := s.repo.GetDailyBookingStats(ctx, now.AddDate(0, 0, -(dailyWindowDays - 1)))
	if err != nil {
		return nil, fmt.Errorf("failed to get daily booking stats: %w", err)
	}

	dashboard := &Dashboard{
		Rows:        rows,
		Bookings:    *overview,
		Daily:       daily,
		GeneratedAt: now,
	}
	var booked, blocked int64
	for _, row := range rows {
		dashboard.TotalSeats += row.Total
		booked += row.Booked
		blocked += row.Blocked
	}
	dashboard.OccupancyRate = occupancy(booked, dashboard.TotalSeats, blocked)
	return dashboard, nil
}

// GetRowOccupancy is always read live
func (s *service) GetRowOccupancy(ctx context.Context) ([]RowOccupancy, error) {
	return s.repo.GetRowOccupancy(ctx)
}
