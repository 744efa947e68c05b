package stats

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/meditrack/hms-api/internal/model"
	"github.com/meditrack/hms-api/internal/repository"
	apperrors "github.com/meditrack/hms-api/pkg/errors"
)

const (
	dashboardKey = "dashboard"
	cacheTTL     = 30 * time.Second
)

// Service serves the admin dashboard counters. Counts are cached briefly;
// the dashboard refreshes often and exact liveness does not matter there.
type Service interface {
	Dashboard(ctx context.Context) (*model.DashboardStats, error)
}

type service struct {
	repo  repository.StatsRepository
	cache *gocache.Cache
}

func NewService(repo repository.StatsRepository) Service {
	return &service{
		repo:  repo,
		cache: gocache.New(cacheTTL, 2*cacheTTL),
	}
}

func (s *service) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	if cached, ok := s.cache.Get(dashboardKey); ok {
		return cached.(*model.DashboardStats), nil
	}

	counts, err := s.repo.DashboardCounts(ctx)
	if err != nil {
		return nil, apperrors.Storage(fmt.Errorf("failed to load dashboard counts: %w", err))
	}
	s.cache.SetDefault(dashboardKey, counts)
	return counts, nil
}
