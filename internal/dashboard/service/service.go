package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"cev_portal_backend/internal/dashboard/repository"
	"cev_portal_backend/internal/dashboard/transport"
	"cev_portal_backend/internal/events"
	"cev_portal_backend/platform/logger"
)

const (
	statsCacheKey = "cev:dashboard:stats"
	statsCacheTTL = 60 * time.Second

	dateLayout = "2006-01-02"
)

// Service assembles the dashboard summary, with an optional Redis
// read-through cache in front of the repository.
type Service struct {
	repo  repository.Reader
	cache *redis.Client // nil when caching is disabled
	log   *logger.Logger
}

// New creates a new dashboard service. Pass a nil cache to serve every
// request straight from the repository.
func New(repo repository.Reader, cache *redis.Client, log *logger.Logger) *Service {
	return &Service{repo: repo, cache: cache, log: log}
}

// GetStats returns the dashboard summary, served from cache when a fresh
// copy exists. Cache failures degrade to a repository read, never an error.
func (s *Service) GetStats(ctx context.Context) (transport.StatsResponse, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, statsCacheKey).Bytes()
		if err == nil {
			var stats transport.StatsResponse
			if err := json.Unmarshal(cached, &stats); err == nil {
				return stats, nil
			}
			s.log.Warn("dashboard cache entry corrupt, recomputing")
		} else if err != redis.Nil {
			s.log.Warn("dashboard cache read failed", "error", err)
		}
	}

	raw, err := s.repo.GetStats(ctx)
	if err != nil {
		return transport.StatsResponse{}, err
	}

	stats := toResponse(raw)

	if s.cache != nil {
		encoded, err := json.Marshal(stats)
		if err == nil {
			if err := s.cache.Set(ctx, statsCacheKey, encoded, statsCacheTTL).Err(); err != nil {
				s.log.Warn("dashboard cache write failed", "error", err)
			}
		}
	}

	return stats, nil
}

// RegisterHandlers subscribes the cache invalidation handler to every event
// that can move a dashboard number.
func (s *Service) RegisterHandlers(bus events.Bus) {
	invalidate := events.HandlerFunc(func(ctx context.Context, _ events.Event) error {
		return s.invalidateCache(ctx)
	})

	bus.Subscribe(events.ProjectChanged{}.EventName(), invalidate)
	bus.Subscribe(events.ClientChanged{}.EventName(), invalidate)
	bus.Subscribe(events.CertificationIssued{}.EventName(), invalidate)
	bus.Subscribe(events.CertificationRevoked{}.EventName(), invalidate)
}

func (s *Service) invalidateCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Del(ctx, statsCacheKey).Err(); err != nil {
		return fmt.Errorf("invalidate dashboard cache: %w", err)
	}
	return nil
}

func toResponse(raw repository.Stats) transport.StatsResponse {
	recent := make([]transport.RecentProjectEntry, len(raw.RecentProjects))
	for i, p := range raw.RecentProjects {
		status := "In progress"
		if p.CertifiedGrade != nil {
			status = fmt.Sprintf("Certified (%s)", *p.CertifiedGrade)
		}
		recent[i] = transport.RecentProjectEntry{
			ID:         p.ID,
			Name:       p.Name,
			ClientName: p.ClientName,
			TypeName:   p.TypeName,
			StartDate:  p.StartDate.Format(dateLayout),
			Status:     status,
		}
	}

	distribution := raw.GradeDistribution
	if distribution == nil {
		distribution = make(map[string]int)
	}

	return transport.StatsResponse{
		TotalProjects:     raw.TotalProjects,
		TotalClients:      raw.TotalClients,
		CertifiedCount:    raw.CertifiedCount,
		InProgressCount:   raw.TotalProjects - raw.CertifiedCount,
		GradeDistribution: distribution,
		RecentProjects:    recent,
	}
}
