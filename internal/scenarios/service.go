package scenarios

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/logic-api/tco-backend/internal/tco"
)

// Cache is the minimal key/value surface the service needs for caching
// aggregate stats. A nil Cache disables caching.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

const (
	statsCacheKey = "tco:scenarios:stats"
	statsCacheTTL = 5 * time.Minute
)

// Service composes the store, the formula engine and the optional stats
// cache. Every create and update recomputes all six result fields from the
// full current input set; stored results are never trusted from outside.
type Service struct {
	store  *Store
	cache  Cache
	logger *zap.Logger
}

func NewService(store *Store, cache Cache, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, cache: cache, logger: logger}
}

// CreateParams carries the validated fields of a create request.
type CreateParams struct {
	Name        string
	Description *string
	Tags        []string
	Input       tco.Input
}

func (s *Service) Create(ctx context.Context, p CreateParams) (*Scenario, error) {
	result, err := tco.Calculate(p.Input)
	if err != nil {
		return nil, err
	}

	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}

	created, err := s.store.Create(ctx, &Scenario{
		Name:        p.Name,
		Description: p.Description,
		Tags:        tags,
		Input:       p.Input,
		Result:      result,
	})
	if err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)
	return created, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Scenario, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, page, perPage int, search string) ([]Scenario, int, error) {
	return s.store.List(ctx, page, perPage, search)
}

// Patch is a partial update. Nil fields were absent from the request and
// leave the stored value untouched; a nil Tags slice means "tags not
// supplied", not "clear tags".
type Patch struct {
	Name                *string
	Description         *string
	Tags                []string
	InitialPrice        *float64
	UsefulLifeYears     *int
	ResidualValue       *float64
	AnnualMaintenance   *float64
	AnnualOperatingCost *float64
	DiscountRate        *float64
}

// Update merges the patch into the current row, recomputes every result
// field from the merged inputs and writes the whole row back.
func (s *Service) Update(ctx context.Context, id int64, p Patch) (*Scenario, error) {
	current, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Name != nil {
		current.Name = *p.Name
	}
	if p.Description != nil {
		current.Description = p.Description
	}
	if p.Tags != nil {
		current.Tags = p.Tags
	}
	if p.InitialPrice != nil {
		current.InitialPrice = *p.InitialPrice
	}
	if p.UsefulLifeYears != nil {
		current.UsefulLifeYears = *p.UsefulLifeYears
	}
	if p.ResidualValue != nil {
		current.ResidualValue = *p.ResidualValue
	}
	if p.AnnualMaintenance != nil {
		current.AnnualMaintenance = *p.AnnualMaintenance
	}
	if p.AnnualOperatingCost != nil {
		current.AnnualOperatingCost = *p.AnnualOperatingCost
	}
	if p.DiscountRate != nil {
		current.DiscountRate = *p.DiscountRate
	}

	result, err := tco.Calculate(current.Input)
	if err != nil {
		return nil, err
	}
	current.Result = result

	updated, err := s.store.Update(ctx, id, current)
	if err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.invalidateStats(ctx)
	}
	return deleted, nil
}

// Stats serves the aggregate from cache when possible and falls back to the
// store on a miss. Cache failures degrade to direct store reads.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	if s.cache != nil {
		if raw, ok := s.cache.Get(ctx, statsCacheKey); ok {
			var cached Stats
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
			s.logger.Warn("discarding malformed cached stats", zap.String("key", statsCacheKey))
		}
	}

	stats, err := s.store.Stats(ctx)
	if err != nil {
		return nil, err
	}
	stats.AvgMonthlyCost = tco.Round2(stats.AvgMonthlyCost)
	stats.MinMonthlyCost = tco.Round2(stats.MinMonthlyCost)
	stats.MaxMonthlyCost = tco.Round2(stats.MaxMonthlyCost)

	if s.cache != nil {
		if raw, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, statsCacheKey, string(raw), statsCacheTTL); err != nil {
				s.logger.Warn("failed to cache stats", zap.Error(err))
			}
		}
	}

	return stats, nil
}

func (s *Service) invalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, statsCacheKey); err != nil {
		s.logger.Warn("failed to invalidate stats cache", zap.Error(err))
	}
}
