// Package service provides the race scoring pipeline around the engine:
// caching, metrics, optional persistence and display payload shaping.
package service

import (
	"context"
	"fmt"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/race-ranker/internal/logger"
	"github.com/yourusername/race-ranker/internal/metrics"
	"github.com/yourusername/race-ranker/internal/models"
	"github.com/yourusername/race-ranker/internal/scoring"
)

// ResultStore persists scored race results. Implementations live in the
// repository package; the service only needs this one method.
type ResultStore interface {
	SaveResult(ctx context.Context, result *models.RaceResult) error
}

// RaceScorerService scores canonical race records and caches the results.
type RaceScorerService struct {
	engine *scoring.Engine
	cache  *cache.Cache
	store  ResultStore
	logger *logrus.Logger
}

// NewRaceScorerService creates a new race scorer service. The store may be
// nil when persistence is disabled.
func NewRaceScorerService(engine *scoring.Engine, cacheTTL time.Duration, store ResultStore, logger *logrus.Logger) *RaceScorerService {
	return &RaceScorerService{
		engine: engine,
		cache:  cache.New(cacheTTL, cacheTTL*2),
		store:  store,
		logger: logger,
	}
}

// ScoreRace scores a race, serving a cached result when the same race was
// scored recently. The engine is deterministic so a cache hit is exact.
func (s *RaceScorerService) ScoreRace(ctx context.Context, race *models.RaceData) (*models.RaceResult, error) {
	raceID := race.RaceID
	if raceID == "" {
		raceID = models.MakeRaceID(&race.Meta)
	}

	if cached, found := s.cache.Get(raceID); found {
		if result, ok := cached.(*models.RaceResult); ok {
			metrics.ResultCacheHitsTotal.Inc()
			logger.WithRace(s.logger, raceID).Debug("Serving scored race from cache")
			return result, nil
		}
	}

	start := time.Now()
	result, err := s.engine.ScoreRace(race)
	if err != nil {
		metrics.ScoringErrorsTotal.Inc()
		return nil, fmt.Errorf("failed to score race %s: %w", raceID, err)
	}
	metrics.RaceScoringDuration.Observe(time.Since(start).Seconds())
	s.recordScoringMetrics(result)

	s.cache.Set(raceID, result, cache.DefaultExpiration)

	if s.store != nil {
		if err := s.store.SaveResult(ctx, result); err != nil {
			// Persistence is best-effort: the caller still gets the result.
			logger.WithRace(s.logger, raceID).WithError(err).Warn("Failed to persist scored race")
		}
	}

	s.logger.WithFields(logrus.Fields{
		"race_id":    result.RaceID,
		"runners":    len(result.Runners),
		"confidence": result.Confidence.Band,
		"margin":     result.Confidence.Margin,
	}).Info("Race scored")

	return result, nil
}

func (s *RaceScorerService) recordScoringMetrics(result *models.RaceResult) {
	metrics.RecordRaceScored(len(result.Runners))
	metrics.RecordConfidenceBand(result.Confidence.Band)

	for _, runner := range result.Runners {
		for name, comp := range runner.Scoring.Components {
			metrics.RecordComponent(name, comp.Score != nil)
		}
	}
	if len(result.Runners) > 0 {
		metrics.LastRaceAvailableWeight.Set(result.Runners[0].Scoring.AvailableWeight)
	}
}
