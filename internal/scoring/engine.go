// Package scoring implements the explainable race scoring engine. Each
// runner gets a 0-100 total assembled from eight weighted components; any
// component without data returns no score and its weight is redistributed
// across the rest, so missing inputs never silently become numbers.
package scoring

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/race-ranker/internal/config"
	"github.com/yourusername/race-ranker/internal/models"
)

// Engine scores races. It is stateless across calls: all per-race state
// lives in a context built at the start of ScoreRace, so scoring the same
// record twice yields identical results and races never share caches.
type Engine struct {
	cfg      config.ScoringConfig
	registry []component
	logger   *logrus.Logger
}

// NewEngine creates a scoring engine. The configured component weights must
// form a complete weight mass; anything else is a configuration error.
func NewEngine(cfg config.ScoringConfig, logger *logrus.Logger) (*Engine, error) {
	if !cfg.Weights.WeightsSumToOne() {
		return nil, fmt.Errorf("scoring weights must sum to 1.0, got %.4f", cfg.Weights.Sum())
	}

	e := &Engine{cfg: cfg, logger: logger}
	e.registry = e.buildRegistry()
	return e, nil
}

// ScoreRace scores every runner in the race, ranks them by descending total
// score (stable, so ties keep their input order), derives the top three
// picks and classifies confidence in the ranking. The input record is not
// mutated. A race with no runners or an unnamed runner is rejected outright:
// ranking anonymous or absent competitors is meaningless.
func (e *Engine) ScoreRace(race *models.RaceData) (*models.RaceResult, error) {
	if err := validateRace(race); err != nil {
		return nil, err
	}

	rc := newRaceContext(race)

	scored := make([]*models.ScoredRunner, len(race.Runners))
	order := make([]int, len(race.Runners))
	for i, runner := range race.Runners {
		scored[i] = &models.ScoredRunner{
			Runner:  *runner,
			Scoring: e.scoreRunner(rc, i),
		}
		order[i] = i
	}

	// Stable sort keeps the original card order for tied totals.
	sort.SliceStable(order, func(a, b int) bool {
		return scored[order[a]].Scoring.TotalScore > scored[order[b]].Scoring.TotalScore
	})

	sorted := make([]*models.ScoredRunner, len(order))
	sortedFair := make([]*float64, len(order))
	for rank, idx := range order {
		sorted[rank] = scored[idx]
		sorted[rank].Rank = rank + 1
		if p, ok := rc.fairProbs[idx]; ok {
			prob := p
			sortedFair[rank] = &prob
		}
	}

	raceID := race.RaceID
	if raceID == "" {
		raceID = models.MakeRaceID(&race.Meta)
	}

	result := &models.RaceResult{
		RaceID:     raceID,
		Meta:       race.Meta,
		Runners:    sorted,
		Picks:      buildPicks(sorted),
		Confidence: e.computeConfidence(sorted, sortedFair),
	}

	if e.logger != nil {
		e.logger.WithFields(logrus.Fields{
			"race_id":    raceID,
			"runners":    len(sorted),
			"confidence": result.Confidence.Band,
		}).Debug("Race scored")
	}
	return result, nil
}

// validateRace enforces the structural contract on the input record.
func validateRace(race *models.RaceData) error {
	if race == nil || len(race.Runners) == 0 {
		return models.ErrNoRunners
	}
	for i, runner := range race.Runners {
		if runner == nil || runner.Name == "" {
			return fmt.Errorf("runner %d: %w", i+1, models.ErrRunnerNameMissing)
		}
	}
	return nil
}

// buildPicks extracts the top three runners from the sorted list.
func buildPicks(sorted []*models.ScoredRunner) models.Picks {
	pick := func(i int) *models.Pick {
		if i >= len(sorted) {
			return nil
		}
		return &models.Pick{
			RunnerName: sorted[i].Name,
			Rank:       sorted[i].Rank,
			Score:      sorted[i].Scoring.TotalScore,
		}
	}
	return models.Picks{
		TopPick: pick(0),
		Backup1: pick(1),
		Backup2: pick(2),
	}
}
