package scoring

import "github.com/yourusername/race-ranker/internal/models"

// scoreRunner runs every component for one runner and aggregates the
// available scores. The base weight of any component without data is
// redistributed proportionally across the components that have data, so the
// effective weights always sum to 1.0. AvailableWeight reports the
// pre-redistribution share of configured weight mass that had data.
func (e *Engine) scoreRunner(rc *raceContext, idx int) models.RunnerScoring {
	type rawScore struct {
		score  *float64
		reason string
	}
	raw := make([]rawScore, len(e.registry))

	availableBase := 0.0
	for i, comp := range e.registry {
		score, reason := comp.score(rc, idx)
		raw[i] = rawScore{score: score, reason: reason}
		if score != nil {
			availableBase += comp.weight
		}
	}

	if availableBase == 0 {
		return models.RunnerScoring{
			TotalScore:      0,
			Components:      map[string]models.ComponentResult{},
			AvailableWeight: 0,
		}
	}

	components := make(map[string]models.ComponentResult, len(e.registry))
	totalScore := 0.0
	for i, comp := range e.registry {
		r := raw[i]
		if r.score == nil {
			components[comp.name] = models.ComponentResult{Reason: r.reason}
			continue
		}
		weight := comp.weight / availableBase
		weighted := *r.score * weight
		totalScore += weighted
		components[comp.name] = models.ComponentResult{
			Score:         r.score,
			Weight:        round4(weight),
			WeightedScore: round2(weighted),
			Reason:        r.reason,
		}
	}

	return models.RunnerScoring{
		TotalScore:      round1(totalScore),
		Components:      components,
		AvailableWeight: round2(availableBase),
	}
}

// componentCount returns how many components produced a score for a runner.
func componentCount(scoring *models.RunnerScoring) int {
	n := 0
	for _, c := range scoring.Components {
		if c.Score != nil {
			n++
		}
	}
	return n
}
