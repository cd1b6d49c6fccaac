package scoring

import (
	"strings"

	"github.com/yourusername/race-ranker/internal/models"
	"github.com/yourusername/race-ranker/internal/normalize"
)

// raceContext is the shared, read-only context for scoring one race. It is
// built once per ScoreRace call: the fair-probability map and the
// leakage-filtered form lines are computed up front so every component sees
// the same inputs and nothing is memoized lazily mid-race.
type raceContext struct {
	meta    *models.RaceMeta
	runners []*models.Runner

	// form holds each runner's recent form with any line dated on the race
	// day removed. Scoring the race it describes from its own result would
	// leak the outcome into the inputs.
	form [][]*models.FormLine

	// fairProbs maps runner index to de-margined win probability. Runners
	// without valid odds have no entry.
	fairProbs map[int]float64

	todayDist  *float64
	todayGoing *float64
	todayTrack string
}

func newRaceContext(race *models.RaceData) *raceContext {
	rc := &raceContext{
		meta:       &race.Meta,
		runners:    race.Runners,
		form:       make([][]*models.FormLine, len(race.Runners)),
		todayTrack: strings.ToLower(strings.TrimSpace(race.Meta.Track)),
	}

	if race.Meta.Distance != nil {
		rc.todayDist = normalize.DistanceFurlongs(*race.Meta.Distance)
	}
	if race.Meta.Going != nil {
		rc.todayGoing = normalize.GoingOrdinal(*race.Meta.Going)
	}

	for i, runner := range race.Runners {
		rc.form[i] = filterFormLines(runner.RecentForm, race.Meta.Date)
	}

	rc.fairProbs = fairProbabilities(race.Runners)
	return rc
}

// filterFormLines drops form lines dated on the race day and caps the
// history at MaxRecentFormLines, most recent first.
func filterFormLines(lines []*models.FormLine, raceDate string) []*models.FormLine {
	filtered := make([]*models.FormLine, 0, len(lines))
	for _, line := range lines {
		if line == nil {
			continue
		}
		if line.Date != nil && *line.Date == raceDate {
			continue
		}
		filtered = append(filtered, line)
		if len(filtered) >= models.MaxRecentFormLines {
			break
		}
	}
	return filtered
}

// fairProbabilities removes the bookmaker overround: each runner's implied
// probability (1/odds) is divided by the field total so the fair
// probabilities sum to 1.0 across runners with valid odds.
func fairProbabilities(runners []*models.Runner) map[int]float64 {
	implied := make(map[int]float64, len(runners))
	sum := 0.0
	for i, runner := range runners {
		if !runner.HasValidOdds() {
			continue
		}
		p := 1.0 / *runner.OddsDecimal
		implied[i] = p
		sum += p
	}
	if sum <= 0 {
		return map[int]float64{}
	}

	fair := make(map[int]float64, len(implied))
	for i, p := range implied {
		fair[i] = p / sum
	}
	return fair
}

// recencyWeight decays older runs: the i-th most recent run (0-indexed)
// carries weight 1/(1+0.3i).
func recencyWeight(i int) float64 {
	return 1.0 / (1.0 + 0.3*float64(i))
}
