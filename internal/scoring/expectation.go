package scoring

import (
	"fmt"
	"strings"

	"github.com/yourusername/race-ranker/internal/models"
	"github.com/yourusername/race-ranker/internal/normalize"
)

const expectationBaseScore = 50.0

// scoreMarketExpectation reads how the market rated the runner last time
// out. A beaten favourite is a horse the market expected to win and may be
// overpriced today; the starting price itself contributes a confidence term.
func (e *Engine) scoreMarketExpectation(rc *raceContext, idx int) (*float64, string) {
	lines := rc.form[idx]
	if len(lines) == 0 {
		return nil, "No previous run to assess"
	}
	last := lines[0]

	sp := lastRunSP(last)
	if sp == nil {
		return nil, "No usable starting price for previous run"
	}

	fav, joint := e.lastRaceFavouriteStatus(rc, idx, last, *sp)
	won := last.Position != nil && *last.Position == 1

	me := e.cfg.MarketExpectation
	confidence := clamp(1.0 / *sp, 1.0/me.ConfidenceOddsMax, 1.0/me.ConfidenceOddsMin)

	score := expectationBaseScore + me.ConfidenceScale*confidence
	notes := []string{fmt.Sprintf("last SP %.2f", *sp)}

	if fav {
		score += me.LastFavBonus
		if won {
			notes = append(notes, "winning favourite last time")
		} else {
			score += me.BeatenFavBonus
			notes = append(notes, "beaten favourite last time")
		}
	}
	if joint {
		score -= me.JointFavPenalty
		notes = append(notes, "joint favourite")
	}

	return scoreOf(clamp(score, 0, 100)), strings.Join(notes, "; ")
}

// lastRunSP returns the previous run's starting price as decimal odds,
// parsing the textual form when the decimal field is absent.
func lastRunSP(line *models.FormLine) *float64 {
	if line.SPDecimal != nil && *line.SPDecimal > 1.0 {
		return line.SPDecimal
	}
	if line.SPString != nil {
		return normalize.Odds(*line.SPString)
	}
	return nil
}

const spEpsilon = 1e-9

// lastRaceFavouriteStatus resolves whether the runner started favourite (or
// joint favourite) in its previous race. Explicit flags from the parsing
// layer win; otherwise the status is derived by comparing starting prices
// across the cohort of today's runners whose previous run shares the same
// date and track. Ranking by raw SP matches ranking by de-margined
// probability, so no overround correction is needed here.
func (e *Engine) lastRaceFavouriteStatus(rc *raceContext, idx int, last *models.FormLine, sp float64) (bool, bool) {
	runner := rc.runners[idx]
	if runner.LastRaceFav != nil || runner.LastRaceJointFav != nil {
		return isTrue(runner.LastRaceFav), isTrue(runner.LastRaceJointFav)
	}

	if last.Date == nil || last.Track == nil {
		return false, false
	}

	cohortSize := 1
	minSP := sp
	atMin := 1
	for j := range rc.runners {
		if j == idx || len(rc.form[j]) == 0 {
			continue
		}
		other := rc.form[j][0]
		if other.Date == nil || other.Track == nil {
			continue
		}
		if *other.Date != *last.Date || !strings.EqualFold(*other.Track, *last.Track) {
			continue
		}
		otherSP := lastRunSP(other)
		if otherSP == nil {
			continue
		}
		cohortSize++
		switch {
		case *otherSP < minSP-spEpsilon:
			minSP = *otherSP
			atMin = 1
		case *otherSP <= minSP+spEpsilon:
			atMin++
		}
	}

	// A cohort of one gives no basis for favourite status.
	if cohortSize < 2 {
		return false, false
	}

	fav := sp <= minSP+spEpsilon
	joint := fav && atMin > 1
	return fav, joint
}
