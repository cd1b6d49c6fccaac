package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/yourusername/race-ranker/internal/models"
	"github.com/yourusername/race-ranker/internal/normalize"
)

const (
	suitabilityBase    = 50.0
	distanceBonusMax   = 20.0
	goingBonusMax      = 20.0
	courseBonusMax     = 10.0
	distanceDecayScale = 2.5 // furlongs for similarity to drop by 1/e
	goingDecayScale    = 1.0 // going ordinal steps
)

// scoreSuitability compares today's distance, going and course against the
// runner's recent runs. It starts neutral at 50 and adds up to +20 for
// distance similarity, +20 for going similarity and +10 for course form,
// weighting recent runs more heavily.
func (e *Engine) scoreSuitability(rc *raceContext, idx int) (*float64, string) {
	lines := rc.form[idx]
	if len(lines) == 0 {
		return nil, "No form to assess suitability"
	}
	if rc.todayDist == nil && rc.todayGoing == nil && rc.todayTrack == "" {
		return nil, "No race conditions to compare against"
	}

	score := suitabilityBase
	var reasons []string

	if rc.todayDist != nil {
		sim, n := weightedSimilarity(lines, func(i int) *float64 {
			if lines[i].Distance == nil {
				return nil
			}
			return normalize.DistanceFurlongs(*lines[i].Distance)
		}, *rc.todayDist, distanceDecayScale)
		if n > 0 {
			score += sim * distanceBonusMax
			reasons = append(reasons, fmt.Sprintf("distance similarity %.0f%% over %d runs", sim*100, n))
		}
	}

	if rc.todayGoing != nil {
		sim, n := weightedSimilarity(lines, func(i int) *float64 {
			if lines[i].Going == nil {
				return nil
			}
			return normalize.GoingOrdinal(*lines[i].Going)
		}, *rc.todayGoing, goingDecayScale)
		if n > 0 {
			score += sim * goingBonusMax
			reasons = append(reasons, fmt.Sprintf("going similarity %.0f%% over %d runs", sim*100, n))
		}
	}

	if rc.todayTrack != "" {
		matches := 0
		for _, line := range lines {
			if line.Track == nil {
				continue
			}
			runTrack := strings.ToLower(strings.TrimSpace(*line.Track))
			if runTrack != "" && strings.Contains(runTrack, rc.todayTrack) {
				matches++
			}
		}
		fraction := float64(matches) / float64(len(lines))
		score += fraction * courseBonusMax
		if matches > 0 {
			reasons = append(reasons, fmt.Sprintf("%d/%d runs at %s", matches, len(lines), rc.meta.Track))
		}
	}

	score = clamp(score, 0, 100)
	reason := "Limited suitability data"
	if len(reasons) > 0 {
		reason = strings.Join(reasons, "; ")
	}
	return scoreOf(score), reason
}

// weightedSimilarity computes the recency-weighted mean of exp(-|delta|/scale)
// over form lines where the compared value is available. The count of
// comparable lines is returned alongside.
func weightedSimilarity(lines []*models.FormLine, value func(i int) *float64, today, scale float64) (float64, int) {
	totalSim := 0.0
	totalWeight := 0.0
	n := 0
	for i := range lines {
		v := value(i)
		if v == nil {
			continue
		}
		w := recencyWeight(i)
		totalSim += math.Exp(-math.Abs(today-*v)/scale) * w
		totalWeight += w
		n++
	}
	if n == 0 {
		return 0, 0
	}
	return totalSim / totalWeight, n
}
