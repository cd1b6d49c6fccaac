package scoring

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	formPositionStep    = 15.0
	formConsistencyMax  = 3
	formConsistencyMin  = 2
	formConsistencyStep = 5.0
)

// scoreForm computes a recency-weighted average of recent finishing
// positions: a win scores 100 and each place back costs 15 points. Runners
// that kept finishing in the first three get a small consistency bonus.
// Non-completions carry no position and contribute nothing.
func (e *Engine) scoreForm(rc *raceContext, idx int) (*float64, string) {
	lines := rc.form[idx]
	if len(lines) == 0 {
		return nil, "No recent form data"
	}

	totalWeighted := 0.0
	totalWeight := 0.0
	positions := make([]string, 0, len(lines))
	allPlaced := true
	count := 0

	for i, line := range lines {
		if line.Position == nil {
			continue
		}
		pos := *line.Position
		posScore := 100.0 - float64(pos-1)*formPositionStep
		if posScore < 0 {
			posScore = 0
		}
		w := recencyWeight(i)
		totalWeighted += posScore * w
		totalWeight += w
		positions = append(positions, strconv.Itoa(pos))
		if pos > formConsistencyMax {
			allPlaced = false
		}
		count++
	}

	if count == 0 {
		return nil, "Form data present but no parseable finishing positions"
	}

	score := totalWeighted / totalWeight
	if allPlaced && count >= formConsistencyMin {
		score = clamp(score+formConsistencyStep, 0, 100)
	}

	reason := fmt.Sprintf("Recent positions: %s (recency-weighted avg)", strings.Join(positions, "/"))
	return scoreOf(score), reason
}
