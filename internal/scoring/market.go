package scoring

import "fmt"

// scoreMarket converts the runner's share of the de-margined market into a
// 0-100 score. The fair-probability map is computed once per race in the
// context, so every runner's market score is consistent with the same field.
func (e *Engine) scoreMarket(rc *raceContext, idx int) (*float64, string) {
	runner := rc.runners[idx]
	if !runner.HasValidOdds() {
		return nil, "No odds available"
	}

	fair, ok := rc.fairProbs[idx]
	if !ok {
		return nil, "No odds available"
	}

	reason := fmt.Sprintf("Odds %.2f (fair win probability %.1f%% after removing overround)",
		*runner.OddsDecimal, fair*100)
	return scoreOf(fair * 100), reason
}
