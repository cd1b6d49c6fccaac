package scoring

import (
	"fmt"
	"strings"
)

const connectionsNeutralScore = 50.0

// scoreConnections scores the trainer/jockey signal. With a trainer
// run-to-form percentage the score follows the configured linear scale;
// with names only it stays neutral.
func (e *Engine) scoreConnections(rc *raceContext, idx int) (*float64, string) {
	runner := rc.runners[idx]
	if runner.Jockey == nil && runner.Trainer == nil {
		return nil, "No jockey/trainer data"
	}

	if runner.TrainerRTF != nil {
		cc := e.cfg.Connections
		score := clamp(cc.RTFIntercept+cc.RTFSlope*(*runner.TrainerRTF), cc.ScoreMin, cc.ScoreMax)
		return scoreOf(score), fmt.Sprintf("Trainer RTF %.0f%%", *runner.TrainerRTF)
	}

	var parts []string
	if runner.Jockey != nil {
		parts = append(parts, "J: "+*runner.Jockey)
	}
	if runner.Trainer != nil {
		parts = append(parts, "T: "+*runner.Trainer)
	}
	reason := fmt.Sprintf("Connections: %s (no form stats; neutral score)", strings.Join(parts, ", "))
	return scoreOf(connectionsNeutralScore), reason
}
