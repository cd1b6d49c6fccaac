package scoring

import (
	"fmt"

	"github.com/yourusername/race-ranker/internal/models"
)

// computeConfidence classifies how trustworthy the top pick is. The
// preferred signal is the de-margined market probability gap between the
// top two runners; when no market data exists the raw score margin and
// component availability serve as a fallback. The reasons list is always
// populated so the band can be audited.
func (e *Engine) computeConfidence(sorted []*models.ScoredRunner, fairProbs []*float64) models.Confidence {
	if len(sorted) < 2 {
		return models.Confidence{
			Band:    models.ConfidenceLow,
			Margin:  0,
			Reasons: []string{"Fewer than 2 runners scored"},
		}
	}

	margin := round1(sorted[0].Scoring.TotalScore - sorted[1].Scoring.TotalScore)
	componentsPresent := componentCount(&sorted[0].Scoring)
	totalComponents := len(e.registry)
	cc := e.cfg.Confidence

	if fairProbs[0] != nil && fairProbs[1] != nil {
		gap := *fairProbs[0] - *fairProbs[1]
		reasons := []string{
			fmt.Sprintf("Market probability gap of %.1f%% between 1st and 2nd", gap*100),
			fmt.Sprintf("%d/%d scoring components available for top pick", componentsPresent, totalComponents),
		}

		var band string
		switch {
		case componentsPresent >= cc.MinComponents && gap >= cc.HighGap:
			band = models.ConfidenceHigh
		case gap >= cc.MedGap:
			band = models.ConfidenceMed
			if componentsPresent < cc.MinComponents {
				reasons = append(reasons, "Limited component coverage")
			}
		default:
			band = models.ConfidenceLow
			reasons = append(reasons, "Market rates the top two closely")
		}
		return models.Confidence{Band: band, Margin: margin, Reasons: reasons}
	}

	// No usable market data: fall back to the raw score margin.
	reasons := []string{
		"No usable market data; using score margin",
		fmt.Sprintf("Margin of %.1f pts between 1st and 2nd", margin),
		fmt.Sprintf("%d/%d scoring components available for top pick", componentsPresent, totalComponents),
	}

	var band string
	switch {
	case componentsPresent >= cc.MinComponents && margin >= cc.HighMargin:
		band = models.ConfidenceHigh
	case (margin >= cc.MedMargin && margin < cc.HighMargin) || componentsPresent < cc.MinComponents:
		band = models.ConfidenceMed
	default:
		band = models.ConfidenceLow
	}
	return models.Confidence{Band: band, Margin: margin, Reasons: reasons}
}
