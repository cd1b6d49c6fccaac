package models

// ComponentResult holds one component's contribution to a runner's total.
// Score is nil when the component had no data; its weight is then zero and
// Reason explains what was missing.
type ComponentResult struct {
	Score         *float64 `json:"score"`
	Weight        float64  `json:"weight"`
	WeightedScore float64  `json:"weighted_score"`
	Reason        string   `json:"reason"`
}

// RunnerScoring aggregates the component results for one runner.
// AvailableWeight is the pre-redistribution share of configured weight mass
// that had data, reported for transparency.
type RunnerScoring struct {
	TotalScore      float64                    `json:"total_score"`
	Components      map[string]ComponentResult `json:"components"`
	AvailableWeight float64                    `json:"available_weight"`
}

// ScoredRunner is a runner plus its scoring breakdown and 1-based rank.
type ScoredRunner struct {
	Runner
	Scoring RunnerScoring `json:"scoring"`
	Rank    int           `json:"rank"`
}

// Pick identifies one of the top-ranked runners in a race.
type Pick struct {
	RunnerName string  `json:"runner_name"`
	Rank       int     `json:"rank"`
	Score      float64 `json:"score"`
}

// Picks holds the top three runners by total score. Entries are nil when
// the race has fewer runners.
type Picks struct {
	TopPick *Pick `json:"top_pick,omitempty"`
	Backup1 *Pick `json:"backup_1,omitempty"`
	Backup2 *Pick `json:"backup_2,omitempty"`
}

// Confidence band labels.
const (
	ConfidenceHigh = "HIGH"
	ConfidenceMed  = "MED"
	ConfidenceLow  = "LOW"
)

// Confidence summarizes how trustworthy the top-ranked pick is.
type Confidence struct {
	Band    string   `json:"band"`
	Margin  float64  `json:"margin"`
	Reasons []string `json:"reasons"`
}

// RaceResult is the engine's output: the race with runners ranked by
// descending total score, plus picks and a confidence assessment.
type RaceResult struct {
	RaceID     string          `json:"race_id"`
	Meta       RaceMeta        `json:"meta"`
	Runners    []*ScoredRunner `json:"runners"`
	Picks      Picks           `json:"picks"`
	Confidence Confidence      `json:"confidence"`
}
