package config

// Default returns a configuration populated with the tuned scoring defaults.
// The component weights and market expectation terms are tuned constants,
// exposed here rather than hardcoded in the engine.
func Default() *Config {
	return &Config{
		App: AppConfig{
			Name:        "race-ranker",
			Environment: "development",
			LogLevel:    "info",
		},
		Scoring: DefaultScoringConfig(),
		Output: OutputConfig{
			ScoredDir: "data/scored",
			WebDir:    "data/web",
		},
		Fetch: FetchConfig{
			TimeoutSeconds:   20,
			MaxRetries:       5,
			RetryWaitMinMs:   500,
			RetryWaitMaxMs:   10000,
			RequestsPerSec:   0.5,
			UserAgent:        "race-ranker/0.1",
			MinValidPageSize: 500,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Port:    9091,
			Path:    "/metrics",
		},
		Schedule: ScheduleConfig{
			Enabled: false,
			Cron:    "0 8 * * *",
		},
	}
}

// DefaultScoringConfig returns the tuned scoring engine parameters.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		Weights: WeightsConfig{
			Market:            0.30,
			Rating:            0.25,
			Form:              0.18,
			Suitability:       0.12,
			Freshness:         0.07,
			CDProfile:         0.04,
			Connections:       0.03,
			MarketExpectation: 0.01,
		},
		Connections: ConnectionsConfig{
			RTFIntercept: 20,
			RTFSlope:     2.3,
			ScoreMin:     15,
			ScoreMax:     95,
		},
		MarketExpectation: MarketExpectationConfig{
			LastFavBonus:      15,
			BeatenFavBonus:    20,
			JointFavPenalty:   5,
			ConfidenceScale:   25,
			ConfidenceOddsMin: 1.01,
			ConfidenceOddsMax: 100,
		},
		Confidence: ConfidenceConfig{
			HighGap:       0.08,
			MedGap:        0.04,
			MinComponents: 5,
			HighMargin:    8,
			MedMargin:     4,
		},
		ResultCacheTTL: 300,
	}
}
