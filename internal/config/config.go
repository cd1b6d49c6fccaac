// Package config provides configuration management for the race-ranker application.
package config

import (
	"fmt"
	"math"
)

// Config represents the complete application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app" validate:"required"`
	Scoring  ScoringConfig  `mapstructure:"scoring" validate:"required"`
	Output   OutputConfig   `mapstructure:"output"`
	Fetch    FetchConfig    `mapstructure:"fetch"`
	Database DatabaseConfig `mapstructure:"database"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Schedule ScheduleConfig `mapstructure:"schedule"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// ScoringConfig holds the tunable parameters of the scoring engine.
// The component weights must sum to 1.0; validation fails fatally otherwise.
type ScoringConfig struct {
	Weights           WeightsConfig           `mapstructure:"weights" validate:"required"`
	Connections       ConnectionsConfig       `mapstructure:"connections"`
	MarketExpectation MarketExpectationConfig `mapstructure:"market_expectation"`
	Confidence        ConfidenceConfig        `mapstructure:"confidence"`
	ResultCacheTTL    int                     `mapstructure:"result_cache_ttl_seconds" validate:"gte=0"`
}

// WeightsConfig holds the base weight of each scoring component.
type WeightsConfig struct {
	Market            float64 `mapstructure:"market" validate:"gte=0,lte=1"`
	Rating            float64 `mapstructure:"rating" validate:"gte=0,lte=1"`
	Form              float64 `mapstructure:"form" validate:"gte=0,lte=1"`
	Suitability       float64 `mapstructure:"suitability" validate:"gte=0,lte=1"`
	Freshness         float64 `mapstructure:"freshness" validate:"gte=0,lte=1"`
	CDProfile         float64 `mapstructure:"cd_profile" validate:"gte=0,lte=1"`
	Connections       float64 `mapstructure:"connections" validate:"gte=0,lte=1"`
	MarketExpectation float64 `mapstructure:"market_expectation" validate:"gte=0,lte=1"`
}

// Sum returns the total configured weight mass.
func (w *WeightsConfig) Sum() float64 {
	return w.Market + w.Rating + w.Form + w.Suitability +
		w.Freshness + w.CDProfile + w.Connections + w.MarketExpectation
}

// ConnectionsConfig holds the trainer run-to-form linear scale. The score is
// clamp(Intercept + Slope*rtf, Min, Max) when a trainer RTF% is available.
type ConnectionsConfig struct {
	RTFIntercept float64 `mapstructure:"rtf_intercept"`
	RTFSlope     float64 `mapstructure:"rtf_slope"`
	ScoreMin     float64 `mapstructure:"score_min" validate:"gte=0,lte=100"`
	ScoreMax     float64 `mapstructure:"score_max" validate:"gte=0,lte=100"`
}

// MarketExpectationConfig holds the last-race market signal term weights.
type MarketExpectationConfig struct {
	LastFavBonus      float64 `mapstructure:"last_fav_bonus"`
	BeatenFavBonus    float64 `mapstructure:"beaten_fav_bonus"`
	JointFavPenalty   float64 `mapstructure:"joint_fav_penalty"`
	ConfidenceScale   float64 `mapstructure:"confidence_scale"`
	ConfidenceOddsMin float64 `mapstructure:"confidence_odds_min" validate:"gt=1"`
	ConfidenceOddsMax float64 `mapstructure:"confidence_odds_max" validate:"gt=1"`
}

// ConfidenceConfig holds the confidence band thresholds. Gap thresholds are
// probabilities and must lie in [0,1]; margin thresholds are score points.
type ConfidenceConfig struct {
	HighGap       float64 `mapstructure:"high_gap" validate:"gte=0,lte=1"`
	MedGap        float64 `mapstructure:"med_gap" validate:"gte=0,lte=1"`
	MinComponents int     `mapstructure:"min_components" validate:"gte=1"`
	HighMargin    float64 `mapstructure:"high_margin" validate:"gte=0"`
	MedMargin     float64 `mapstructure:"med_margin" validate:"gte=0"`
}

// OutputConfig represents where scored and web payload JSON files are written
type OutputConfig struct {
	ScoredDir string `mapstructure:"scored_dir"`
	WebDir    string `mapstructure:"web_dir"`
}

// FetchConfig represents the racecard HTTP client configuration
type FetchConfig struct {
	TimeoutSeconds   int     `mapstructure:"timeout_seconds" validate:"gte=0"`
	MaxRetries       int     `mapstructure:"max_retries" validate:"gte=0"`
	RetryWaitMinMs   int     `mapstructure:"retry_wait_min_ms" validate:"gte=0"`
	RetryWaitMaxMs   int     `mapstructure:"retry_wait_max_ms" validate:"gte=0"`
	RequestsPerSec   float64 `mapstructure:"requests_per_sec" validate:"gte=0"`
	UserAgent        string  `mapstructure:"user_agent"`
	MinValidPageSize int     `mapstructure:"min_valid_page_size" validate:"gte=0"`
}

// DatabaseConfig represents optional PostgreSQL persistence configuration
type DatabaseConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name           string `mapstructure:"name"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	SSLMode        string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections int    `mapstructure:"max_connections" validate:"omitempty,gt=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Path    string `mapstructure:"path"`
}

// ScheduleConfig represents the optional daily scoring schedule
type ScheduleConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Cron    string `mapstructure:"cron"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// weightSumTolerance absorbs float rounding when checking the weight mass.
const weightSumTolerance = 1e-6

// WeightsSumToOne reports whether the configured component weights form a
// complete weight mass.
func (w *WeightsConfig) WeightsSumToOne() bool {
	return math.Abs(w.Sum()-1.0) < weightSumTolerance
}
