// Package config provides configuration management for the race-ranker application.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load reads and parses the configuration from file and environment variables.
// It expands environment variable placeholders in the YAML file (${VAR_NAME}).
// Scoring defaults are applied first so a minimal file only needs to override
// what it changes.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	v := viper.New()
	v.SetConfigType("yaml")

	// Set environment variable prefix
	v.SetEnvPrefix("RACE_RANKER")

	// Enable automatic binding of environment variables
	v.AutomaticEnv()

	// Replace dots with underscores in environment variable names
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	// Read and expand the configuration file if it exists
	if data, err := os.ReadFile(configPath); err == nil {
		// Expand environment variables in the configuration (${VAR} syntax)
		expanded := os.ExpandEnv(string(data))
		if err := v.ReadConfig(bytes.NewBuffer([]byte(expanded))); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	// If the file doesn't exist, continue with defaults and environment variables

	// Unmarshal configuration into Config struct
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults seeds viper with the tuned defaults from Default()
func setDefaults(v *viper.Viper) {
	def := Default()

	v.SetDefault("app.name", def.App.Name)
	v.SetDefault("app.environment", def.App.Environment)
	v.SetDefault("app.log_level", def.App.LogLevel)

	v.SetDefault("scoring.weights.market", def.Scoring.Weights.Market)
	v.SetDefault("scoring.weights.rating", def.Scoring.Weights.Rating)
	v.SetDefault("scoring.weights.form", def.Scoring.Weights.Form)
	v.SetDefault("scoring.weights.suitability", def.Scoring.Weights.Suitability)
	v.SetDefault("scoring.weights.freshness", def.Scoring.Weights.Freshness)
	v.SetDefault("scoring.weights.cd_profile", def.Scoring.Weights.CDProfile)
	v.SetDefault("scoring.weights.connections", def.Scoring.Weights.Connections)
	v.SetDefault("scoring.weights.market_expectation", def.Scoring.Weights.MarketExpectation)

	v.SetDefault("scoring.connections.rtf_intercept", def.Scoring.Connections.RTFIntercept)
	v.SetDefault("scoring.connections.rtf_slope", def.Scoring.Connections.RTFSlope)
	v.SetDefault("scoring.connections.score_min", def.Scoring.Connections.ScoreMin)
	v.SetDefault("scoring.connections.score_max", def.Scoring.Connections.ScoreMax)

	v.SetDefault("scoring.market_expectation.last_fav_bonus", def.Scoring.MarketExpectation.LastFavBonus)
	v.SetDefault("scoring.market_expectation.beaten_fav_bonus", def.Scoring.MarketExpectation.BeatenFavBonus)
	v.SetDefault("scoring.market_expectation.joint_fav_penalty", def.Scoring.MarketExpectation.JointFavPenalty)
	v.SetDefault("scoring.market_expectation.confidence_scale", def.Scoring.MarketExpectation.ConfidenceScale)
	v.SetDefault("scoring.market_expectation.confidence_odds_min", def.Scoring.MarketExpectation.ConfidenceOddsMin)
	v.SetDefault("scoring.market_expectation.confidence_odds_max", def.Scoring.MarketExpectation.ConfidenceOddsMax)

	v.SetDefault("scoring.confidence.high_gap", def.Scoring.Confidence.HighGap)
	v.SetDefault("scoring.confidence.med_gap", def.Scoring.Confidence.MedGap)
	v.SetDefault("scoring.confidence.min_components", def.Scoring.Confidence.MinComponents)
	v.SetDefault("scoring.confidence.high_margin", def.Scoring.Confidence.HighMargin)
	v.SetDefault("scoring.confidence.med_margin", def.Scoring.Confidence.MedMargin)
	v.SetDefault("scoring.result_cache_ttl_seconds", def.Scoring.ResultCacheTTL)

	v.SetDefault("output.scored_dir", def.Output.ScoredDir)
	v.SetDefault("output.web_dir", def.Output.WebDir)

	v.SetDefault("fetch.timeout_seconds", def.Fetch.TimeoutSeconds)
	v.SetDefault("fetch.max_retries", def.Fetch.MaxRetries)
	v.SetDefault("fetch.retry_wait_min_ms", def.Fetch.RetryWaitMinMs)
	v.SetDefault("fetch.retry_wait_max_ms", def.Fetch.RetryWaitMaxMs)
	v.SetDefault("fetch.requests_per_sec", def.Fetch.RequestsPerSec)
	v.SetDefault("fetch.user_agent", def.Fetch.UserAgent)
	v.SetDefault("fetch.min_valid_page_size", def.Fetch.MinValidPageSize)

	v.SetDefault("metrics.enabled", def.Metrics.Enabled)
	v.SetDefault("metrics.port", def.Metrics.Port)
	v.SetDefault("metrics.path", def.Metrics.Path)

	v.SetDefault("schedule.enabled", def.Schedule.Enabled)
	v.SetDefault("schedule.cron", def.Schedule.Cron)
}
