// Package metrics provides the centralized Prometheus metrics registry for
// the race ranker.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	RacesScoredTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "race_ranker",
		Name:      "races_scored_total",
		Help:      "Total number of races scored",
	})
	RunnersScoredTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "race_ranker",
		Name:      "runners_scored_total",
		Help:      "Total number of runners scored",
	})
	ScoringErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "race_ranker",
		Name:      "scoring_errors_total",
		Help:      "Total number of race records rejected by the engine",
	})
	ComponentScoredTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "race_ranker",
		Name:      "component_scored_total",
		Help:      "Component evaluations that produced a score, by component",
	}, []string{"component"})
	ComponentMissingTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "race_ranker",
		Name:      "component_missing_total",
		Help:      "Component evaluations with no data, by component",
	}, []string{"component"})
	ConfidenceBandTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "race_ranker",
		Name:      "confidence_band_total",
		Help:      "Confidence band assignments, by band",
	}, []string{"band"})
	ResultCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "race_ranker",
		Name:      "result_cache_hits_total",
		Help:      "Scored race results served from cache",
	})
)

// Gauge metrics
var (
	LastRaceAvailableWeight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "race_ranker",
		Name:      "last_race_available_weight",
		Help:      "Available weight fraction of the top pick in the last scored race",
	})
)

// Histogram metrics
var (
	RaceScoringDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "race_ranker",
		Name:      "race_scoring_duration_seconds",
		Help:      "Duration of scoring one race in seconds",
		Buckets:   prometheus.DefBuckets,
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register counter metrics
		registry.MustRegister(RacesScoredTotal)
		registry.MustRegister(RunnersScoredTotal)
		registry.MustRegister(ScoringErrorsTotal)
		registry.MustRegister(ComponentScoredTotal)
		registry.MustRegister(ComponentMissingTotal)
		registry.MustRegister(ConfidenceBandTotal)
		registry.MustRegister(ResultCacheHitsTotal)

		// Register gauge metrics
		registry.MustRegister(LastRaceAvailableWeight)

		// Register histogram metrics
		registry.MustRegister(RaceScoringDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordRaceScored records one scored race and its runner count.
func RecordRaceScored(runners int) {
	RacesScoredTotal.Inc()
	RunnersScoredTotal.Add(float64(runners))
}

// RecordComponent records whether a component produced a score.
func RecordComponent(component string, scored bool) {
	if scored {
		ComponentScoredTotal.WithLabelValues(component).Inc()
	} else {
		ComponentMissingTotal.WithLabelValues(component).Inc()
	}
}

// RecordConfidenceBand records a confidence band assignment.
func RecordConfidenceBand(band string) {
	ConfidenceBandTotal.WithLabelValues(band).Inc()
}
