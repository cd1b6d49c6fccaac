package scoring

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/race-ranker/internal/config"
	"github.com/yourusername/race-ranker/internal/models"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	engine, err := NewEngine(config.DefaultScoringConfig(), logger)
	require.NoError(t, err)
	return engine
}

func newTestMeta() models.RaceMeta {
	return models.RaceMeta{
		Track:    "Ascot",
		Date:     "2025-06-15",
		OffTime:  strPtr("14:30"),
		Distance: strPtr("2m"),
		Going:    strPtr("good"),
	}
}

func newTestRace(runners ...*models.Runner) *models.RaceData {
	return &models.RaceData{
		Meta:    newTestMeta(),
		Runners: runners,
	}
}

func contextFor(race *models.RaceData) *raceContext {
	return newRaceContext(race)
}

func strPtr(v string) *string     { return &v }
func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }
