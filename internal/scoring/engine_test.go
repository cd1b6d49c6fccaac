package scoring

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/race-ranker/internal/config"
	"github.com/yourusername/race-ranker/internal/models"
)

func TestNewEngineRejectsIncompleteWeights(t *testing.T) {
	cfg := config.DefaultScoringConfig()
	cfg.Weights.Market = 0.5

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	_, err := NewEngine(cfg, logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must sum to 1.0")
}

func TestScoreRaceStructuralValidation(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		name      string
		race      *models.RaceData
		expectErr error
	}{
		{name: "Nil race", race: nil, expectErr: models.ErrNoRunners},
		{name: "No runners", race: newTestRace(), expectErr: models.ErrNoRunners},
		{
			name:      "Unnamed runner",
			race:      newTestRace(&models.Runner{Name: "Named"}, &models.Runner{}),
			expectErr: models.ErrRunnerNameMissing,
		},
		{
			name:      "Nil runner entry",
			race:      newTestRace(&models.Runner{Name: "Named"}, nil),
			expectErr: models.ErrRunnerNameMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.ScoreRace(tt.race)
			assert.ErrorIs(t, err, tt.expectErr)
		})
	}
}

func TestScoreRaceRedistributesMissingWeight(t *testing.T) {
	engine := newTestEngine(t)
	race := newTestRace(
		&models.Runner{Name: "Priced Only A", OddsDecimal: floatPtr(2.0)},
		&models.Runner{Name: "Priced Only B", OddsDecimal: floatPtr(4.0)},
	)

	result, err := engine.ScoreRace(race)
	require.NoError(t, err)

	top := result.Runners[0]
	require.Equal(t, "Priced Only A", top.Name)

	// Market is the only component with data, so it absorbs the full weight
	// mass and the total equals the market score.
	market, ok := top.Scoring.Components[ComponentMarket]
	require.True(t, ok)
	assert.Equal(t, 1.0, market.Weight)
	assert.InDelta(t, 66.7, top.Scoring.TotalScore, 0.05)
	assert.InDelta(t, 0.30, top.Scoring.AvailableWeight, 1e-9)

	// Components without data keep their reason but carry no weight.
	rating, ok := top.Scoring.Components[ComponentRating]
	require.True(t, ok)
	assert.Nil(t, rating.Score)
	assert.Zero(t, rating.Weight)
	assert.NotEmpty(t, rating.Reason)
}

func TestScoreRaceZeroComponentRunner(t *testing.T) {
	engine := newTestEngine(t)
	race := newTestRace(
		&models.Runner{Name: "Priced", OddsDecimal: floatPtr(2.0)},
		&models.Runner{Name: "Complete Mystery"},
	)

	result, err := engine.ScoreRace(race)
	require.NoError(t, err)

	last := result.Runners[1]
	assert.Equal(t, "Complete Mystery", last.Name)
	assert.Equal(t, 2, last.Rank)
	assert.Zero(t, last.Scoring.TotalScore)
	assert.Zero(t, last.Scoring.AvailableWeight)
	assert.Empty(t, last.Scoring.Components)
}

func TestScoreRaceTiesKeepCardOrder(t *testing.T) {
	engine := newTestEngine(t)
	race := newTestRace(
		&models.Runner{Name: "First On Card", OddsDecimal: floatPtr(3.0)},
		&models.Runner{Name: "Second On Card", OddsDecimal: floatPtr(3.0)},
	)

	result, err := engine.ScoreRace(race)
	require.NoError(t, err)

	assert.Equal(t, "First On Card", result.Runners[0].Name)
	assert.Equal(t, 1, result.Runners[0].Rank)
	assert.Equal(t, "Second On Card", result.Runners[1].Name)
	assert.Equal(t, 2, result.Runners[1].Rank)
	assert.Equal(t, result.Runners[0].Scoring.TotalScore, result.Runners[1].Scoring.TotalScore)
}

func TestScoreRaceIsDeterministic(t *testing.T) {
	engine := newTestEngine(t)

	build := func() *models.RaceData {
		return newTestRace(
			richRunner("Alpha", 2.0, 130),
			richRunner("Beta", 5.0, 120),
			&models.Runner{Name: "Gamma", OddsDecimal: floatPtr(8.0), RPR: intPtr(110)},
		)
	}

	first, err := engine.ScoreRace(build())
	require.NoError(t, err)
	second, err := engine.ScoreRace(build())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestScoreRaceDoesNotMutateInput(t *testing.T) {
	engine := newTestEngine(t)

	runner := richRunner("Untouched", 2.0, 130)
	race := newTestRace(runner, richRunner("Rival", 3.0, 120))
	formLen := len(runner.RecentForm)

	_, err := engine.ScoreRace(race)
	require.NoError(t, err)

	assert.Len(t, runner.RecentForm, formLen)
	assert.Equal(t, "Untouched", race.Runners[0].Name)
}

func TestScoreRacePicks(t *testing.T) {
	engine := newTestEngine(t)

	t.Run("Top three picked in rank order", func(t *testing.T) {
		race := newTestRace(
			&models.Runner{Name: "Third", OddsDecimal: floatPtr(8.0)},
			&models.Runner{Name: "First", OddsDecimal: floatPtr(2.0)},
			&models.Runner{Name: "Second", OddsDecimal: floatPtr(4.0)},
			&models.Runner{Name: "Fourth", OddsDecimal: floatPtr(16.0)},
		)

		result, err := engine.ScoreRace(race)
		require.NoError(t, err)

		require.NotNil(t, result.Picks.TopPick)
		assert.Equal(t, "First", result.Picks.TopPick.RunnerName)
		assert.Equal(t, 1, result.Picks.TopPick.Rank)
		require.NotNil(t, result.Picks.Backup1)
		assert.Equal(t, "Second", result.Picks.Backup1.RunnerName)
		require.NotNil(t, result.Picks.Backup2)
		assert.Equal(t, "Third", result.Picks.Backup2.RunnerName)
	})

	t.Run("Short field leaves backups nil", func(t *testing.T) {
		race := newTestRace(
			&models.Runner{Name: "Only One", OddsDecimal: floatPtr(2.0)},
			&models.Runner{Name: "Other", OddsDecimal: floatPtr(3.0)},
		)

		result, err := engine.ScoreRace(race)
		require.NoError(t, err)

		assert.NotNil(t, result.Picks.TopPick)
		assert.NotNil(t, result.Picks.Backup1)
		assert.Nil(t, result.Picks.Backup2)
	})
}

func TestScoreRaceGeneratesRaceID(t *testing.T) {
	engine := newTestEngine(t)

	t.Run("Explicit ID kept", func(t *testing.T) {
		race := newTestRace(&models.Runner{Name: "Solo", OddsDecimal: floatPtr(2.0)})
		race.RaceID = "custom-id"

		result, err := engine.ScoreRace(race)
		require.NoError(t, err)
		assert.Equal(t, "custom-id", result.RaceID)
	})

	t.Run("Slug derived from meta", func(t *testing.T) {
		race := newTestRace(&models.Runner{Name: "Solo", OddsDecimal: floatPtr(2.0)})

		result, err := engine.ScoreRace(race)
		require.NoError(t, err)
		assert.Equal(t, "ascot-2025-06-15-14-30", result.RaceID)
	})
}

func TestComponentNamesOrder(t *testing.T) {
	engine := newTestEngine(t)
	assert.Equal(t, []string{
		ComponentMarket,
		ComponentRating,
		ComponentForm,
		ComponentSuitability,
		ComponentFreshness,
		ComponentCDProfile,
		ComponentConnections,
		ComponentMarketExpectation,
	}, engine.ComponentNames())
}
