package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/race-ranker/internal/models"
)

func TestScoreMarketExpectationBeatenFavourite(t *testing.T) {
	engine := newTestEngine(t)
	race := newTestRace(&models.Runner{
		Name:        "Beaten Fav",
		LastRaceFav: boolPtr(true),
		RecentForm: []*models.FormLine{
			{Position: intPtr(2), SPDecimal: floatPtr(2.0)},
		},
	})
	rc := contextFor(race)

	// Base 50 plus 25*0.5 confidence, 15 favourite, 20 beaten favourite.
	score, reason := engine.scoreMarketExpectation(rc, 0)
	require.NotNil(t, score)
	assert.Equal(t, 97.5, *score)
	assert.Contains(t, reason, "beaten favourite last time")
}

func TestScoreMarketExpectationWinningFavourite(t *testing.T) {
	engine := newTestEngine(t)
	race := newTestRace(&models.Runner{
		Name:        "Did The Job",
		LastRaceFav: boolPtr(true),
		RecentForm: []*models.FormLine{
			{Position: intPtr(1), SPDecimal: floatPtr(2.0)},
		},
	})
	rc := contextFor(race)

	score, reason := engine.scoreMarketExpectation(rc, 0)
	require.NotNil(t, score)
	assert.Equal(t, 77.5, *score)
	assert.Contains(t, reason, "winning favourite last time")
}

func TestScoreMarketExpectationJointFavouritePenalty(t *testing.T) {
	engine := newTestEngine(t)
	race := newTestRace(&models.Runner{
		Name:             "Shared The Lead",
		LastRaceFav:      boolPtr(true),
		LastRaceJointFav: boolPtr(true),
		RecentForm: []*models.FormLine{
			{Position: intPtr(1), SPDecimal: floatPtr(2.0)},
		},
	})
	rc := contextFor(race)

	score, _ := engine.scoreMarketExpectation(rc, 0)
	require.NotNil(t, score)
	assert.Equal(t, 72.5, *score)
}

func TestScoreMarketExpectationParsesTextualSP(t *testing.T) {
	engine := newTestEngine(t)
	race := newTestRace(&models.Runner{
		Name: "Fractional",
		RecentForm: []*models.FormLine{
			{Position: intPtr(5), SPString: strPtr("3/1")},
		},
	})
	rc := contextFor(race)

	// SP 4.0: base 50 plus 25*0.25, no favourite status on record.
	score, reason := engine.scoreMarketExpectation(rc, 0)
	require.NotNil(t, score)
	assert.Equal(t, 56.3, *score)
	assert.Contains(t, reason, "last SP 4.00")
}

func TestScoreMarketExpectationDerivesFavouriteFromCohort(t *testing.T) {
	engine := newTestEngine(t)

	// Both runners last ran in the same race; the shorter price was favourite.
	race := newTestRace(
		&models.Runner{
			Name: "Was Favourite",
			RecentForm: []*models.FormLine{{
				Position:  intPtr(1),
				Date:      strPtr("2025-05-20"),
				Track:     strPtr("Leopardstown"),
				SPDecimal: floatPtr(2.0),
			}},
		},
		&models.Runner{
			Name: "Was Outsider",
			RecentForm: []*models.FormLine{{
				Position:  intPtr(3),
				Date:      strPtr("2025-05-20"),
				Track:     strPtr("leopardstown"),
				SPDecimal: floatPtr(5.0),
			}},
		},
	)
	rc := contextFor(race)

	score, reason := engine.scoreMarketExpectation(rc, 0)
	require.NotNil(t, score)
	assert.Equal(t, 77.5, *score)
	assert.Contains(t, reason, "winning favourite last time")

	score, reason = engine.scoreMarketExpectation(rc, 1)
	require.NotNil(t, score)
	assert.Equal(t, 55.0, *score)
	assert.NotContains(t, reason, "favourite")
}

func TestScoreMarketExpectationNoCohortNoFavourite(t *testing.T) {
	engine := newTestEngine(t)

	// The previous races differ, so favourite status cannot be derived.
	race := newTestRace(
		&models.Runner{
			Name: "Alone",
			RecentForm: []*models.FormLine{{
				Position:  intPtr(1),
				Date:      strPtr("2025-05-20"),
				Track:     strPtr("Leopardstown"),
				SPDecimal: floatPtr(2.0),
			}},
		},
		&models.Runner{
			Name: "Elsewhere",
			RecentForm: []*models.FormLine{{
				Position:  intPtr(2),
				Date:      strPtr("2025-05-21"),
				Track:     strPtr("Naas"),
				SPDecimal: floatPtr(1.5),
			}},
		},
	)
	rc := contextFor(race)

	score, reason := engine.scoreMarketExpectation(rc, 0)
	require.NotNil(t, score)
	assert.Equal(t, 62.5, *score)
	assert.NotContains(t, reason, "favourite")
}

func TestScoreMarketExpectationAbsent(t *testing.T) {
	engine := newTestEngine(t)

	t.Run("No previous runs", func(t *testing.T) {
		race := newTestRace(&models.Runner{Name: "Debutant"})
		rc := contextFor(race)

		score, reason := engine.scoreMarketExpectation(rc, 0)
		assert.Nil(t, score)
		assert.Equal(t, "No previous run to assess", reason)
	})

	t.Run("No starting price", func(t *testing.T) {
		race := newTestRace(&models.Runner{
			Name:       "Unpriced History",
			RecentForm: []*models.FormLine{formLine(1, "2025-05-20")},
		})
		rc := contextFor(race)

		score, reason := engine.scoreMarketExpectation(rc, 0)
		assert.Nil(t, score)
		assert.Equal(t, "No usable starting price for previous run", reason)
	})
}
