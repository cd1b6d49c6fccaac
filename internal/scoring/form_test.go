package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/race-ranker/internal/models"
)

func formLine(pos int, date string) *models.FormLine {
	line := &models.FormLine{Position: intPtr(pos)}
	if date != "" {
		line.Date = strPtr(date)
	}
	return line
}

func TestScoreFormRecencyWeightedAverage(t *testing.T) {
	engine := newTestEngine(t)
	race := newTestRace(&models.Runner{
		Name: "Consistent",
		RecentForm: []*models.FormLine{
			formLine(1, "2025-06-01"),
			formLine(3, "2025-05-10"),
			formLine(2, "2025-04-20"),
		},
	})
	rc := contextFor(race)

	score, reason := engine.scoreForm(rc, 0)
	require.NotNil(t, score)
	// Positions 1/3/2 score 100/70/85 with recency weights 1, 1/1.3, 1/1.6,
	// averaging 86.4; all inside the first three adds the consistency bonus.
	assert.InDelta(t, 91.4, *score, 0.05)
	assert.Equal(t, "Recent positions: 1/3/2 (recency-weighted avg)", reason)
}

func TestScoreFormNoBonusForSingleRun(t *testing.T) {
	engine := newTestEngine(t)
	race := newTestRace(&models.Runner{
		Name:       "Debut Winner",
		RecentForm: []*models.FormLine{formLine(1, "2025-06-01")},
	})
	rc := contextFor(race)

	score, _ := engine.scoreForm(rc, 0)
	require.NotNil(t, score)
	assert.Equal(t, 100.0, *score)
}

func TestScoreFormFloorsDistantFinishes(t *testing.T) {
	engine := newTestEngine(t)
	race := newTestRace(&models.Runner{
		Name:       "Tailed Off",
		RecentForm: []*models.FormLine{formLine(12, "2025-06-01")},
	})
	rc := contextFor(race)

	score, _ := engine.scoreForm(rc, 0)
	require.NotNil(t, score)
	assert.Equal(t, 0.0, *score)
}

func TestScoreFormSkipsNonCompletions(t *testing.T) {
	engine := newTestEngine(t)
	race := newTestRace(&models.Runner{
		Name: "Faller",
		RecentForm: []*models.FormLine{
			{Date: strPtr("2025-06-01")}, // fell, no position
			formLine(2, "2025-05-10"),
		},
	})
	rc := contextFor(race)

	score, reason := engine.scoreForm(rc, 0)
	require.NotNil(t, score)
	assert.Equal(t, 85.0, *score)
	assert.Equal(t, "Recent positions: 2 (recency-weighted avg)", reason)
}

func TestScoreFormAbsent(t *testing.T) {
	engine := newTestEngine(t)

	t.Run("No form at all", func(t *testing.T) {
		race := newTestRace(&models.Runner{Name: "Unraced"})
		rc := contextFor(race)

		score, reason := engine.scoreForm(rc, 0)
		assert.Nil(t, score)
		assert.Equal(t, "No recent form data", reason)
	})

	t.Run("Only non-completions", func(t *testing.T) {
		race := newTestRace(&models.Runner{
			Name:       "Serial Faller",
			RecentForm: []*models.FormLine{{Date: strPtr("2025-06-01")}},
		})
		rc := contextFor(race)

		score, reason := engine.scoreForm(rc, 0)
		assert.Nil(t, score)
		assert.Equal(t, "Form data present but no parseable finishing positions", reason)
	})
}

func TestFormLinesDatedOnRaceDayAreExcluded(t *testing.T) {
	engine := newTestEngine(t)
	race := newTestRace(&models.Runner{
		Name: "Double Booked",
		RecentForm: []*models.FormLine{
			formLine(1, "2025-06-15"), // same day as the race being scored
			formLine(4, "2025-05-20"),
		},
	})
	rc := contextFor(race)

	score, reason := engine.scoreForm(rc, 0)
	require.NotNil(t, score)
	assert.Equal(t, 55.0, *score)
	assert.Equal(t, "Recent positions: 4 (recency-weighted avg)", reason)
}

func TestFilterFormLinesCapsHistory(t *testing.T) {
	lines := make([]*models.FormLine, 0, 10)
	for i := 0; i < 10; i++ {
		lines = append(lines, formLine(i+1, ""))
	}

	filtered := filterFormLines(lines, "2025-06-15")
	assert.Len(t, filtered, models.MaxRecentFormLines)
}
