package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/race-ranker/internal/models"
)

func TestScoreCDProfile(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		name   string
		runner *models.Runner
		expect float64
		reason string
	}{
		{
			name:   "Course and distance winner",
			runner: &models.Runner{Name: "CD Horse", CDWinner: boolPtr(true)},
			expect: 90,
			reason: "Previous winner over this course and distance",
		},
		{
			name: "Separate course and distance wins count as CD",
			runner: &models.Runner{
				Name:           "Both Badges",
				CourseWinner:   boolPtr(true),
				DistanceWinner: boolPtr(true),
			},
			expect: 90,
			reason: "Previous winner over this course and distance",
		},
		{
			name:   "Course winner only",
			runner: &models.Runner{Name: "Track Lover", CourseWinner: boolPtr(true), DistanceWinner: boolPtr(false)},
			expect: 70,
			reason: "Previous winner at this course",
		},
		{
			name:   "Distance winner only",
			runner: &models.Runner{Name: "Trip Proven", DistanceWinner: boolPtr(true)},
			expect: 65,
			reason: "Previous winner over this distance",
		},
		{
			name: "Known non-winner",
			runner: &models.Runner{
				Name:           "Maiden",
				CourseWinner:   boolPtr(false),
				DistanceWinner: boolPtr(false),
				CDWinner:       boolPtr(false),
			},
			expect: 50,
			reason: "No course or distance win on record",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			race := newTestRace(tt.runner)
			rc := contextFor(race)

			score, reason := engine.scoreCDProfile(rc, 0)
			require.NotNil(t, score)
			assert.Equal(t, tt.expect, *score)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestScoreCDProfileAbsentWhenUnknown(t *testing.T) {
	engine := newTestEngine(t)

	// All three badges nil means unknown, not a known non-win.
	race := newTestRace(&models.Runner{Name: "Unknown Profile"})
	rc := contextFor(race)

	score, reason := engine.scoreCDProfile(rc, 0)
	assert.Nil(t, score)
	assert.Equal(t, "No course/distance record available", reason)
}
