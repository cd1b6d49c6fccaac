package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWebPayload(t *testing.T) {
	svc := newTestService(t, nil)

	result, err := svc.ScoreRace(context.Background(), testRace())
	require.NoError(t, err)

	payload := svc.BuildWebPayload(result)

	assert.Equal(t, result.RaceID, payload.RaceID)
	assert.Equal(t, Disclaimer, payload.Disclaimer)
	require.Len(t, payload.Runners, 2)

	top := payload.Runners[0]
	assert.Equal(t, 1, top.Rank)
	assert.Equal(t, "Front Runner", top.RunnerName)
	assert.Equal(t, result.Runners[0].Scoring.TotalScore, top.TotalScore)

	// Component order follows the engine registry, with display labels.
	require.NotEmpty(t, top.Components)
	assert.Equal(t, "Market", top.Components[0].Name)
}

func TestWebPayloadPreservesAbsenceAsNull(t *testing.T) {
	svc := newTestService(t, nil)

	result, err := svc.ScoreRace(context.Background(), testRace())
	require.NoError(t, err)

	data, err := json.Marshal(svc.BuildWebPayload(result))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	runners := decoded["runners"].([]any)
	top := runners[0].(map[string]any)

	// Unknown attributes serialize as null, never as zero or false.
	assert.Contains(t, top, "rpr")
	assert.Nil(t, top["rpr"])
	assert.Contains(t, top, "course_winner")
	assert.Nil(t, top["course_winner"])
	assert.NotNil(t, top["odds_decimal"])
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Market", displayName("market"))
	assert.Equal(t, "Market Expectation", displayName("market_expectation"))
	assert.Equal(t, "Cd Profile", displayName("cd_profile"))
}
