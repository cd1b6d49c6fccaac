package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeightPounds(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect *int
	}{
		{name: "Typical jumps weight", input: "11-4", expect: intPtr(158)},
		{name: "Flat weight", input: "9-7", expect: intPtr(133)},
		{name: "Trailing annotation ignored", input: "10-0 (5lb claimer)", expect: intPtr(140)},
		{name: "Leading whitespace", input: "  8-13", expect: intPtr(125)},
		{name: "Not a weight", input: "heavy", expect: nil},
		{name: "Empty", input: "", expect: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeightPounds(tt.input)
			if tt.expect == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.expect, *got)
		})
	}
}

func TestDistanceFurlongs(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect *float64
	}{
		{name: "Miles and furlongs", input: "2m4f", expect: floatPtr(20)},
		{name: "Furlongs only", input: "7f", expect: floatPtr(7)},
		{name: "Miles only", input: "2m", expect: floatPtr(16)},
		{name: "Spaces and case", input: "1M 2F", expect: floatPtr(10)},
		{name: "Garbage", input: "sprint", expect: nil},
		{name: "Empty", input: "", expect: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceFurlongs(tt.input)
			if tt.expect == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.expect, *got)
		})
	}
}

func TestGoingOrdinal(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect *float64
	}{
		{name: "Firm", input: "Firm", expect: floatPtr(1)},
		{name: "Good to firm", input: "Good To Firm", expect: floatPtr(2)},
		{name: "Good", input: "good", expect: floatPtr(3)},
		{name: "Standard folds to good", input: "Standard", expect: floatPtr(3)},
		{name: "Yielding folds to good to soft", input: "Yielding", expect: floatPtr(4)},
		{name: "Hyphenated", input: "good-to-soft", expect: floatPtr(4)},
		{name: "Heavy", input: "HEAVY", expect: floatPtr(6)},
		{name: "Abbreviated mixed", input: "Gd/Sft", expect: floatPtr(4)},
		{name: "Abbreviated mixed hyphenated", input: "Gd-Fm", expect: floatPtr(2)},
		{name: "Abbreviated soft", input: "Sft", expect: floatPtr(5)},
		{name: "Unknown", input: "frozen", expect: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GoingOrdinal(tt.input)
			if tt.expect == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.expect, *got)
		})
	}
}

// Compound abbreviations contain their plain substrings, so the fallback
// must resolve them the same way on every call.
func TestGoingOrdinalAbbreviationsAreDeterministic(t *testing.T) {
	for i := 0; i < 500; i++ {
		got := GoingOrdinal("Gd/Sft")
		require.NotNil(t, got)
		require.Equal(t, 4.0, *got)
	}
}

func TestOdds(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect *float64
	}{
		{name: "Evens", input: "Evens", expect: floatPtr(2.0)},
		{name: "Evs", input: "evs", expect: floatPtr(2.0)},
		{name: "Simple fraction", input: "5/1", expect: floatPtr(6.0)},
		{name: "Odds-on fraction", input: "4/6", expect: floatPtr(1.67)},
		{name: "Awkward fraction rounds to 2dp", input: "11/4", expect: floatPtr(3.75)},
		{name: "Hyphenated fraction", input: "5-1", expect: floatPtr(6.0)},
		{name: "En-dash fraction", input: "5–1", expect: floatPtr(6.0)},
		{name: "Decimal", input: "3.5", expect: floatPtr(3.5)},
		{name: "Zero denominator", input: "5/0", expect: nil},
		{name: "At most evens implied", input: "0/1", expect: nil},
		{name: "Decimal at 1.0 invalid", input: "1.0", expect: nil},
		{name: "Non-runner", input: "NR", expect: nil},
		{name: "Empty", input: "", expect: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Odds(tt.input)
			if tt.expect == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.expect, *got, 1e-9)
		})
	}
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
