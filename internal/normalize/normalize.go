// Package normalize converts the textual encodings found on racecards
// (weights, distances, going descriptions, odds) into comparable numbers.
// Every function is total: unparseable input yields nil, never an error.
package normalize

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	weightPattern     = regexp.MustCompile(`^(\d+)-(\d+)`)
	milesPattern      = regexp.MustCompile(`(\d+)m`)
	furlongsPattern   = regexp.MustCompile(`(\d+)f`)
	fractionalPattern = regexp.MustCompile(`^(\d+)[/-](\d+)$`)
	decimalPattern    = regexp.MustCompile(`^\d+\.\d+$`)
)

// goingScale maps cleaned going descriptions onto a 1 (firm) to 6 (heavy)
// ordinal. All-weather terms and Irish synonyms fold onto the turf scale.
var goingScale = map[string]float64{
	"firm":             1,
	"good_to_firm":     2,
	"good":             3,
	"standard":         3,
	"good_to_soft":     4,
	"yielding":         4,
	"standard_to_slow": 4,
	"soft":             5,
	"slow":             5,
	"heavy":            6,
}

// WeightPounds converts a carried-weight string like "11-4" (stones-pounds)
// to total pounds: 11*14 + 4 = 158.
func WeightPounds(weight string) *int {
	m := weightPattern.FindStringSubmatch(strings.TrimSpace(weight))
	if m == nil {
		return nil
	}
	stones := mustAtoi(m[1])
	pounds := mustAtoi(m[2])
	total := stones*14 + pounds
	return &total
}

// DistanceFurlongs converts a distance string like "2m4f" to furlongs (20.0).
// Plain furlong ("7f") and plain mile ("2m") forms are accepted.
func DistanceFurlongs(distance string) *float64 {
	d := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(distance)), " ", "")
	if d == "" {
		return nil
	}
	total := 0
	if m := milesPattern.FindStringSubmatch(d); m != nil {
		total += mustAtoi(m[1]) * 8
	}
	if m := furlongsPattern.FindStringSubmatch(d); m != nil {
		total += mustAtoi(m[1])
	}
	if total <= 0 {
		return nil
	}
	f := float64(total)
	return &f
}

// GoingOrdinal maps a going/ground description onto the 1 (firm) to
// 6 (heavy) scale. Unknown descriptions yield nil.
func GoingOrdinal(going string) *float64 {
	key := strings.ToLower(strings.TrimSpace(going))
	key = strings.Join(strings.Fields(key), "_")
	key = strings.ReplaceAll(key, "-", "_")
	if v, ok := goingScale[key]; ok {
		return &v
	}
	// Abbreviated forms such as "Gd/Sft" or "Gd-Fm" seen in form tables.
	// Compound forms are listed before their substrings so "gd/sft" never
	// resolves as plain "gd" or "sft".
	abbrKey := strings.ReplaceAll(key, "_", "/")
	for _, abbr := range goingAbbreviations {
		if strings.Contains(abbrKey, abbr.pattern) {
			ordinal := abbr.ordinal
			return &ordinal
		}
	}
	return nil
}

var goingAbbreviations = []struct {
	pattern string
	ordinal float64
}{
	{"gd/sft", 4},
	{"gd/fm", 2},
	{"sft", 5},
	{"hvy", 6},
	{"fm", 1},
	{"gd", 3},
	{"std", 3},
}

// Odds converts fractional ("5/1", "11/4", "5-1"), decimal ("3.5") or
// "evens" odds text into decimal odds. Values at or below 1.0 are invalid
// and yield nil: a runner cannot carry a zero-or-negative implied
// probability.
func Odds(text string) *float64 {
	t := strings.ToLower(strings.TrimSpace(text))
	t = strings.ReplaceAll(t, "–", "-")
	if t == "" {
		return nil
	}
	if t == "evs" || t == "evens" {
		two := 2.0
		return &two
	}
	if decimalPattern.MatchString(t) {
		d, err := decimal.NewFromString(t)
		if err != nil {
			return nil
		}
		return validOdds(d)
	}
	if m := fractionalPattern.FindStringSubmatch(t); m != nil {
		den := mustAtoi(m[2])
		if den == 0 {
			return nil
		}
		d := decimal.NewFromInt(int64(mustAtoi(m[1]))).
			Div(decimal.NewFromInt(int64(den))).
			Add(decimal.NewFromInt(1)).
			Round(2)
		return validOdds(d)
	}
	return nil
}

func validOdds(d decimal.Decimal) *float64 {
	if d.LessThanOrEqual(decimal.NewFromInt(1)) {
		return nil
	}
	f, _ := d.Float64()
	return &f
}

func mustAtoi(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}
