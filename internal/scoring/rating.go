package scoring

import (
	"fmt"

	"github.com/yourusername/race-ranker/internal/models"
	"github.com/yourusername/race-ranker/internal/normalize"
)

// ratingFigure is one ability figure a runner may carry. Figures are tried
// in priority order; a figure with zero spread across the field cannot
// separate runners and falls through to the next one.
type ratingFigure struct {
	name         string
	handicapOnly bool
	value        func(*models.Runner) *float64
}

var ratingFigures = []ratingFigure{
	{name: "rating", value: func(r *models.Runner) *float64 { return intFigure(r.RPR) }},
	{name: "speed figure", value: func(r *models.Runner) *float64 { return intFigure(r.TS) }},
	{name: "official rating", value: func(r *models.Runner) *float64 { return intFigure(r.OfficialRating) }},
	{name: "weight", handicapOnly: true, value: weightFigure},
}

func intFigure(v *int) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}

func weightFigure(r *models.Runner) *float64 {
	if r.Weight == nil {
		return nil
	}
	lbs := normalize.WeightPounds(*r.Weight)
	if lbs == nil {
		return nil
	}
	f := float64(*lbs)
	return &f
}

// scoreRating rescales the runner's best available ability figure into the
// field's observed range: field minimum maps to 0, maximum to 100. In
// handicaps, carried weight serves as a last-resort proxy since better
// horses are allotted more weight.
func (e *Engine) scoreRating(rc *raceContext, idx int) (*float64, string) {
	runner := rc.runners[idx]
	hadFigure := false

	for _, figure := range ratingFigures {
		if figure.handicapOnly && !rc.meta.Handicap {
			continue
		}
		v := figure.value(runner)
		if v == nil {
			continue
		}
		hadFigure = true

		min, max, n := fieldRange(rc.runners, figure.value)
		if n < 2 || max == min {
			// Zero spread cannot separate the field; try the next figure.
			continue
		}

		score := (*v - min) / (max - min) * 100
		reason := fmt.Sprintf("%s %.0f (field range %.0f-%.0f)", titleFirst(figure.name), *v, min, max)
		return scoreOf(score), reason
	}

	if hadFigure {
		return nil, "Ability figures present but no spread across the field"
	}
	return nil, "No rating, speed figure or usable weight data"
}

func fieldRange(runners []*models.Runner, value func(*models.Runner) *float64) (min, max float64, n int) {
	for _, r := range runners {
		v := value(r)
		if v == nil {
			continue
		}
		if n == 0 || *v < min {
			min = *v
		}
		if n == 0 || *v > max {
			max = *v
		}
		n++
	}
	return min, max, n
}

func titleFirst(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
