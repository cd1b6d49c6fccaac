package scoring

import "fmt"

// freshnessBand maps a days-since-last-run range onto a score. Horses
// returning inside two to five weeks historically run closest to form;
// quick turnarounds and long layoffs both cost points.
type freshnessBand struct {
	maxDays int
	score   float64
	label   string
}

var freshnessBands = []freshnessBand{
	{maxDays: 6, score: 55, label: "quick turnaround"},
	{maxDays: 13, score: 68, label: "short break"},
	{maxDays: 35, score: 100, label: "sweet spot"},
	{maxDays: 60, score: 80, label: "moderate break"},
	{maxDays: 120, score: 58, label: "long break"},
}

const freshnessLayoffScore = 30.0

// scoreFreshness scores the days since the runner's previous appearance,
// taken from the explicit field when present or derived from the most
// recent dated form line otherwise.
func (e *Engine) scoreFreshness(rc *raceContext, idx int) (*float64, string) {
	days := e.daysSinceLastRun(rc, idx)
	if days == nil {
		return nil, "No last-run date to assess freshness"
	}

	for _, band := range freshnessBands {
		if *days <= band.maxDays {
			return scoreOf(band.score), fmt.Sprintf("%d days since last run (%s)", *days, band.label)
		}
	}
	return scoreOf(freshnessLayoffScore), fmt.Sprintf("%d days since last run (long layoff)", *days)
}

func (e *Engine) daysSinceLastRun(rc *raceContext, idx int) *int {
	if d := rc.runners[idx].DaysSinceLastRun; d != nil && *d >= 0 {
		return d
	}

	raceDate := rc.meta.RaceDate()
	if raceDate.IsZero() {
		return nil
	}
	for _, line := range rc.form[idx] {
		runDate, ok := line.RunDate()
		if !ok {
			continue
		}
		days := int(raceDate.Sub(runDate).Hours() / 24)
		if days < 0 {
			return nil
		}
		return &days
	}
	return nil
}
