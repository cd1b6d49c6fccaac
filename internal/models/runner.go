package models

import "time"

// MaxRecentFormLines caps how many past runs are kept per runner,
// most recent first.
const MaxRecentFormLines = 6

// FormLine is one past run in a runner's recent form, most recent first.
// Every field may be absent; a nil Position means the horse did not complete.
type FormLine struct {
	Position  *int     `json:"position"`
	Date      *string  `json:"date"`
	Distance  *string  `json:"distance"`
	Going     *string  `json:"going"`
	RaceClass *string  `json:"race_class"`
	Track     *string  `json:"track"`
	SPDecimal *float64 `json:"sp_decimal"`
	SPString  *string  `json:"sp_string"`
}

// RunDate parses the form line date. The second return is false when the
// date is absent or malformed.
func (f *FormLine) RunDate() (time.Time, bool) {
	if f.Date == nil {
		return time.Time{}, false
	}
	d, err := time.Parse("2006-01-02", *f.Date)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// Runner is one competitor in a race. Optional attributes are pointers so
// that absence stays distinct from zero or false; the scoring engine never
// substitutes defaults for nil fields.
type Runner struct {
	Name             string      `json:"runner_name" validate:"required"`
	Number           *int        `json:"number"`
	Draw             *int        `json:"draw"`
	Age              *int        `json:"age"`
	Weight           *string     `json:"weight"`
	OfficialRating   *int        `json:"official_rating"`
	RPR              *int        `json:"rpr"`
	TS               *int        `json:"ts"`
	Jockey           *string     `json:"jockey"`
	Trainer          *string     `json:"trainer"`
	TrainerRTF       *float64    `json:"trainer_rtf"`
	OddsDecimal      *float64    `json:"odds_decimal"`
	DaysSinceLastRun *int        `json:"days_since_last_run"`
	CourseWinner     *bool       `json:"course_winner"`
	DistanceWinner   *bool       `json:"distance_winner"`
	CDWinner         *bool       `json:"cd_winner"`
	LastRaceFav      *bool       `json:"last_race_fav"`
	LastRaceJointFav *bool       `json:"last_race_joint_fav"`
	RecentForm       []*FormLine `json:"recent_form"`
}

// HasValidOdds reports whether the runner carries usable decimal odds.
// Odds at or below 1.0 would imply a >=100% win probability and are invalid.
func (r *Runner) HasValidOdds() bool {
	return r.OddsDecimal != nil && *r.OddsDecimal > 1.0
}

// LastRun returns the most recent form line, or nil when there is none.
func (r *Runner) LastRun() *FormLine {
	if len(r.RecentForm) == 0 {
		return nil
	}
	return r.RecentForm[0]
}
