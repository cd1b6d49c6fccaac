package models

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// RaceMeta describes a race and is shared context for every component scorer.
// It is read-only for the duration of scoring.
type RaceMeta struct {
	Track        string  `json:"track" validate:"required"`
	Date         string  `json:"date" validate:"required,datetime=2006-01-02"`
	OffTime      *string `json:"off_time"`
	Distance     *string `json:"distance"`
	Going        *string `json:"going"`
	RaceClass    *string `json:"race_class"`
	RunnersCount int     `json:"runners_count"`
	RaceName     *string `json:"race_name"`
	Handicap     bool    `json:"handicap"`
}

// RaceDate parses the race date. Returns the zero time if the date is malformed.
func (m *RaceMeta) RaceDate() time.Time {
	d, err := time.Parse("2006-01-02", m.Date)
	if err != nil {
		return time.Time{}
	}
	return d
}

// RaceData is the canonical race record handed to the scoring engine
// by the parsing layer.
type RaceData struct {
	RaceID  string    `json:"race_id"`
	Meta    RaceMeta  `json:"meta"`
	Runners []*Runner `json:"runners" validate:"required,min=1,dive,required"`
}

var raceIDPattern = regexp.MustCompile(`[^a-z0-9]+`)

// MakeRaceID builds a stable slug identifier from track, date and off time,
// falling back to an md5 digest when the slug would be empty.
func MakeRaceID(meta *RaceMeta) string {
	offTime := ""
	if meta.OffTime != nil {
		offTime = *meta.OffTime
	}
	seed := strings.ToLower(fmt.Sprintf("%s-%s-%s", meta.Track, meta.Date, offTime))
	slug := strings.Trim(raceIDPattern.ReplaceAllString(seed, "-"), "-")
	if slug != "" {
		return slug
	}
	sum := md5.Sum([]byte(seed))
	return hex.EncodeToString(sum[:])[:12]
}
