package service

import (
	"strings"

	"github.com/yourusername/race-ranker/internal/models"
)

// Disclaimer accompanies every web payload. The rankings are statistical
// analysis, not predictions.
const Disclaimer = "These rankings represent statistical analysis only. " +
	"They are not predictions or guarantees. Horse racing outcomes " +
	"are inherently uncertain. Use for personal research only."

// WebComponent is one scoring component rendered for display.
type WebComponent struct {
	Name          string   `json:"name"`
	Score         *float64 `json:"score"`
	Weight        float64  `json:"weight"`
	WeightedScore float64  `json:"weighted_score"`
	Reason        string   `json:"reason"`
}

// WebRunner is one ranked runner rendered for display. Optional fields stay
// pointers so absence serializes as null, never as zero or false.
type WebRunner struct {
	Rank             int                `json:"rank"`
	RunnerName       string             `json:"runner_name"`
	Number           *int               `json:"number"`
	Draw             *int               `json:"draw"`
	Age              *int               `json:"age"`
	Weight           *string            `json:"weight"`
	OfficialRating   *int               `json:"official_rating"`
	RPR              *int               `json:"rpr"`
	TS               *int               `json:"ts"`
	Jockey           *string            `json:"jockey"`
	Trainer          *string            `json:"trainer"`
	TrainerRTF       *float64           `json:"trainer_rtf"`
	OddsDecimal      *float64           `json:"odds_decimal"`
	DaysSinceLastRun *int               `json:"days_since_last_run"`
	CourseWinner     *bool              `json:"course_winner"`
	DistanceWinner   *bool              `json:"distance_winner"`
	CDWinner         *bool              `json:"cd_winner"`
	TotalScore       float64            `json:"total_score"`
	AvailableWeight  float64            `json:"available_weight"`
	Components       []WebComponent     `json:"components"`
	RecentForm       []*models.FormLine `json:"recent_form"`
}

// WebPayload is the display-oriented reshaping of a RaceResult.
type WebPayload struct {
	RaceID     string            `json:"race_id"`
	Meta       models.RaceMeta   `json:"meta"`
	Runners    []WebRunner       `json:"runners"`
	Picks      models.Picks      `json:"picks"`
	Confidence models.Confidence `json:"confidence"`
	Disclaimer string            `json:"disclaimer"`
}

// BuildWebPayload reshapes a scored race for a display consumer. Components
// are listed in the engine's registry order with human-readable labels.
func (s *RaceScorerService) BuildWebPayload(result *models.RaceResult) *WebPayload {
	componentOrder := s.engine.ComponentNames()

	runners := make([]WebRunner, 0, len(result.Runners))
	for _, r := range result.Runners {
		components := make([]WebComponent, 0, len(componentOrder))
		for _, name := range componentOrder {
			comp, ok := r.Scoring.Components[name]
			if !ok {
				continue
			}
			components = append(components, WebComponent{
				Name:          displayName(name),
				Score:         comp.Score,
				Weight:        comp.Weight,
				WeightedScore: comp.WeightedScore,
				Reason:        comp.Reason,
			})
		}

		runners = append(runners, WebRunner{
			Rank:             r.Rank,
			RunnerName:       r.Name,
			Number:           r.Number,
			Draw:             r.Draw,
			Age:              r.Age,
			Weight:           r.Weight,
			OfficialRating:   r.OfficialRating,
			RPR:              r.RPR,
			TS:               r.TS,
			Jockey:           r.Jockey,
			Trainer:          r.Trainer,
			TrainerRTF:       r.TrainerRTF,
			OddsDecimal:      r.OddsDecimal,
			DaysSinceLastRun: r.DaysSinceLastRun,
			CourseWinner:     r.CourseWinner,
			DistanceWinner:   r.DistanceWinner,
			CDWinner:         r.CDWinner,
			TotalScore:       r.Scoring.TotalScore,
			AvailableWeight:  r.Scoring.AvailableWeight,
			Components:       components,
			RecentForm:       r.RecentForm,
		})
	}

	return &WebPayload{
		RaceID:     result.RaceID,
		Meta:       result.Meta,
		Runners:    runners,
		Picks:      result.Picks,
		Confidence: result.Confidence,
		Disclaimer: Disclaimer,
	}
}

// displayName turns a component key like "market_expectation" into
// "Market Expectation".
func displayName(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
