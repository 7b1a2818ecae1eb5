package models

import (
	"time"

	"github.com/google/uuid"
)

// TeamEfficiency holds precomputed per-team rate stats for one season.
// These are an input to prediction generation; the core reads them but does
// not recompute them.
type TeamEfficiency struct {
	ID                 uuid.UUID `db:"id" json:"id" validate:"required,uuid4"`
	TeamID             uuid.UUID `db:"team_id" json:"team_id" validate:"required,uuid4"`
	Season             int       `db:"season" json:"season" validate:"required"`
	OffensiveRating    float64   `db:"offensive_rating" json:"offensive_rating"`
	DefensiveRating    float64   `db:"defensive_rating" json:"defensive_rating"`
	StrengthOfSchedule float64   `db:"strength_of_schedule" json:"strength_of_schedule"`
	Tempo              float64   `db:"tempo" json:"tempo"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

// NetRating returns offensive minus defensive rating
func (e *TeamEfficiency) NetRating() float64 {
	return e.OffensiveRating - e.DefensiveRating
}

// GameContext carries the schedule-context adjustments that feed a prediction.
// Each term is small and bounded by the generator.
type GameContext struct {
	HomeRestDays       int     `json:"home_rest_days"`
	AwayRestDays       int     `json:"away_rest_days"`
	HomeRecentForm     float64 `json:"home_recent_form"`
	AwayRecentForm     float64 `json:"away_recent_form"`
	HomeSplitAdjust    float64 `json:"home_split_adjust"`
	AwaySplitAdjust    float64 `json:"away_split_adjust"`
	TurnoverMarginDiff float64 `json:"turnover_margin_diff"`
}
