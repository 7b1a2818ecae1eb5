package models

import (
	"time"

	"github.com/google/uuid"
)

// Prediction holds the pre-game model output for a single game, plus the live
// overlay while the game is in progress and the grading results once final.
//
// Live fields are non-nil iff the owning game is in an in-progress status.
// Grading fields are non-nil iff the game is final and grading has run;
// re-grading overwrites them in place.
type Prediction struct {
	ID     uuid.UUID `db:"id" json:"id" validate:"required,uuid4"`
	GameID uuid.UUID `db:"game_id" json:"game_id" validate:"required,uuid4"`

	// Input snapshot at generation time
	HomeElo        float64 `db:"home_elo" json:"home_elo"`
	AwayElo        float64 `db:"away_elo" json:"away_elo"`
	EloComponent   float64 `db:"elo_component" json:"elo_component"`
	EffComponent   float64 `db:"efficiency_component" json:"efficiency_component"`
	AdjustmentsSum float64 `db:"adjustments_sum" json:"adjustments_sum"`

	// Derived outputs. Spread is home minus away; positive favors home.
	PredictedSpread float64 `db:"predicted_spread" json:"predicted_spread"`
	PredictedTotal  float64 `db:"predicted_total" json:"predicted_total"`
	WinProbability  float64 `db:"win_probability" json:"win_probability"`
	ConfidenceScore float64 `db:"confidence_score" json:"confidence_score"`

	// Live overlay
	LivePredictedSpread  *float64   `db:"live_predicted_spread" json:"live_predicted_spread"`
	LiveWinProbability   *float64   `db:"live_win_probability" json:"live_win_probability"`
	LivePredictedTotal   *float64   `db:"live_predicted_total" json:"live_predicted_total"`
	LiveSecondsRemaining *int       `db:"live_seconds_remaining" json:"live_seconds_remaining"`
	LiveOutsRemaining    *int       `db:"live_outs_remaining" json:"live_outs_remaining"`
	LiveUpdatedAt        *time.Time `db:"live_updated_at" json:"live_updated_at"`

	// Grading
	ActualSpread  *float64   `db:"actual_spread" json:"actual_spread"`
	ActualTotal   *float64   `db:"actual_total" json:"actual_total"`
	SpreadError   *float64   `db:"spread_error" json:"spread_error"`
	TotalError    *float64   `db:"total_error" json:"total_error"`
	WinnerCorrect *bool      `db:"winner_correct" json:"winner_correct"`
	GradedAt      *time.Time `db:"graded_at" json:"graded_at"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// IsGraded reports whether grading has run for this prediction
func (p *Prediction) IsGraded() bool {
	return p.GradedAt != nil
}

// HasLiveOverlay reports whether a live overlay is currently set
func (p *Prediction) HasLiveOverlay() bool {
	return p.LiveUpdatedAt != nil
}

// ReportRow is one grouped row of the read-only accuracy rollup
type ReportRow struct {
	Sport           string  `db:"sport" json:"sport"`
	Season          int     `db:"season" json:"season"`
	Graded          int     `db:"graded" json:"graded"`
	WinnerHits      int     `db:"winner_hits" json:"winner_hits"`
	MeanSpreadError float64 `db:"mean_spread_error" json:"mean_spread_error"`
	MeanTotalError  float64 `db:"mean_total_error" json:"mean_total_error"`
}

// LiveOverlay is the value written over a prediction while its game is live
type LiveOverlay struct {
	PredictedSpread  float64   `json:"predicted_spread"`
	WinProbability   float64   `json:"win_probability"`
	PredictedTotal   float64   `json:"predicted_total"`
	SecondsRemaining *int      `json:"seconds_remaining,omitempty"`
	OutsRemaining    *int      `json:"outs_remaining,omitempty"`
	UpdatedAt        time.Time `json:"updated_at"`
}
