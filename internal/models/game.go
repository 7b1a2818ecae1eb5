package models

import (
	"time"

	"github.com/google/uuid"
)

// Game status values as produced by score ingestion
const (
	StatusScheduled  = "scheduled"
	StatusInProgress = "in_progress"
	StatusHalftime   = "halftime"
	StatusEndPeriod  = "end_period"
	StatusFinal      = "final"
)

// Game represents a single scheduled or played game between two teams
type Game struct {
	ID         uuid.UUID `db:"id" json:"id" validate:"required,uuid4"`
	Sport      string    `db:"sport" json:"sport" validate:"required"`
	Season     int       `db:"season" json:"season" validate:"required"`
	GameDate   time.Time `db:"game_date" json:"game_date" validate:"required"`
	HomeTeamID uuid.UUID `db:"home_team_id" json:"home_team_id" validate:"required,uuid4"`
	AwayTeamID uuid.UUID `db:"away_team_id" json:"away_team_id" validate:"required,uuid4"`
	Status     string    `db:"status" json:"status" validate:"oneof=scheduled in_progress halftime end_period final"`
	// Period is the current quarter/half/period, or the inning for baseball.
	Period *int `db:"period" json:"period"`
	// Clock is the remaining time in the current period as mm:ss. Empty for
	// out-based sports, which use OutsRecorded instead.
	Clock        string     `db:"clock" json:"clock"`
	OutsRecorded *int       `db:"outs_recorded" json:"outs_recorded"`
	HomeScore    *int       `db:"home_score" json:"home_score"`
	AwayScore    *int       `db:"away_score" json:"away_score"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// IsFinal reports whether the game has completed
func (g *Game) IsFinal() bool {
	return g.Status == StatusFinal
}

// IsLive reports whether the game is in one of the in-progress states
func (g *Game) IsLive() bool {
	switch g.Status {
	case StatusInProgress, StatusHalftime, StatusEndPeriod:
		return true
	}
	return false
}

// HasScores reports whether both scores have been recorded
func (g *Game) HasScores() bool {
	return g.HomeScore != nil && g.AwayScore != nil
}

// Margin returns home score minus away score. Callers must check HasScores first.
func (g *Game) Margin() int {
	return *g.HomeScore - *g.AwayScore
}
