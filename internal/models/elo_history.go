package models

import (
	"time"

	"github.com/google/uuid"
)

// EloRatingHistory records a team's rating after a single rated game.
// Append-only; at most one row exists per (game_id, team_id).
type EloRatingHistory struct {
	ID           uuid.UUID `db:"id" json:"id" validate:"required,uuid4"`
	GameID       uuid.UUID `db:"game_id" json:"game_id" validate:"required,uuid4"`
	TeamID       uuid.UUID `db:"team_id" json:"team_id" validate:"required,uuid4"`
	Rating       float64   `db:"rating" json:"rating"`
	RatingChange float64   `db:"rating_change" json:"rating_change"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// PreGameRating reconstructs the rating the team carried into the game
func (h *EloRatingHistory) PreGameRating() float64 {
	return h.Rating - h.RatingChange
}
