package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultRating is the rating assigned to every team and pitcher before any
// games have been rated, and the league mean that offseason regression pulls
// ratings back toward.
const DefaultRating = 1500.0

// Team represents a canonical team record for a single sport
type Team struct {
	ID           uuid.UUID `db:"id" json:"id" validate:"required,uuid4"`
	Sport        string    `db:"sport" json:"sport" validate:"required"`
	Name         string    `db:"name" json:"name" validate:"required"`
	Mascot       string    `db:"mascot" json:"mascot"`
	Abbreviation string    `db:"abbreviation" json:"abbreviation"`
	Rating       float64   `db:"rating" json:"rating"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// FullName returns the team name with mascot appended when one is recorded
func (t *Team) FullName() string {
	if t.Mascot == "" {
		return t.Name
	}
	return t.Name + " " + t.Mascot
}

// Pitcher represents an individual starting pitcher rating (baseball only).
// Pitcher ratings follow the same scale as team ratings but regress with a
// smaller offseason factor.
type Pitcher struct {
	ID        uuid.UUID `db:"id" json:"id" validate:"required,uuid4"`
	TeamID    uuid.UUID `db:"team_id" json:"team_id" validate:"required,uuid4"`
	Name      string    `db:"name" json:"name" validate:"required"`
	Rating    float64   `db:"rating" json:"rating"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
