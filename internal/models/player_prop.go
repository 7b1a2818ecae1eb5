package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Prop markets. Composite markets are a closed set summed from base stats;
// there is no general expression evaluator.
const (
	MarketPoints               = "points"
	MarketRebounds             = "rebounds"
	MarketAssists              = "assists"
	MarketSteals               = "steals"
	MarketBlocks               = "blocks"
	MarketThrees               = "threes"
	MarketPointsRebounds       = "points_rebounds"
	MarketPointsAssists        = "points_assists"
	MarketReboundsAssists      = "rebounds_assists"
	MarketPointsReboundsAssists = "points_rebounds_assists"
	MarketBlocksSteals         = "blocks_steals"
)

// PlayerProp is a player-level market line from an odds provider, graded at
// most once against the realized stat line (guarded by graded_at IS NULL).
type PlayerProp struct {
	ID         uuid.UUID       `db:"id" json:"id" validate:"required,uuid4"`
	GameID     uuid.UUID       `db:"game_id" json:"game_id" validate:"required,uuid4"`
	PlayerName string          `db:"player_name" json:"player_name" validate:"required"`
	PlayerID   *uuid.UUID      `db:"player_id" json:"player_id"`
	Market     string          `db:"market" json:"market" validate:"required"`
	Line       decimal.Decimal `db:"line" json:"line"`

	ActualValue *decimal.Decimal `db:"actual_value" json:"actual_value"`
	HitOver     *bool            `db:"hit_over" json:"hit_over"`
	Error       *decimal.Decimal `db:"error" json:"error"`
	GradedAt    *time.Time       `db:"graded_at" json:"graded_at"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// IsGraded reports whether the prop has already been graded
func (p *PlayerProp) IsGraded() bool {
	return p.GradedAt != nil
}

// PlayerStatLine is a player's realized box-score line for one game
type PlayerStatLine struct {
	ID         uuid.UUID `db:"id" json:"id" validate:"required,uuid4"`
	GameID     uuid.UUID `db:"game_id" json:"game_id" validate:"required,uuid4"`
	PlayerID   uuid.UUID `db:"player_id" json:"player_id" validate:"required,uuid4"`
	PlayerName string    `db:"player_name" json:"player_name" validate:"required"`
	Points     float64   `db:"points" json:"points"`
	Rebounds   float64   `db:"rebounds" json:"rebounds"`
	Assists    float64   `db:"assists" json:"assists"`
	Steals     float64   `db:"steals" json:"steals"`
	Blocks     float64   `db:"blocks" json:"blocks"`
	Threes     float64   `db:"threes" json:"threes"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// StatValue resolves a market name to its value for this stat line.
// Composite markets sum their base stats. Returns ErrUnknownMarket for
// markets outside the supported set.
func (s *PlayerStatLine) StatValue(market string) (float64, error) {
	switch market {
	case MarketPoints:
		return s.Points, nil
	case MarketRebounds:
		return s.Rebounds, nil
	case MarketAssists:
		return s.Assists, nil
	case MarketSteals:
		return s.Steals, nil
	case MarketBlocks:
		return s.Blocks, nil
	case MarketThrees:
		return s.Threes, nil
	case MarketPointsRebounds:
		return s.Points + s.Rebounds, nil
	case MarketPointsAssists:
		return s.Points + s.Assists, nil
	case MarketReboundsAssists:
		return s.Rebounds + s.Assists, nil
	case MarketPointsReboundsAssists:
		return s.Points + s.Rebounds + s.Assists, nil
	case MarketBlocksSteals:
		return s.Blocks + s.Steals, nil
	}
	return 0, ErrUnknownMarket
}
