package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Christbey/picksports-sub004/internal/database"
	"github.com/Christbey/picksports-sub004/internal/models"
)

// PostgresGameContextRepository reads precomputed schedule-context rows.
// Rows are maintained by the ingestion pipeline; games without a row predict
// from ratings and efficiency alone.
type PostgresGameContextRepository struct {
	db *database.DB
}

// NewPostgresGameContextRepository creates a new game context repository
func NewPostgresGameContextRepository(db *database.DB) GameContextRepository {
	return &PostgresGameContextRepository{db: db}
}

// ForGame retrieves the schedule context for a game
func (r *PostgresGameContextRepository) ForGame(ctx context.Context, game *models.Game) (*models.GameContext, error) {
	query := `
		SELECT home_rest_days, away_rest_days, home_recent_form, away_recent_form,
		       home_split_adjust, away_split_adjust, turnover_margin_diff
		FROM game_contexts WHERE game_id = $1
	`

	gc := &models.GameContext{}
	err := r.db.GetPool().QueryRow(ctx, query, game.ID).Scan(
		&gc.HomeRestDays, &gc.AwayRestDays, &gc.HomeRecentForm, &gc.AwayRecentForm,
		&gc.HomeSplitAdjust, &gc.AwaySplitAdjust, &gc.TurnoverMarginDiff,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game context: %w", err)
	}
	return gc, nil
}
