package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Christbey/picksports-sub004/internal/database"
	"github.com/Christbey/picksports-sub004/internal/models"
)

// PostgresEloHistoryRepository implements EloHistoryRepository for PostgreSQL
type PostgresEloHistoryRepository struct {
	db *database.DB
}

// NewPostgresEloHistoryRepository creates a new rating history repository
func NewPostgresEloHistoryRepository(db *database.DB) EloHistoryRepository {
	return &PostgresEloHistoryRepository{db: db}
}

// Create appends one rating snapshot. The (game_id, team_id) unique
// constraint makes concurrent sweeps racing on the same game benign.
func (r *PostgresEloHistoryRepository) Create(ctx context.Context, history *models.EloRatingHistory) error {
	query := `
		INSERT INTO elo_rating_history (id, game_id, team_id, rating, rating_change)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (game_id, team_id) DO NOTHING
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		history.ID, history.GameID, history.TeamID, history.Rating, history.RatingChange,
	)
	if err != nil {
		return fmt.Errorf("failed to create rating history: %w", err)
	}
	return nil
}

// Exists reports whether a game has already been rated for a team
func (r *PostgresEloHistoryRepository) Exists(ctx context.Context, gameID, teamID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM elo_rating_history WHERE game_id = $1 AND team_id = $2)`

	var exists bool
	if err := r.db.GetPool().QueryRow(ctx, query, gameID, teamID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check rating history: %w", err)
	}
	return exists, nil
}

// ListByTeam retrieves a team's most recent rating snapshots
func (r *PostgresEloHistoryRepository) ListByTeam(ctx context.Context, teamID uuid.UUID, limit int) ([]*models.EloRatingHistory, error) {
	query := `
		SELECT h.id, h.game_id, h.team_id, h.rating, h.rating_change, h.created_at
		FROM elo_rating_history h
		JOIN games g ON g.id = h.game_id
		WHERE h.team_id = $1
		ORDER BY g.game_date DESC
		LIMIT $2
	`

	rows, err := r.db.GetPool().Query(ctx, query, teamID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query rating history: %w", err)
	}
	defer rows.Close()

	var history []*models.EloRatingHistory
	for rows.Next() {
		h := &models.EloRatingHistory{}
		err := rows.Scan(&h.ID, &h.GameID, &h.TeamID, &h.Rating, &h.RatingChange, &h.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rating history: %w", err)
		}
		history = append(history, h)
	}
	return history, rows.Err()
}

// DeleteByGame removes a game's history rows so it can be explicitly re-rated
func (r *PostgresEloHistoryRepository) DeleteByGame(ctx context.Context, gameID uuid.UUID) error {
	query := `DELETE FROM elo_rating_history WHERE game_id = $1`

	if _, err := r.db.GetPool().Exec(ctx, query, gameID); err != nil {
		return fmt.Errorf("failed to delete rating history: %w", err)
	}
	return nil
}
