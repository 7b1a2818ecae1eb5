package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Christbey/picksports-sub004/internal/database"
	"github.com/Christbey/picksports-sub004/internal/models"
)

// PostgresStatLineRepository implements StatLineRepository for PostgreSQL
type PostgresStatLineRepository struct {
	db *database.DB
}

// NewPostgresStatLineRepository creates a new stat line repository
func NewPostgresStatLineRepository(db *database.DB) StatLineRepository {
	return &PostgresStatLineRepository{db: db}
}

// ListByGame retrieves all player stat lines recorded for a game
func (r *PostgresStatLineRepository) ListByGame(ctx context.Context, gameID uuid.UUID) ([]*models.PlayerStatLine, error) {
	query := `
		SELECT id, game_id, player_id, player_name, points, rebounds, assists,
		       steals, blocks, threes, created_at
		FROM player_stat_lines
		WHERE game_id = $1
		ORDER BY player_name ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to query stat lines: %w", err)
	}
	defer rows.Close()

	var lines []*models.PlayerStatLine
	for rows.Next() {
		line := &models.PlayerStatLine{}
		err := rows.Scan(
			&line.ID, &line.GameID, &line.PlayerID, &line.PlayerName,
			&line.Points, &line.Rebounds, &line.Assists, &line.Steals,
			&line.Blocks, &line.Threes, &line.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stat line: %w", err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}
