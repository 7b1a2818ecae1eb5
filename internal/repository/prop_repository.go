package repository

import (
	"context"
	"fmt"

	"github.com/Christbey/picksports-sub004/internal/database"
	"github.com/Christbey/picksports-sub004/internal/models"
)

// PostgresPropRepository implements PropRepository for PostgreSQL
type PostgresPropRepository struct {
	db *database.DB
}

// NewPostgresPropRepository creates a new prop repository
func NewPostgresPropRepository(db *database.DB) PropRepository {
	return &PostgresPropRepository{db: db}
}

// ListUngraded retrieves ungraded props tied to finished games with scores
func (r *PostgresPropRepository) ListUngraded(ctx context.Context, sport string, season *int) ([]*models.PlayerProp, error) {
	query := `
		SELECT pp.id, pp.game_id, pp.player_name, pp.player_id, pp.market,
		       pp.line, pp.actual_value, pp.hit_over, pp.error, pp.graded_at,
		       pp.created_at
		FROM player_props pp
		JOIN games g ON g.id = pp.game_id
		WHERE pp.graded_at IS NULL
		  AND g.sport = $1 AND g.status = 'final'
		  AND g.home_score IS NOT NULL AND g.away_score IS NOT NULL
		  AND ($2::int IS NULL OR g.season = $2)
		ORDER BY g.game_date ASC, pp.id ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query, sport, season)
	if err != nil {
		return nil, fmt.Errorf("failed to query ungraded props: %w", err)
	}
	defer rows.Close()

	var props []*models.PlayerProp
	for rows.Next() {
		prop := &models.PlayerProp{}
		err := rows.Scan(
			&prop.ID, &prop.GameID, &prop.PlayerName, &prop.PlayerID, &prop.Market,
			&prop.Line, &prop.ActualValue, &prop.HitOver, &prop.Error, &prop.GradedAt,
			&prop.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prop: %w", err)
		}
		props = append(props, prop)
	}
	return props, rows.Err()
}

// SaveGrade persists a prop's grade. The graded_at IS NULL guard makes
// concurrent graders racing on the same prop a benign double-write.
func (r *PostgresPropRepository) SaveGrade(ctx context.Context, prop *models.PlayerProp) error {
	query := `
		UPDATE player_props SET
			player_id = $2,
			actual_value = $3,
			hit_over = $4,
			error = $5,
			graded_at = $6
		WHERE id = $1 AND graded_at IS NULL
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		prop.ID, prop.PlayerID, prop.ActualValue, prop.HitOver, prop.Error, prop.GradedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save prop grade: %w", err)
	}
	return nil
}
