package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Christbey/picksports-sub004/internal/database"
	"github.com/Christbey/picksports-sub004/internal/models"
)

// PostgresPitcherRepository implements PitcherRepository for PostgreSQL
type PostgresPitcherRepository struct {
	db *database.DB
}

// NewPostgresPitcherRepository creates a new pitcher repository
func NewPostgresPitcherRepository(db *database.DB) PitcherRepository {
	return &PostgresPitcherRepository{db: db}
}

// ListBySport retrieves all pitchers whose team plays a sport
func (r *PostgresPitcherRepository) ListBySport(ctx context.Context, sport string) ([]*models.Pitcher, error) {
	query := `
		SELECT p.id, p.team_id, p.name, p.rating, p.updated_at
		FROM pitchers p
		JOIN teams t ON t.id = p.team_id
		WHERE t.sport = $1
		ORDER BY p.name ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query, sport)
	if err != nil {
		return nil, fmt.Errorf("failed to query pitchers: %w", err)
	}
	defer rows.Close()

	var pitchers []*models.Pitcher
	for rows.Next() {
		p := &models.Pitcher{}
		if err := rows.Scan(&p.ID, &p.TeamID, &p.Name, &p.Rating, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pitcher: %w", err)
		}
		pitchers = append(pitchers, p)
	}
	return pitchers, rows.Err()
}

// UpdateRating sets a pitcher's current rating
func (r *PostgresPitcherRepository) UpdateRating(ctx context.Context, id uuid.UUID, rating float64) error {
	query := `UPDATE pitchers SET rating = $2, updated_at = NOW() WHERE id = $1`

	tag, err := r.db.GetPool().Exec(ctx, query, id, rating)
	if err != nil {
		return fmt.Errorf("failed to update pitcher rating: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
