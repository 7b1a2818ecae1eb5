package repository

import (
	"fmt"

	"github.com/Christbey/picksports-sub004/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Team       TeamRepository
	Pitcher    PitcherRepository
	Game       GameRepository
	EloHistory EloHistoryRepository
	Prediction PredictionRepository
	Prop       PropRepository
	StatLine   StatLineRepository
	Efficiency EfficiencyRepository
	Context    GameContextRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Team:       NewPostgresTeamRepository(db),
		Pitcher:    NewPostgresPitcherRepository(db),
		Game:       NewPostgresGameRepository(db),
		EloHistory: NewPostgresEloHistoryRepository(db),
		Prediction: NewPostgresPredictionRepository(db),
		Prop:       NewPostgresPropRepository(db),
		StatLine:   NewPostgresStatLineRepository(db),
		Efficiency: NewPostgresEfficiencyRepository(db),
		Context:    NewPostgresGameContextRepository(db),
	}, nil
}
