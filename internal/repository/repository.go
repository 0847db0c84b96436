package repository

import (
	"fmt"

	"github.com/yourusername/hoopsight/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Team        TeamRepository
	Game        GameRepository
	Odds        OddsRepository
	Prediction  PredictionRepository
	ValueSignal ValueSignalRepository
	Prop        PropRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Team:        NewPostgresTeamRepository(db),
		Game:        NewPostgresGameRepository(db),
		Odds:        NewPostgresOddsRepository(db),
		Prediction:  NewPostgresPredictionRepository(db),
		ValueSignal: NewPostgresValueSignalRepository(db),
		Prop:        NewPostgresPropRepository(db),
	}, nil
}
