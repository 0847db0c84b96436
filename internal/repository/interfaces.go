// Package repository defines data access interfaces and their
// PostgreSQL implementations.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/hoopsight/internal/models"
)

// TeamRepository handles team storage and rating persistence
type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Team, error)
	GetByCode(ctx context.Context, code string) (*models.Team, error)
	List(ctx context.Context) ([]*models.Team, error)
	UpdateRating(ctx context.Context, id uuid.UUID, rating float64) error
	UpdateStatsProfile(ctx context.Context, id uuid.UUID, paceRating, netRating float64, defensiveRank int) error
}

// GameRepository handles game schedule and result storage
type GameRepository interface {
	Upsert(ctx context.Context, game *models.Game) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Game, error)
	GetByDate(ctx context.Context, date time.Time) ([]*models.Game, error)
	GetFinalsBySeason(ctx context.Context, seasonYear int) ([]*models.Game, error)
	GetRecentFinalsByTeam(ctx context.Context, teamID uuid.UUID, before time.Time, limit int) ([]*models.Game, error)
	GetHeadToHead(ctx context.Context, teamA, teamB uuid.UUID, seasonYear int) ([]*models.Game, error)
	UpdateResult(ctx context.Context, id uuid.UUID, homeScore, awayScore int) error
}

// OddsRepository handles bookmaker line snapshots
type OddsRepository interface {
	Insert(ctx context.Context, line *models.OddsLine) error
	InsertBatch(ctx context.Context, lines []*models.OddsLine) error
	GetLatestByGame(ctx context.Context, gameID uuid.UUID) ([]*models.OddsLine, error)
	GetOpeningLine(ctx context.Context, gameID uuid.UUID, bookmaker string) (*models.OddsLine, error)
	GetCurrentLine(ctx context.Context, gameID uuid.UUID, bookmaker string) (*models.OddsLine, error)
}

// PredictionRepository handles stored model predictions
type PredictionRepository interface {
	Create(ctx context.Context, prediction *models.Prediction) error
	GetByGameID(ctx context.Context, gameID uuid.UUID) (*models.Prediction, error)
	GetByDateRange(ctx context.Context, start, end time.Time) ([]*models.Prediction, error)
}

// ValueSignalRepository handles emitted value bet recommendations
type ValueSignalRepository interface {
	Create(ctx context.Context, signal *models.ValueSignal) error
	GetByGameID(ctx context.Context, gameID uuid.UUID) ([]*models.ValueSignal, error)
	GetSince(ctx context.Context, since time.Time) ([]*models.ValueSignal, error)
}

// PropRepository handles player averages and posted prop lines
type PropRepository interface {
	UpsertAverages(ctx context.Context, averages *models.PlayerAverages) error
	GetAverages(ctx context.Context, playerID, statType string) (*models.PlayerAverages, error)
	ListAveragesByTeam(ctx context.Context, teamID uuid.UUID) ([]*models.PlayerAverages, error)
	InsertPropLine(ctx context.Context, line *models.PropLine) error
	GetPropLinesByGame(ctx context.Context, gameID uuid.UUID) ([]*models.PropLine, error)
}
