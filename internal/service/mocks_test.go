package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/yourusername/hoopsight/internal/models"
)

type mockTeamRepo struct{ mock.Mock }

func (m *mockTeamRepo) Create(ctx context.Context, team *models.Team) error {
	return m.Called(ctx, team).Error(0)
}

func (m *mockTeamRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *mockTeamRepo) GetByCode(ctx context.Context, code string) (*models.Team, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *mockTeamRepo) List(ctx context.Context) ([]*models.Team, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Team), args.Error(1)
}

func (m *mockTeamRepo) UpdateRating(ctx context.Context, id uuid.UUID, rating float64) error {
	return m.Called(ctx, id, rating).Error(0)
}

func (m *mockTeamRepo) UpdateStatsProfile(ctx context.Context, id uuid.UUID, paceRating, netRating float64, defensiveRank int) error {
	return m.Called(ctx, id, paceRating, netRating, defensiveRank).Error(0)
}

type mockGameRepo struct{ mock.Mock }

func (m *mockGameRepo) Upsert(ctx context.Context, game *models.Game) error {
	return m.Called(ctx, game).Error(0)
}

func (m *mockGameRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Game, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Game), args.Error(1)
}

func (m *mockGameRepo) GetByDate(ctx context.Context, date time.Time) ([]*models.Game, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Game), args.Error(1)
}

func (m *mockGameRepo) GetFinalsBySeason(ctx context.Context, seasonYear int) ([]*models.Game, error) {
	args := m.Called(ctx, seasonYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Game), args.Error(1)
}

func (m *mockGameRepo) GetRecentFinalsByTeam(ctx context.Context, teamID uuid.UUID, before time.Time, limit int) ([]*models.Game, error) {
	args := m.Called(ctx, teamID, before, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Game), args.Error(1)
}

func (m *mockGameRepo) GetHeadToHead(ctx context.Context, teamA, teamB uuid.UUID, seasonYear int) ([]*models.Game, error) {
	args := m.Called(ctx, teamA, teamB, seasonYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Game), args.Error(1)
}

func (m *mockGameRepo) UpdateResult(ctx context.Context, id uuid.UUID, homeScore, awayScore int) error {
	return m.Called(ctx, id, homeScore, awayScore).Error(0)
}

type mockOddsRepo struct{ mock.Mock }

func (m *mockOddsRepo) Insert(ctx context.Context, line *models.OddsLine) error {
	return m.Called(ctx, line).Error(0)
}

func (m *mockOddsRepo) InsertBatch(ctx context.Context, lines []*models.OddsLine) error {
	return m.Called(ctx, lines).Error(0)
}

func (m *mockOddsRepo) GetLatestByGame(ctx context.Context, gameID uuid.UUID) ([]*models.OddsLine, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.OddsLine), args.Error(1)
}

func (m *mockOddsRepo) GetOpeningLine(ctx context.Context, gameID uuid.UUID, bookmaker string) (*models.OddsLine, error) {
	args := m.Called(ctx, gameID, bookmaker)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OddsLine), args.Error(1)
}

func (m *mockOddsRepo) GetCurrentLine(ctx context.Context, gameID uuid.UUID, bookmaker string) (*models.OddsLine, error) {
	args := m.Called(ctx, gameID, bookmaker)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OddsLine), args.Error(1)
}

type mockPredictionRepo struct{ mock.Mock }

func (m *mockPredictionRepo) Create(ctx context.Context, prediction *models.Prediction) error {
	return m.Called(ctx, prediction).Error(0)
}

func (m *mockPredictionRepo) GetByGameID(ctx context.Context, gameID uuid.UUID) (*models.Prediction, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Prediction), args.Error(1)
}

func (m *mockPredictionRepo) GetByDateRange(ctx context.Context, start, end time.Time) ([]*models.Prediction, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Prediction), args.Error(1)
}

type mockSignalRepo struct{ mock.Mock }

func (m *mockSignalRepo) Create(ctx context.Context, signal *models.ValueSignal) error {
	return m.Called(ctx, signal).Error(0)
}

func (m *mockSignalRepo) GetByGameID(ctx context.Context, gameID uuid.UUID) ([]*models.ValueSignal, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ValueSignal), args.Error(1)
}

func (m *mockSignalRepo) GetSince(ctx context.Context, since time.Time) ([]*models.ValueSignal, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ValueSignal), args.Error(1)
}

type mockPropRepo struct{ mock.Mock }

func (m *mockPropRepo) UpsertAverages(ctx context.Context, averages *models.PlayerAverages) error {
	return m.Called(ctx, averages).Error(0)
}

func (m *mockPropRepo) GetAverages(ctx context.Context, playerID, statType string) (*models.PlayerAverages, error) {
	args := m.Called(ctx, playerID, statType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlayerAverages), args.Error(1)
}

func (m *mockPropRepo) ListAveragesByTeam(ctx context.Context, teamID uuid.UUID) ([]*models.PlayerAverages, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PlayerAverages), args.Error(1)
}

func (m *mockPropRepo) InsertPropLine(ctx context.Context, line *models.PropLine) error {
	return m.Called(ctx, line).Error(0)
}

func (m *mockPropRepo) GetPropLinesByGame(ctx context.Context, gameID uuid.UUID) ([]*models.PropLine, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PropLine), args.Error(1)
}
