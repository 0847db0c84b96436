package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/hoopsight/internal/models"
)

func finalGame(homeID, awayID uuid.UUID, homeScore, awayScore int) *models.Game {
	return &models.Game{
		ID:         uuid.New(),
		SeasonYear: 2026,
		GameDate:   time.Date(2026, 1, 10, 19, 0, 0, 0, time.UTC),
		HomeTeamID: homeID,
		AwayTeamID: awayID,
		HomeScore:  &homeScore,
		AwayScore:  &awayScore,
		Status:     models.GameStatusFinal,
	}
}

func spreadLine(gameID uuid.UUID, homeSpread float64) *models.OddsLine {
	return &models.OddsLine{
		ID:         uuid.New(),
		GameID:     gameID,
		Bookmaker:  "pinnacle",
		FetchedAt:  time.Now(),
		HomeSpread: &homeSpread,
	}
}

func TestEvaluateRangeGradesWinnerAndSpread(t *testing.T) {
	homeID, awayID := uuid.New(), uuid.New()
	game := finalGame(homeID, awayID, 110, 100)

	pred := &models.Prediction{
		ID:                 uuid.New(),
		GameID:             game.ID,
		HomeWinProbability: 0.65,
		AwayWinProbability: 0.35,
		PredictedSpread:    -8.0,
		Confidence:         0.8,
		PredictedWinnerID:  homeID,
		PredictedAt:        time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC),
	}

	start := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	predictionRepo := &mockPredictionRepo{}
	predictionRepo.On("GetByDateRange", mock.Anything, start, end).Return([]*models.Prediction{pred}, nil)

	gameRepo := &mockGameRepo{}
	gameRepo.On("GetByID", mock.Anything, game.ID).Return(game, nil)

	oddsRepo := &mockOddsRepo{}
	// Home favored by 6.5 at close; the model liked home by 8, home won
	// by 10 and covered.
	oddsRepo.On("GetLatestByGame", mock.Anything, game.ID).Return([]*models.OddsLine{spreadLine(game.ID, -6.5)}, nil)

	svc := NewAccuracyService(gameRepo, predictionRepo, oddsRepo, testLogger())

	report, err := svc.EvaluateRange(context.Background(), start, end)
	require.NoError(t, err)

	assert.Equal(t, 1, report.GamesEvaluated)
	assert.Equal(t, 1, report.WinnerCorrect)
	assert.InDelta(t, 1.0, report.WinnerAccuracy, 1e-9)
	assert.Equal(t, 1, report.SpreadWins)
	assert.Equal(t, 0, report.SpreadLosses)
	assert.InDelta(t, 1.0, report.SpreadAccuracy, 1e-9)
}

func TestEvaluateRangeLandingOnLineIsPush(t *testing.T) {
	homeID, awayID := uuid.New(), uuid.New()
	game := finalGame(homeID, awayID, 110, 100)

	pred := &models.Prediction{
		ID:                uuid.New(),
		GameID:            game.ID,
		PredictedSpread:   -12.0,
		PredictedWinnerID: homeID,
		PredictedAt:       time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC),
	}

	start := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	predictionRepo := &mockPredictionRepo{}
	predictionRepo.On("GetByDateRange", mock.Anything, start, end).Return([]*models.Prediction{pred}, nil)

	gameRepo := &mockGameRepo{}
	gameRepo.On("GetByID", mock.Anything, game.ID).Return(game, nil)

	oddsRepo := &mockOddsRepo{}
	// Home won by exactly the closing number.
	oddsRepo.On("GetLatestByGame", mock.Anything, game.ID).Return([]*models.OddsLine{spreadLine(game.ID, -10.0)}, nil)

	svc := NewAccuracyService(gameRepo, predictionRepo, oddsRepo, testLogger())

	report, err := svc.EvaluateRange(context.Background(), start, end)
	require.NoError(t, err)

	assert.Equal(t, 1, report.SpreadPushes)
	assert.Equal(t, 0, report.SpreadWins)
	assert.Equal(t, 0, report.SpreadLosses)
	assert.Zero(t, report.SpreadAccuracy)
}

func TestEvaluateRangeSkipsUnfinishedGames(t *testing.T) {
	homeID, awayID := uuid.New(), uuid.New()
	game := scheduledGame(homeID, awayID, time.Date(2026, 1, 10, 19, 0, 0, 0, time.UTC))

	pred := &models.Prediction{
		ID:                uuid.New(),
		GameID:            game.ID,
		PredictedWinnerID: homeID,
		PredictedAt:       time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC),
	}

	start := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	predictionRepo := &mockPredictionRepo{}
	predictionRepo.On("GetByDateRange", mock.Anything, start, end).Return([]*models.Prediction{pred}, nil)

	gameRepo := &mockGameRepo{}
	gameRepo.On("GetByID", mock.Anything, game.ID).Return(game, nil)

	svc := NewAccuracyService(gameRepo, predictionRepo, &mockOddsRepo{}, testLogger())

	report, err := svc.EvaluateRange(context.Background(), start, end)
	require.NoError(t, err)
	assert.Zero(t, report.GamesEvaluated)
}
