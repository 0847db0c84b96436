package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/hoopsight/internal/engine/prediction"
	"github.com/yourusername/hoopsight/internal/engine/value"
	"github.com/yourusername/hoopsight/internal/models"
)

func intPtr(v int) *int            { return &v }
func floatPtr(v float64) *float64  { return &v }

func valueFixture() GamePredictionResult {
	home := &models.Team{ID: uuid.New(), Code: "BOS", Rating: 1600, PaceRating: 99}
	away := &models.Team{ID: uuid.New(), Code: "MIA", Rating: 1550, PaceRating: 101}
	game := scheduledGame(home.ID, away.ID, time.Date(2026, 1, 15, 19, 0, 0, 0, time.UTC))

	return GamePredictionResult{
		Game:     game,
		HomeTeam: home,
		AwayTeam: away,
		Prediction: prediction.GamePrediction{
			HomeTeamID:         "BOS",
			AwayTeamID:         "MIA",
			HomeWinProbability: 0.58,
			AwayWinProbability: 0.42,
			PredictedSpread:    -2.0,
			Confidence:         0.80,
			PredictedWinner:    "BOS",
		},
	}
}

func TestAnalyzeSlateEmitsSignalAndCapsStake(t *testing.T) {
	result := valueFixture()

	line := &models.OddsLine{
		ID:            uuid.New(),
		GameID:        result.Game.ID,
		Bookmaker:     "pinnacle",
		FetchedAt:     time.Now(),
		HomeMoneyline: intPtr(100),
		AwayMoneyline: intPtr(-120),
	}

	oddsRepo := &mockOddsRepo{}
	oddsRepo.On("GetLatestByGame", mock.Anything, result.Game.ID).Return([]*models.OddsLine{line}, nil)
	oddsRepo.On("GetOpeningLine", mock.Anything, result.Game.ID, "pinnacle").Return(nil, models.ErrNotFound)

	var stored *models.ValueSignal
	signalRepo := &mockSignalRepo{}
	signalRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.ValueSignal")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*models.ValueSignal) }).
		Return(nil)

	svc := NewValueService(&mockTeamRepo{}, oddsRepo, signalRepo, ValueOptions{
		Bankroll:               1000,
		MaxStakePerBet:         50,
		MinConfidenceThreshold: 0.6,
	}, testLogger())

	signals, err := svc.AnalyzeSlate(context.Background(), []GamePredictionResult{result})
	require.NoError(t, err)
	require.Len(t, signals, 1)

	require.NotNil(t, stored)
	assert.Equal(t, string(value.BetHomeMoneyline), stored.BetType)
	assert.Equal(t, 100, stored.Odds)
	assert.InDelta(t, 0.16, stored.ExpectedValue, 1e-9)
	assert.InDelta(t, 0.08, stored.Edge, 1e-9)
	// Kelly of 0.16 on a 1000 bankroll is 160, capped at the max stake.
	assert.True(t, stored.Stake.Equal(decimal.NewFromFloat(50)))
	assert.Equal(t, string(value.MovementStable), stored.LineDirection)
}

func TestAnalyzeSlateSkipsLowConfidencePredictions(t *testing.T) {
	result := valueFixture()
	result.Prediction.Confidence = 0.45

	oddsRepo := &mockOddsRepo{}
	signalRepo := &mockSignalRepo{}

	svc := NewValueService(&mockTeamRepo{}, oddsRepo, signalRepo, ValueOptions{
		Bankroll:               1000,
		MaxStakePerBet:         50,
		MinConfidenceThreshold: 0.6,
	}, testLogger())

	signals, err := svc.AnalyzeSlate(context.Background(), []GamePredictionResult{result})
	require.NoError(t, err)
	assert.Empty(t, signals)
	oddsRepo.AssertNotCalled(t, "GetLatestByGame", mock.Anything, mock.Anything)
}

func TestAnalyzeSlateNoSignalWhenMarketFairlyPriced(t *testing.T) {
	result := valueFixture()
	result.Prediction.HomeWinProbability = 0.52
	result.Prediction.AwayWinProbability = 0.48

	// -110 both sides implies ~52.4% each; neither side has an edge.
	line := &models.OddsLine{
		ID:            uuid.New(),
		GameID:        result.Game.ID,
		Bookmaker:     "pinnacle",
		FetchedAt:     time.Now(),
		HomeMoneyline: intPtr(-110),
		AwayMoneyline: intPtr(-110),
	}

	oddsRepo := &mockOddsRepo{}
	oddsRepo.On("GetLatestByGame", mock.Anything, result.Game.ID).Return([]*models.OddsLine{line}, nil)
	oddsRepo.On("GetOpeningLine", mock.Anything, result.Game.ID, "pinnacle").Return(nil, models.ErrNotFound)

	signalRepo := &mockSignalRepo{}

	svc := NewValueService(&mockTeamRepo{}, oddsRepo, signalRepo, ValueOptions{
		Bankroll:               1000,
		MaxStakePerBet:         50,
		MinConfidenceThreshold: 0.6,
	}, testLogger())

	signals, err := svc.AnalyzeSlate(context.Background(), []GamePredictionResult{result})
	require.NoError(t, err)
	assert.Empty(t, signals)
	signalRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLineDirectionClassifiesSharpHomeMove(t *testing.T) {
	result := valueFixture()

	opening := &models.OddsLine{
		ID: uuid.New(), GameID: result.Game.ID, Bookmaker: "pinnacle",
		FetchedAt:  time.Now().Add(-6 * time.Hour),
		HomeSpread: floatPtr(-2.0),
	}
	current := &models.OddsLine{
		ID: uuid.New(), GameID: result.Game.ID, Bookmaker: "pinnacle",
		FetchedAt:  time.Now(),
		HomeSpread: floatPtr(-4.0),
	}

	oddsRepo := &mockOddsRepo{}
	oddsRepo.On("GetOpeningLine", mock.Anything, result.Game.ID, "pinnacle").Return(opening, nil)
	oddsRepo.On("GetCurrentLine", mock.Anything, result.Game.ID, "pinnacle").Return(current, nil)

	svc := NewValueService(&mockTeamRepo{}, oddsRepo, &mockSignalRepo{}, ValueOptions{}, testLogger())

	direction := svc.lineDirection(context.Background(), result.Game.ID, "pinnacle")
	assert.Equal(t, value.MovementSharpHome, direction)
}

func TestModelTotalRequiresPaceData(t *testing.T) {
	svc := NewValueService(&mockTeamRepo{}, &mockOddsRepo{}, &mockSignalRepo{}, ValueOptions{}, testLogger())

	withPace := svc.modelTotal(
		&models.Team{PaceRating: 100},
		&models.Team{PaceRating: 100},
	)
	// 100 possessions at the league scoring rate for both sides.
	assert.InDelta(t, 220.0, withPace, 1e-9)

	noPace := svc.modelTotal(&models.Team{PaceRating: 100}, &models.Team{})
	assert.Zero(t, noPace)
}
