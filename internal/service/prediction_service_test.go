package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/hoopsight/internal/engine/prediction"
	"github.com/yourusername/hoopsight/internal/models"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// emptyRosterRepo returns a prop repository whose rosters are empty, so
// injury impact stays neutral.
func emptyRosterRepo() *mockPropRepo {
	propRepo := &mockPropRepo{}
	propRepo.On("ListAveragesByTeam", mock.Anything, mock.Anything).Return([]*models.PlayerAverages{}, nil)
	return propRepo
}

func scheduledGame(homeID, awayID uuid.UUID, date time.Time) *models.Game {
	return &models.Game{
		ID:         uuid.New(),
		SeasonYear: 2026,
		GameDate:   date,
		HomeTeamID: homeID,
		AwayTeamID: awayID,
		Status:     models.GameStatusScheduled,
	}
}

func TestPredictGameFavorsStrongerHomeSide(t *testing.T) {
	gameDate := time.Date(2026, 1, 15, 19, 0, 0, 0, time.UTC)
	home := &models.Team{ID: uuid.New(), Code: "BOS", Name: "Boston", Rating: 1650}
	away := &models.Team{ID: uuid.New(), Code: "MIA", Name: "Miami", Rating: 1500}
	game := scheduledGame(home.ID, away.ID, gameDate)

	teamRepo := &mockTeamRepo{}
	teamRepo.On("GetByID", mock.Anything, home.ID).Return(home, nil)
	teamRepo.On("GetByID", mock.Anything, away.ID).Return(away, nil)

	gameRepo := &mockGameRepo{}
	gameRepo.On("GetRecentFinalsByTeam", mock.Anything, home.ID, gameDate, 10).Return([]*models.Game{}, nil)
	gameRepo.On("GetRecentFinalsByTeam", mock.Anything, away.ID, gameDate, 10).Return([]*models.Game{}, nil)
	gameRepo.On("GetHeadToHead", mock.Anything, home.ID, away.ID, 2026).Return([]*models.Game{}, nil)

	var stored *models.Prediction
	predictionRepo := &mockPredictionRepo{}
	predictionRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Prediction")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*models.Prediction) }).
		Return(nil)

	svc := NewPredictionService(teamRepo, gameRepo, predictionRepo, emptyRosterRepo(), PredictionOptions{
		SeasonYear:        2026,
		FormWindow:        10,
		PersistBreakdowns: true,
	}, testLogger())

	result, err := svc.PredictGame(context.Background(), game)
	require.NoError(t, err)

	assert.Equal(t, "BOS", result.Prediction.PredictedWinner)
	assert.Greater(t, result.Prediction.HomeWinProbability, 0.5)
	assert.Greater(t, result.Prediction.Confidence, 0.75)
	assert.Less(t, result.Prediction.PredictedSpread, 0.0)

	require.NotNil(t, stored)
	assert.Equal(t, game.ID, stored.GameID)
	assert.Equal(t, home.ID, stored.PredictedWinnerID)
	assert.NotNil(t, stored.Factors)
	predictionRepo.AssertExpectations(t)
}

func TestPredictSlateSkipsFinalGames(t *testing.T) {
	gameDate := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	home := &models.Team{ID: uuid.New(), Code: "BOS", Rating: 1600}
	away := &models.Team{ID: uuid.New(), Code: "MIA", Rating: 1550}

	scheduled := scheduledGame(home.ID, away.ID, gameDate)
	finalScore := 110
	finalGame := &models.Game{
		ID:         uuid.New(),
		SeasonYear: 2026,
		GameDate:   gameDate,
		HomeTeamID: home.ID,
		AwayTeamID: away.ID,
		HomeScore:  &finalScore,
		AwayScore:  &finalScore,
		Status:     models.GameStatusFinal,
	}

	teamRepo := &mockTeamRepo{}
	teamRepo.On("GetByID", mock.Anything, home.ID).Return(home, nil)
	teamRepo.On("GetByID", mock.Anything, away.ID).Return(away, nil)

	gameRepo := &mockGameRepo{}
	gameRepo.On("GetByDate", mock.Anything, gameDate).Return([]*models.Game{scheduled, finalGame}, nil)
	gameRepo.On("GetRecentFinalsByTeam", mock.Anything, mock.Anything, gameDate, 10).Return([]*models.Game{}, nil)
	gameRepo.On("GetHeadToHead", mock.Anything, home.ID, away.ID, 2026).Return([]*models.Game{}, nil)

	predictionRepo := &mockPredictionRepo{}
	predictionRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := NewPredictionService(teamRepo, gameRepo, predictionRepo, emptyRosterRepo(), PredictionOptions{
		SeasonYear: 2026,
		FormWindow: 10,
	}, testLogger())

	results, err := svc.PredictSlate(context.Background(), gameDate)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, scheduled.ID, results[0].Game.ID)
	predictionRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestBuildMatchupUsesRecentFormAndRest(t *testing.T) {
	gameDate := time.Date(2026, 1, 15, 19, 0, 0, 0, time.UTC)
	home := &models.Team{ID: uuid.New(), Code: "BOS", Rating: 1550}
	away := &models.Team{ID: uuid.New(), Code: "MIA", Rating: 1550}
	game := scheduledGame(home.ID, away.ID, gameDate)

	win, loss := 110, 100
	// Home team on a back-to-back after a win yesterday.
	homeRecent := []*models.Game{{
		ID: uuid.New(), SeasonYear: 2026,
		GameDate:   gameDate.Add(-20 * time.Hour),
		HomeTeamID: home.ID, AwayTeamID: uuid.New(),
		HomeScore: &win, AwayScore: &loss,
		Status: models.GameStatusFinal,
	}}
	// Away team rested three days after a loss.
	awayRecent := []*models.Game{{
		ID: uuid.New(), SeasonYear: 2026,
		GameDate:   gameDate.Add(-4 * 24 * time.Hour),
		HomeTeamID: uuid.New(), AwayTeamID: away.ID,
		HomeScore: &win, AwayScore: &loss,
		Status: models.GameStatusFinal,
	}}

	teamRepo := &mockTeamRepo{}
	teamRepo.On("GetByID", mock.Anything, home.ID).Return(home, nil)
	teamRepo.On("GetByID", mock.Anything, away.ID).Return(away, nil)

	gameRepo := &mockGameRepo{}
	gameRepo.On("GetRecentFinalsByTeam", mock.Anything, home.ID, gameDate, 10).Return(homeRecent, nil)
	gameRepo.On("GetRecentFinalsByTeam", mock.Anything, away.ID, gameDate, 10).Return(awayRecent, nil)
	gameRepo.On("GetHeadToHead", mock.Anything, home.ID, away.ID, 2026).Return([]*models.Game{}, nil)

	svc := NewPredictionService(teamRepo, gameRepo, &mockPredictionRepo{}, emptyRosterRepo(), PredictionOptions{
		SeasonYear: 2026,
		FormWindow: 10,
	}, testLogger())

	input, err := svc.buildMatchupInput(context.Background(), game, home, away)
	require.NoError(t, err)

	require.NotNil(t, input.RecentForm)
	assert.Equal(t, 1, input.RecentForm.Home.Wins)
	assert.Equal(t, 1, input.RecentForm.Away.Losses)

	require.NotNil(t, input.Rest)
	assert.Equal(t, 0, input.Rest.HomeDays)
	assert.Equal(t, 3, input.Rest.AwayDays)
}

func TestBuildMatchupScoresInjuriesFromRosterBPM(t *testing.T) {
	gameDate := time.Date(2026, 1, 15, 19, 0, 0, 0, time.UTC)
	home := &models.Team{ID: uuid.New(), Code: "BOS", Rating: 1550}
	away := &models.Team{ID: uuid.New(), Code: "MIA", Rating: 1550}
	game := scheduledGame(home.ID, away.ID, gameDate)

	// Boston's star is sidelined; Miami's roster is fully available.
	homeRoster := []*models.PlayerAverages{
		{PlayerID: "star", TeamID: home.ID, BPM: 6.0, SeasonMinutes: 36, Status: models.PlayerStatusOut},
		{PlayerID: "wing", TeamID: home.ID, BPM: 1.5, SeasonMinutes: 30, Status: "active"},
	}
	awayRoster := []*models.PlayerAverages{
		{PlayerID: "guard", TeamID: away.ID, BPM: 4.0, SeasonMinutes: 34, Status: "active"},
	}

	teamRepo := &mockTeamRepo{}
	teamRepo.On("GetByID", mock.Anything, home.ID).Return(home, nil)
	teamRepo.On("GetByID", mock.Anything, away.ID).Return(away, nil)

	gameRepo := &mockGameRepo{}
	gameRepo.On("GetRecentFinalsByTeam", mock.Anything, mock.Anything, gameDate, 10).Return([]*models.Game{}, nil)
	gameRepo.On("GetHeadToHead", mock.Anything, home.ID, away.ID, 2026).Return([]*models.Game{}, nil)

	propRepo := &mockPropRepo{}
	propRepo.On("ListAveragesByTeam", mock.Anything, home.ID).Return(homeRoster, nil)
	propRepo.On("ListAveragesByTeam", mock.Anything, away.ID).Return(awayRoster, nil)

	svc := NewPredictionService(teamRepo, gameRepo, &mockPredictionRepo{}, propRepo, PredictionOptions{
		SeasonYear: 2026,
		FormWindow: 10,
	}, testLogger())

	input, err := svc.buildMatchupInput(context.Background(), game, home, away)
	require.NoError(t, err)

	require.NotNil(t, input.Injury)
	assert.Greater(t, input.Injury.HomeImpact, 0.0)
	assert.InDelta(t, 0.0, input.Injury.AwayImpact, 1e-9)

	// Losing the star tilts the prediction away from the home side.
	withStar := input
	withStar.Injury = nil
	assert.Less(t,
		prediction.Predict(input).HomeWinProbability,
		prediction.Predict(withStar).HomeWinProbability,
	)
}

func TestBuildMatchupCarriesStoredNetRatings(t *testing.T) {
	gameDate := time.Date(2026, 1, 15, 19, 0, 0, 0, time.UTC)
	home := &models.Team{ID: uuid.New(), Code: "BOS", Rating: 1550, NetRating: 6.5}
	away := &models.Team{ID: uuid.New(), Code: "MIA", Rating: 1550, NetRating: -2.0}
	game := scheduledGame(home.ID, away.ID, gameDate)

	teamRepo := &mockTeamRepo{}
	teamRepo.On("GetByID", mock.Anything, home.ID).Return(home, nil)
	teamRepo.On("GetByID", mock.Anything, away.ID).Return(away, nil)

	gameRepo := &mockGameRepo{}
	gameRepo.On("GetRecentFinalsByTeam", mock.Anything, mock.Anything, gameDate, 10).Return([]*models.Game{}, nil)
	gameRepo.On("GetHeadToHead", mock.Anything, home.ID, away.ID, 2026).Return([]*models.Game{}, nil)

	svc := NewPredictionService(teamRepo, gameRepo, &mockPredictionRepo{}, emptyRosterRepo(), PredictionOptions{
		SeasonYear: 2026,
		FormWindow: 10,
	}, testLogger())

	input, err := svc.buildMatchupInput(context.Background(), game, home, away)
	require.NoError(t, err)

	require.NotNil(t, input.NetRatings)
	assert.InDelta(t, 6.5, input.NetRatings.Home, 1e-9)
	assert.InDelta(t, -2.0, input.NetRatings.Away, 1e-9)

	// Before the first profile refresh both teams sit at zero and the
	// context stays unset.
	home.NetRating, away.NetRating = 0, 0
	input, err = svc.buildMatchupInput(context.Background(), game, home, away)
	require.NoError(t, err)
	assert.Nil(t, input.NetRatings)
}
