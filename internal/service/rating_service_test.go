package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/hoopsight/internal/datasource"
	"github.com/yourusername/hoopsight/internal/models"
)

type stubStatsProvider struct {
	teamStats []datasource.TeamStatsData
}

func (s *stubStatsProvider) FetchGames(_ context.Context, _, _ time.Time) ([]datasource.GameData, error) {
	return nil, nil
}

func (s *stubStatsProvider) FetchTeamStats(_ context.Context, _ int) ([]datasource.TeamStatsData, error) {
	return s.teamStats, nil
}

func (s *stubStatsProvider) FetchPlayerAverages(_ context.Context, _ string) ([]datasource.PlayerAveragesData, error) {
	return nil, nil
}

func (s *stubStatsProvider) Name() string { return "stub" }

func TestRebuildSeasonMovesWinnerUp(t *testing.T) {
	teamA := &models.Team{ID: uuid.New(), Code: "BOS", Rating: 1620}
	teamB := &models.Team{ID: uuid.New(), Code: "MIA", Rating: 1480}

	game := finalGame(teamA.ID, teamB.ID, 110, 100)
	game.GameDate = time.Date(2025, 11, 1, 19, 0, 0, 0, time.UTC)

	gameRepo := &mockGameRepo{}
	gameRepo.On("GetFinalsBySeason", mock.Anything, 2026).Return([]*models.Game{game}, nil)

	stored := make(map[uuid.UUID]float64)
	teamRepo := &mockTeamRepo{}
	teamRepo.On("List", mock.Anything).Return([]*models.Team{teamA, teamB}, nil)
	teamRepo.On("UpdateRating", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			stored[args.Get(1).(uuid.UUID)] = args.Get(2).(float64)
		}).
		Return(nil)

	svc := NewRatingService(teamRepo, gameRepo, &stubStatsProvider{}, 100, testLogger())

	require.NoError(t, svc.RebuildSeason(context.Background(), 2026))
	require.Len(t, stored, 2)

	// The rebuild replays from the default rating; prior stored ratings
	// do not leak in.
	assert.Greater(t, stored[teamA.ID], 1500.0)
	assert.Less(t, stored[teamB.ID], 1500.0)
}

func TestApplySeasonRegressionPullsTowardMean(t *testing.T) {
	team := &models.Team{ID: uuid.New(), Code: "BOS", Rating: 1700}

	teamRepo := &mockTeamRepo{}
	teamRepo.On("List", mock.Anything).Return([]*models.Team{team}, nil)
	teamRepo.On("UpdateRating", mock.Anything, team.ID, 1650.0).Return(nil)

	svc := NewRatingService(teamRepo, &mockGameRepo{}, &stubStatsProvider{}, 100, testLogger())

	require.NoError(t, svc.ApplySeasonRegression(context.Background()))
	teamRepo.AssertExpectations(t)
}

func TestRefreshTeamProfilesComputesPaceAndNetRating(t *testing.T) {
	bos := &models.Team{ID: uuid.New(), Code: "BOS", Rating: 1600}
	mia := &models.Team{ID: uuid.New(), Code: "MIA", Rating: 1500}

	provider := &stubStatsProvider{teamStats: []datasource.TeamStatsData{
		{
			TeamCode:          "BOS",
			GamesPlayed:       50,
			PointsScored:      117.5,
			PointsAllowed:     108.2,
			FieldGoalAttempts: 88,
			OffensiveRebounds: 10,
			Turnovers:         13,
			FreeThrowAttempts: 22,
			OpponentWinPct:    0.55,
		},
		{
			TeamCode:          "MIA",
			GamesPlayed:       50,
			PointsScored:      110.1,
			PointsAllowed:     114.0,
			FieldGoalAttempts: 86,
			OffensiveRebounds: 11,
			Turnovers:         14,
			FreeThrowAttempts: 20,
			OpponentWinPct:    0.48,
		},
	}}

	type profile struct {
		pace float64
		net  float64
		rank int
	}
	stored := make(map[uuid.UUID]profile)
	teamRepo := &mockTeamRepo{}
	teamRepo.On("List", mock.Anything).Return([]*models.Team{bos, mia}, nil)
	teamRepo.On("UpdateStatsProfile", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			stored[args.Get(1).(uuid.UUID)] = profile{
				pace: args.Get(2).(float64),
				net:  args.Get(3).(float64),
				rank: args.Get(4).(int),
			}
		}).
		Return(nil)

	svc := NewRatingService(teamRepo, &mockGameRepo{}, provider, 100, testLogger())

	require.NoError(t, svc.RefreshTeamProfiles(context.Background(), 2026))
	require.Len(t, stored, 2)

	// 88 - 10 + 13 + 0.44*22 = 100.68 possessions over 48 minutes.
	assert.InDelta(t, 100.68, stored[bos.ID].pace, 1e-9)

	// Boston outscores opponents against a tougher slate; Miami is
	// outscored against a softer one.
	assert.Greater(t, stored[bos.ID].net, 0.0)
	assert.Less(t, stored[mia.ID].net, 0.0)

	// Boston concedes fewer points per possession, so it takes rank 1.
	assert.Equal(t, 1, stored[bos.ID].rank)
	assert.Equal(t, 2, stored[mia.ID].rank)
}

func TestRebuildSeasonLogsRatingUpdates(t *testing.T) {
	teamA := &models.Team{ID: uuid.New(), Code: "BOS", Rating: 1620}
	teamB := &models.Team{ID: uuid.New(), Code: "MIA", Rating: 1480}

	game := finalGame(teamA.ID, teamB.ID, 110, 100)
	game.GameDate = time.Date(2025, 11, 1, 19, 0, 0, 0, time.UTC)

	gameRepo := &mockGameRepo{}
	gameRepo.On("GetFinalsBySeason", mock.Anything, 2026).Return([]*models.Game{game}, nil)

	teamRepo := &mockTeamRepo{}
	teamRepo.On("List", mock.Anything).Return([]*models.Team{teamA, teamB}, nil)
	teamRepo.On("UpdateRating", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetLevel(logrus.DebugLevel)

	svc := NewRatingService(teamRepo, gameRepo, &stubStatsProvider{}, 100, log)

	require.NoError(t, svc.RebuildSeason(context.Background(), 2026))

	output := buf.String()
	assert.Contains(t, output, "Rating updated")
	assert.Contains(t, output, "BOS")
	assert.Contains(t, output, "MIA")
}
