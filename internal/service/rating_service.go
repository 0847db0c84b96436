package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/hoopsight/internal/datasource"
	"github.com/yourusername/hoopsight/internal/engine/props"
	"github.com/yourusername/hoopsight/internal/engine/rating"
	"github.com/yourusername/hoopsight/internal/logger"
	"github.com/yourusername/hoopsight/internal/metrics"
	"github.com/yourusername/hoopsight/internal/models"
	"github.com/yourusername/hoopsight/internal/repository"
)

// RatingService owns team rating lifecycle: chronological rebuilds from
// final scores, season-boundary regression, and stats profile refreshes.
type RatingService struct {
	teamRepo      repository.TeamRepository
	gameRepo      repository.GameRepository
	stats         datasource.StatsProvider
	homeAdvantage float64
	logger        *logrus.Logger
	predLogger    *logger.PredictionLogger
}

// NewRatingService creates a new rating service
func NewRatingService(
	teamRepo repository.TeamRepository,
	gameRepo repository.GameRepository,
	stats datasource.StatsProvider,
	homeAdvantage float64,
	log *logrus.Logger,
) *RatingService {
	if homeAdvantage <= 0 {
		homeAdvantage = 100.0
	}
	return &RatingService{
		teamRepo:      teamRepo,
		gameRepo:      gameRepo,
		stats:         stats,
		homeAdvantage: homeAdvantage,
		logger:        log,
		predLogger:    logger.NewPredictionLogger(log),
	}
}

// RebuildSeason replays every final game of a season in chronological
// order from the default rating and persists the resulting ratings.
// Replay order matters: the same games in a different order produce
// different ratings.
func (s *RatingService) RebuildSeason(ctx context.Context, seasonYear int) error {
	startTime := time.Now()

	games, err := s.gameRepo.GetFinalsBySeason(ctx, seasonYear)
	if err != nil {
		return fmt.Errorf("failed to load season games: %w", err)
	}

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list teams: %w", err)
	}

	ratings := make(map[string]float64, len(teams))
	for _, team := range teams {
		ratings[team.ID.String()] = rating.DefaultRating
	}

	codeByID := make(map[string]string, len(teams))
	for _, team := range teams {
		codeByID[team.ID.String()] = team.Code
	}

	applied := 0
	for _, game := range games {
		if !game.IsFinal() {
			continue
		}

		homeKey := game.HomeTeamID.String()
		awayKey := game.AwayTeamID.String()
		homeRating, ok := ratings[homeKey]
		if !ok {
			homeRating = rating.DefaultRating
		}
		awayRating, ok := ratings[awayKey]
		if !ok {
			awayRating = rating.DefaultRating
		}

		margin := math.Abs(float64(game.HomeMargin()))
		homeWon := game.HomeWon()

		newHome, err := rating.UpdateRating(homeRating, awayRating, homeWon, margin, game.IsPlayoff, -s.homeAdvantage)
		if err != nil {
			s.logger.WithError(err).WithField("game_id", game.ID).Warn("Skipping unratable game")
			continue
		}
		newAway, err := rating.UpdateRating(awayRating, homeRating, !homeWon, margin, game.IsPlayoff, s.homeAdvantage)
		if err != nil {
			s.logger.WithError(err).WithField("game_id", game.ID).Warn("Skipping unratable game")
			continue
		}

		ratings[homeKey] = newHome
		ratings[awayKey] = newAway
		applied++
		metrics.RecordRatingUpdate()
		s.predLogger.LogRatingUpdate(codeByID[homeKey], homeRating, newHome, game.ID.String())
		s.predLogger.LogRatingUpdate(codeByID[awayKey], awayRating, newAway, game.ID.String())
	}

	for _, team := range teams {
		newRating := ratings[team.ID.String()]
		if err := s.teamRepo.UpdateRating(ctx, team.ID, newRating); err != nil {
			return fmt.Errorf("failed to persist rating for %s: %w", team.Code, err)
		}
	}

	duration := time.Since(startTime)
	metrics.RecordRatingsRebuildDuration(duration.Seconds())
	s.logger.WithFields(logrus.Fields{
		"season":   seasonYear,
		"games":    applied,
		"teams":    len(teams),
		"duration": duration,
	}).Info("Season ratings rebuild complete")

	return nil
}

// ApplySeasonRegression pulls every team's rating 25% of the way back
// toward the default. Run once at a season boundary.
func (s *RatingService) ApplySeasonRegression(ctx context.Context) error {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list teams: %w", err)
	}

	for _, team := range teams {
		regressed := rating.RegressTowardMean(team.Rating)
		if err := s.teamRepo.UpdateRating(ctx, team.ID, regressed); err != nil {
			return fmt.Errorf("failed to regress rating for %s: %w", team.Code, err)
		}
		s.logger.WithFields(logrus.Fields{
			"team": team.Code,
			"from": team.Rating,
			"to":   regressed,
		}).Debug("Applied season regression")
	}

	s.logger.WithField("teams", len(teams)).Info("Season regression applied")

	return nil
}

// teamProfile collects the season-stat derived figures for one team
// before ranking and persistence.
type teamProfile struct {
	team      *models.Team
	pace      float64
	netRating float64
	adjDRTG   float64
}

// RefreshTeamProfiles recomputes each team's possessions-per-48 pace and
// SOS-adjusted net rating from provider season aggregates, ranks defenses
// by adjusted defensive rating, and persists the lot.
func (s *RatingService) RefreshTeamProfiles(ctx context.Context, seasonYear int) error {
	stats, err := s.stats.FetchTeamStats(ctx, seasonYear)
	if err != nil {
		metrics.RecordProviderFetch(s.stats.Name(), false)
		return fmt.Errorf("failed to fetch team stats: %w", err)
	}
	metrics.RecordProviderFetch(s.stats.Name(), true)

	byCode := make(map[string]datasource.TeamStatsData, len(stats))
	for _, st := range stats {
		byCode[st.TeamCode] = st
	}

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list teams: %w", err)
	}

	var profiles []teamProfile
	for _, team := range teams {
		st, ok := byCode[team.Code]
		if !ok || st.GamesPlayed == 0 {
			continue
		}

		possessions := props.Possessions(
			int(math.Round(st.FieldGoalAttempts)),
			int(math.Round(st.OffensiveRebounds)),
			int(math.Round(st.Turnovers)),
			int(math.Round(st.FreeThrowAttempts)),
		)
		pace := props.Pace(possessions, 48.0)
		if pace <= 0 {
			continue
		}

		ortg := props.PointsPer100(st.PointsScored, possessions)
		drtg := props.PointsPer100(st.PointsAllowed, possessions)
		sosORTG, sosDRTG := rating.ScheduleStrength(st.OpponentWinPct)
		net := rating.AdjustedNetRating(rating.NetRatingInput{
			OffensiveRating:    ortg,
			DefensiveRating:    drtg,
			SOSOffensiveRating: sosORTG,
			SOSDefensiveRating: sosDRTG,
		})

		profiles = append(profiles, teamProfile{
			team:      team,
			pace:      pace,
			netRating: net,
			adjDRTG:   rating.AdjustedDefensiveRating(drtg, sosORTG),
		})
	}

	// Rank 1 is the stingiest defense.
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].adjDRTG < profiles[j].adjDRTG
	})

	for i, p := range profiles {
		if err := s.teamRepo.UpdateStatsProfile(ctx, p.team.ID, p.pace, p.netRating, i+1); err != nil {
			return fmt.Errorf("failed to persist stats profile for %s: %w", p.team.Code, err)
		}
	}

	s.logger.WithField("teams", len(profiles)).Info("Team profiles refresh complete")

	return nil
}
