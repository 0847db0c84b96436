// Package service implements the application workflows that connect
// external providers, the prediction engine, and storage.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/hoopsight/internal/datasource"
	"github.com/yourusername/hoopsight/internal/engine/rating"
	"github.com/yourusername/hoopsight/internal/metrics"
	"github.com/yourusername/hoopsight/internal/models"
	"github.com/yourusername/hoopsight/internal/repository"
)

// gameNamespace derives stable game UUIDs from provider IDs so repeated
// refreshes upsert instead of duplicating rows.
var gameNamespace = uuid.MustParse("2f9d1c4e-8a35-4c1b-9f60-7f1b2a6d4e11")

// IngestionService pulls schedule, results, stats, and market data from
// the configured providers into storage.
type IngestionService struct {
	stats    datasource.StatsProvider
	odds     datasource.OddsProvider
	teamRepo repository.TeamRepository
	gameRepo repository.GameRepository
	oddsRepo repository.OddsRepository
	propRepo repository.PropRepository
	logger   *logrus.Logger

	// teamIDs caches code -> ID lookups for the life of a refresh run.
	teamIDs map[string]uuid.UUID
}

// NewIngestionService creates a new ingestion service
func NewIngestionService(
	stats datasource.StatsProvider,
	odds datasource.OddsProvider,
	repos *repository.Repositories,
	logger *logrus.Logger,
) *IngestionService {
	return &IngestionService{
		stats:    stats,
		odds:     odds,
		teamRepo: repos.Team,
		gameRepo: repos.Game,
		oddsRepo: repos.Odds,
		propRepo: repos.Prop,
		logger:   logger,
	}
}

// GameIDForSource returns the stable UUID for a provider game ID.
func GameIDForSource(sourceID string) uuid.UUID {
	return uuid.NewSHA1(gameNamespace, []byte(sourceID))
}

// RefreshGames fetches games in the window and upserts schedule and results
func (s *IngestionService) RefreshGames(ctx context.Context, startDate, endDate time.Time) (int, error) {
	games, err := s.stats.FetchGames(ctx, startDate, endDate)
	if err != nil {
		metrics.RecordProviderFetch(s.stats.Name(), false)
		return 0, fmt.Errorf("failed to fetch games: %w", err)
	}
	metrics.RecordProviderFetch(s.stats.Name(), true)

	s.teamIDs = nil
	stored := 0
	for _, g := range games {
		homeID, err := s.resolveTeam(ctx, g.HomeTeamCode)
		if err != nil {
			s.logger.WithError(err).WithField("team", g.HomeTeamCode).Warn("Skipping game with unresolvable home team")
			continue
		}
		awayID, err := s.resolveTeam(ctx, g.AwayTeamCode)
		if err != nil {
			s.logger.WithError(err).WithField("team", g.AwayTeamCode).Warn("Skipping game with unresolvable away team")
			continue
		}

		game := &models.Game{
			ID:         GameIDForSource(g.SourceID),
			SeasonYear: g.SeasonYear,
			GameDate:   g.GameDate,
			HomeTeamID: homeID,
			AwayTeamID: awayID,
			HomeScore:  g.HomeScore,
			AwayScore:  g.AwayScore,
			IsPlayoff:  g.IsPlayoff,
			Status:     g.Status,
		}
		if err := s.gameRepo.Upsert(ctx, game); err != nil {
			return stored, fmt.Errorf("failed to store game %s: %w", g.SourceID, err)
		}
		stored++
	}

	s.logger.WithFields(logrus.Fields{
		"fetched": len(games),
		"stored":  stored,
	}).Info("Game refresh complete")

	return stored, nil
}

// RefreshOdds fetches current market lines for a day and stores snapshots
func (s *IngestionService) RefreshOdds(ctx context.Context, date time.Time) (int, error) {
	quotes, err := s.odds.FetchGameOdds(ctx, date)
	if err != nil {
		metrics.RecordProviderFetch(s.odds.Name(), false)
		return 0, fmt.Errorf("failed to fetch odds: %w", err)
	}
	metrics.RecordProviderFetch(s.odds.Name(), true)

	lines := make([]*models.OddsLine, 0, len(quotes))
	for _, q := range quotes {
		gameID, err := s.matchGame(ctx, date, q.HomeTeamCode, q.AwayTeamCode)
		if err != nil {
			s.logger.WithFields(logrus.Fields{
				"home": q.HomeTeamCode,
				"away": q.AwayTeamCode,
			}).Warn("No stored game matches odds event, skipping")
			continue
		}

		lines = append(lines, &models.OddsLine{
			ID:              uuid.New(),
			GameID:          gameID,
			Bookmaker:       q.Bookmaker,
			FetchedAt:       q.FetchedAt,
			HomeMoneyline:   q.HomeMoneyline,
			AwayMoneyline:   q.AwayMoneyline,
			HomeSpread:      q.HomeSpread,
			HomeSpreadPrice: q.HomeSpreadPrice,
			AwaySpreadPrice: q.AwaySpreadPrice,
			Total:           q.Total,
			OverPrice:       q.OverPrice,
			UnderPrice:      q.UnderPrice,
		})
	}

	if err := s.oddsRepo.InsertBatch(ctx, lines); err != nil {
		return 0, fmt.Errorf("failed to store odds lines: %w", err)
	}

	s.logger.WithField("lines", len(lines)).Info("Odds refresh complete")

	return len(lines), nil
}

// RefreshPropLines fetches posted player prop markets for a day's games
// and stores them keyed to the matched stored game.
func (s *IngestionService) RefreshPropLines(ctx context.Context, date time.Time) (int, error) {
	quotes, err := s.odds.FetchGameOdds(ctx, date)
	if err != nil {
		metrics.RecordProviderFetch(s.odds.Name(), false)
		return 0, fmt.Errorf("failed to fetch odds events: %w", err)
	}
	metrics.RecordProviderFetch(s.odds.Name(), true)

	seen := make(map[string]bool)
	stored := 0
	for _, q := range quotes {
		if seen[q.SourceGameID] {
			continue
		}
		seen[q.SourceGameID] = true

		gameID, err := s.matchGame(ctx, date, q.HomeTeamCode, q.AwayTeamCode)
		if err != nil {
			continue
		}

		propLines, err := s.odds.FetchPropLines(ctx, q.SourceGameID)
		if err != nil {
			s.logger.WithError(err).WithField("event", q.SourceGameID).Warn("Failed to fetch prop lines")
			continue
		}

		for _, p := range propLines {
			line := &models.PropLine{
				ID:         uuid.New(),
				GameID:     gameID,
				PlayerID:   p.PlayerID,
				StatType:   p.StatType,
				Line:       p.Line,
				OverPrice:  p.OverPrice,
				UnderPrice: p.UnderPrice,
				Bookmaker:  p.Bookmaker,
				FetchedAt:  p.FetchedAt,
			}
			if err := s.propRepo.InsertPropLine(ctx, line); err != nil {
				return stored, fmt.Errorf("failed to store prop line: %w", err)
			}
			stored++
		}
	}

	s.logger.WithField("lines", stored).Info("Prop lines refresh complete")

	return stored, nil
}

// RefreshPlayerAverages fetches and stores roster averages for every team
func (s *IngestionService) RefreshPlayerAverages(ctx context.Context) (int, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list teams: %w", err)
	}

	stored := 0
	for _, team := range teams {
		averages, err := s.stats.FetchPlayerAverages(ctx, team.Code)
		if err != nil {
			metrics.RecordProviderFetch(s.stats.Name(), false)
			s.logger.WithError(err).WithField("team", team.Code).Warn("Failed to fetch player averages")
			continue
		}
		metrics.RecordProviderFetch(s.stats.Name(), true)

		for _, a := range averages {
			record := &models.PlayerAverages{
				PlayerID:      a.PlayerID,
				TeamID:        team.ID,
				StatType:      a.StatType,
				SeasonAverage: a.SeasonAverage,
				RecentAverage: a.RecentAverage,
				GamesPlayed:   a.GamesPlayed,
				SeasonMinutes: a.SeasonMinutes,
				BPM:           a.BPM,
				Status:        a.Status,
				UpdatedAt:     time.Now().UTC(),
			}
			if err := s.propRepo.UpsertAverages(ctx, record); err != nil {
				return stored, fmt.Errorf("failed to store averages for %s: %w", a.PlayerID, err)
			}
			stored++
		}
	}

	s.logger.WithField("records", stored).Info("Player averages refresh complete")

	return stored, nil
}

// resolveTeam finds the team for a provider code, creating it with the
// default rating on first sight.
func (s *IngestionService) resolveTeam(ctx context.Context, code string) (uuid.UUID, error) {
	if s.teamIDs == nil {
		s.teamIDs = make(map[string]uuid.UUID)
	}
	if id, ok := s.teamIDs[code]; ok {
		return id, nil
	}

	team, err := s.teamRepo.GetByCode(ctx, code)
	if errors.Is(err, models.ErrNotFound) {
		team = &models.Team{
			ID:        uuid.New(),
			Code:      code,
			Name:      code,
			Rating:    rating.DefaultRating,
			UpdatedAt: time.Now().UTC(),
		}
		if createErr := s.teamRepo.Create(ctx, team); createErr != nil {
			return uuid.Nil, fmt.Errorf("failed to create team %s: %w", code, createErr)
		}
		s.logger.WithField("team", code).Info("Created new team at default rating")
	} else if err != nil {
		return uuid.Nil, err
	}

	s.teamIDs[code] = team.ID
	return team.ID, nil
}

// matchGame finds the stored game for an odds event by date and team codes
func (s *IngestionService) matchGame(ctx context.Context, date time.Time, homeCode, awayCode string) (uuid.UUID, error) {
	homeID, err := s.resolveTeam(ctx, homeCode)
	if err != nil {
		return uuid.Nil, err
	}
	awayID, err := s.resolveTeam(ctx, awayCode)
	if err != nil {
		return uuid.Nil, err
	}

	games, err := s.gameRepo.GetByDate(ctx, date)
	if err != nil {
		return uuid.Nil, err
	}
	for _, g := range games {
		if g.HomeTeamID == homeID && g.AwayTeamID == awayID {
			return g.ID, nil
		}
	}

	return uuid.Nil, models.ErrNotFound
}
