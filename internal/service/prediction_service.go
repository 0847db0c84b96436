package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/hoopsight/internal/engine/factors"
	"github.com/yourusername/hoopsight/internal/engine/prediction"
	"github.com/yourusername/hoopsight/internal/logger"
	"github.com/yourusername/hoopsight/internal/metrics"
	"github.com/yourusername/hoopsight/internal/models"
	"github.com/yourusername/hoopsight/internal/repository"
)

// PredictionOptions tunes the prediction pipeline.
type PredictionOptions struct {
	SeasonYear        int
	HomeAdvantage     float64
	FormWindow        int
	PersistBreakdowns bool
}

// GamePredictionResult pairs a stored game with its model output.
type GamePredictionResult struct {
	Game       *models.Game
	HomeTeam   *models.Team
	AwayTeam   *models.Team
	Prediction prediction.GamePrediction
}

// PredictionService runs the prediction model over a slate of games and
// persists the outputs.
type PredictionService struct {
	teamRepo       repository.TeamRepository
	gameRepo       repository.GameRepository
	predictionRepo repository.PredictionRepository
	propRepo       repository.PropRepository
	opts           PredictionOptions
	logger         *logrus.Logger
	predLogger     *logger.PredictionLogger
}

// NewPredictionService creates a new prediction service
func NewPredictionService(
	teamRepo repository.TeamRepository,
	gameRepo repository.GameRepository,
	predictionRepo repository.PredictionRepository,
	propRepo repository.PropRepository,
	opts PredictionOptions,
	log *logrus.Logger,
) *PredictionService {
	if opts.HomeAdvantage <= 0 {
		opts.HomeAdvantage = prediction.DefaultHomeAdvantage
	}
	if opts.FormWindow <= 0 {
		opts.FormWindow = factors.DefaultFormWindow
	}
	return &PredictionService{
		teamRepo:       teamRepo,
		gameRepo:       gameRepo,
		predictionRepo: predictionRepo,
		propRepo:       propRepo,
		opts:           opts,
		logger:         log,
		predLogger:     logger.NewPredictionLogger(log),
	}
}

// PredictSlate predicts every scheduled game on a calendar day and
// persists the results.
func (s *PredictionService) PredictSlate(ctx context.Context, date time.Time) ([]GamePredictionResult, error) {
	startTime := time.Now()

	games, err := s.gameRepo.GetByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load slate: %w", err)
	}
	metrics.UpdateSlateSize(float64(len(games)))

	var results []GamePredictionResult
	for _, game := range games {
		if game.Status != models.GameStatusScheduled {
			continue
		}

		result, err := s.PredictGame(ctx, game)
		if err != nil {
			s.logger.WithError(err).WithField("game_id", game.ID).Warn("Skipping unpredictable game")
			continue
		}
		results = append(results, *result)
	}

	metrics.RecordPredictionDuration(time.Since(startTime).Seconds())
	s.logger.WithFields(logrus.Fields{
		"date":      date.Format("2006-01-02"),
		"games":     len(games),
		"predicted": len(results),
	}).Info("Slate prediction complete")

	return results, nil
}

// PredictGame predicts a single game and persists the result
func (s *PredictionService) PredictGame(ctx context.Context, game *models.Game) (*GamePredictionResult, error) {
	homeTeam, err := s.teamRepo.GetByID(ctx, game.HomeTeamID)
	if err != nil {
		return nil, fmt.Errorf("failed to load home team: %w", err)
	}
	awayTeam, err := s.teamRepo.GetByID(ctx, game.AwayTeamID)
	if err != nil {
		return nil, fmt.Errorf("failed to load away team: %w", err)
	}

	input, err := s.buildMatchupInput(ctx, game, homeTeam, awayTeam)
	if err != nil {
		return nil, err
	}

	pred := prediction.Predict(input)

	if err := s.persist(ctx, game, pred); err != nil {
		return nil, err
	}

	metrics.RecordPrediction()
	s.predLogger.LogGamePrediction(
		game.ID.String(), homeTeam.Code, awayTeam.Code, pred.PredictedWinner,
		pred.HomeWinProbability, pred.PredictedSpread, pred.Confidence,
	)

	return &GamePredictionResult{
		Game:       game,
		HomeTeam:   homeTeam,
		AwayTeam:   awayTeam,
		Prediction: pred,
	}, nil
}

// buildMatchupInput assembles engine input from stored history. Travel
// context is omitted until a data source carries it; the engine
// substitutes a neutral default.
func (s *PredictionService) buildMatchupInput(ctx context.Context, game *models.Game, homeTeam, awayTeam *models.Team) (prediction.MatchupInput, error) {
	input := prediction.MatchupInput{
		HomeTeamID:    homeTeam.Code,
		AwayTeamID:    awayTeam.Code,
		HomeRating:    homeTeam.Rating,
		AwayRating:    awayTeam.Rating,
		GameDate:      game.GameDate,
		IsPlayoff:     game.IsPlayoff,
		HomeAdvantage: s.opts.HomeAdvantage,
	}

	// Stats profiles default to zero until the first refresh runs.
	if homeTeam.NetRating != 0 || awayTeam.NetRating != 0 {
		input.NetRatings = &prediction.NetRatingContext{
			Home: homeTeam.NetRating,
			Away: awayTeam.NetRating,
		}
	}

	homeInjury, err := s.injuryImpact(ctx, game.HomeTeamID)
	if err != nil {
		return input, fmt.Errorf("failed to load home roster: %w", err)
	}
	awayInjury, err := s.injuryImpact(ctx, game.AwayTeamID)
	if err != nil {
		return input, fmt.Errorf("failed to load away roster: %w", err)
	}
	input.Injury = &prediction.InjuryContext{
		HomeImpact: homeInjury,
		AwayImpact: awayInjury,
	}

	homeRecent, err := s.gameRepo.GetRecentFinalsByTeam(ctx, game.HomeTeamID, game.GameDate, s.opts.FormWindow)
	if err != nil {
		return input, fmt.Errorf("failed to load home form: %w", err)
	}
	awayRecent, err := s.gameRepo.GetRecentFinalsByTeam(ctx, game.AwayTeamID, game.GameDate, s.opts.FormWindow)
	if err != nil {
		return input, fmt.Errorf("failed to load away form: %w", err)
	}

	input.RecentForm = &prediction.FormContext{
		Home: recordFor(game.HomeTeamID, homeRecent),
		Away: recordFor(game.AwayTeamID, awayRecent),
	}

	rest := prediction.RestContext{
		HomeDays: restDays(game.GameDate, homeRecent),
		AwayDays: restDays(game.GameDate, awayRecent),
	}
	input.Rest = &rest

	meetings, err := s.gameRepo.GetHeadToHead(ctx, game.HomeTeamID, game.AwayTeamID, game.SeasonYear)
	if err != nil {
		return input, fmt.Errorf("failed to load head-to-head: %w", err)
	}
	h2h := prediction.HeadToHeadContext{}
	for _, m := range meetings {
		if !m.IsFinal() {
			continue
		}
		winnerID := m.HomeTeamID
		if !m.HomeWon() {
			winnerID = m.AwayTeamID
		}
		if winnerID == game.HomeTeamID {
			h2h.HomeWins++
		} else {
			h2h.AwayWins++
		}
	}
	input.HeadToHead = &h2h

	return input, nil
}

// injuryImpact scores a team's lost production from sidelined players
// using stored minutes-weighted BPM.
func (s *PredictionService) injuryImpact(ctx context.Context, teamID uuid.UUID) (float64, error) {
	roster, err := s.propRepo.ListAveragesByTeam(ctx, teamID)
	if err != nil {
		return 0, err
	}

	players := make([]factors.PlayerImpact, 0, len(roster))
	for _, p := range roster {
		players = append(players, factors.PlayerImpact{
			PlayerID: p.PlayerID,
			BPM:      p.BPM,
			Minutes:  p.SeasonMinutes,
			Out:      p.Status == models.PlayerStatusOut,
		})
	}

	return factors.InjuryImpact(players), nil
}

func (s *PredictionService) persist(ctx context.Context, game *models.Game, pred prediction.GamePrediction) error {
	winnerID := game.HomeTeamID
	if pred.PredictedWinner == pred.AwayTeamID {
		winnerID = game.AwayTeamID
	}

	stored := &models.Prediction{
		ID:                 uuid.New(),
		GameID:             game.ID,
		HomeWinProbability: pred.HomeWinProbability,
		AwayWinProbability: pred.AwayWinProbability,
		PredictedSpread:    pred.PredictedSpread,
		Confidence:         pred.Confidence,
		PredictedWinnerID:  winnerID,
		PredictedAt:        time.Now().UTC(),
	}

	if s.opts.PersistBreakdowns {
		breakdown, err := json.Marshal(pred.Factors)
		if err != nil {
			return fmt.Errorf("failed to encode factor breakdown: %w", err)
		}
		stored.Factors = breakdown
	}

	if err := s.predictionRepo.Create(ctx, stored); err != nil {
		return fmt.Errorf("failed to store prediction: %w", err)
	}

	return nil
}

// recordFor tallies a team's wins and losses over its recent games
func recordFor(teamID uuid.UUID, recent []*models.Game) factors.Record {
	record := factors.Record{}
	for _, g := range recent {
		if !g.IsFinal() {
			continue
		}
		won := g.HomeWon() == (g.HomeTeamID == teamID)
		if won {
			record.Wins++
		} else {
			record.Losses++
		}
	}
	return record
}

// restDays returns full days between a team's most recent game and the
// upcoming game. Zero is a back-to-back; a team with no recent games
// gets a normal one-day gap.
func restDays(gameDate time.Time, recent []*models.Game) int {
	if len(recent) == 0 {
		return 1
	}
	// Recent games are ordered newest first.
	last := recent[0].GameDate
	days := int(gameDate.Sub(last).Hours()/24) - 1
	if days < 0 {
		days = 0
	}
	return days
}
