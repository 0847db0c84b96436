package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/hoopsight/internal/metrics"
	"github.com/yourusername/hoopsight/internal/models"
	"github.com/yourusername/hoopsight/internal/repository"
)

// SpreadResult grades one against-the-spread pick.
type SpreadResult string

// Spread grading outcomes. A game landing exactly on the line is a push
// and excluded from accuracy.
const (
	SpreadWin  SpreadResult = "WIN"
	SpreadLoss SpreadResult = "LOSS"
	SpreadPush SpreadResult = "PUSH"
)

// AccuracyReport summarizes prediction performance over a window.
type AccuracyReport struct {
	GamesEvaluated int     `json:"games_evaluated"`
	WinnerCorrect  int     `json:"winner_correct"`
	WinnerAccuracy float64 `json:"winner_accuracy"`
	SpreadWins     int     `json:"spread_wins"`
	SpreadLosses   int     `json:"spread_losses"`
	SpreadPushes   int     `json:"spread_pushes"`
	SpreadAccuracy float64 `json:"spread_accuracy"`
}

// AccuracyService grades stored predictions against final scores.
type AccuracyService struct {
	gameRepo       repository.GameRepository
	predictionRepo repository.PredictionRepository
	oddsRepo       repository.OddsRepository
	logger         *logrus.Logger
}

// NewAccuracyService creates a new accuracy service
func NewAccuracyService(
	gameRepo repository.GameRepository,
	predictionRepo repository.PredictionRepository,
	oddsRepo repository.OddsRepository,
	logger *logrus.Logger,
) *AccuracyService {
	return &AccuracyService{
		gameRepo:       gameRepo,
		predictionRepo: predictionRepo,
		oddsRepo:       oddsRepo,
		logger:         logger,
	}
}

// EvaluateRange grades every prediction made inside the window whose
// game has since gone final.
func (s *AccuracyService) EvaluateRange(ctx context.Context, start, end time.Time) (*AccuracyReport, error) {
	predictions, err := s.predictionRepo.GetByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load predictions: %w", err)
	}

	report := &AccuracyReport{}
	for _, pred := range predictions {
		game, err := s.gameRepo.GetByID(ctx, pred.GameID)
		if err != nil {
			s.logger.WithError(err).WithField("game_id", pred.GameID).Warn("Prediction references missing game")
			continue
		}
		if !game.IsFinal() {
			continue
		}

		report.GamesEvaluated++

		actualWinnerID := game.HomeTeamID
		if !game.HomeWon() {
			actualWinnerID = game.AwayTeamID
		}
		if pred.PredictedWinnerID == actualWinnerID {
			report.WinnerCorrect++
		}

		switch s.gradeSpread(ctx, pred, game) {
		case SpreadWin:
			report.SpreadWins++
		case SpreadLoss:
			report.SpreadLosses++
		case SpreadPush:
			report.SpreadPushes++
		}
	}

	if report.GamesEvaluated > 0 {
		report.WinnerAccuracy = float64(report.WinnerCorrect) / float64(report.GamesEvaluated)
	}
	if decided := report.SpreadWins + report.SpreadLosses; decided > 0 {
		report.SpreadAccuracy = float64(report.SpreadWins) / float64(decided)
	}

	metrics.UpdateAccuracy(report.WinnerAccuracy, report.SpreadAccuracy)
	s.logger.WithFields(logrus.Fields{
		"games":           report.GamesEvaluated,
		"winner_accuracy": report.WinnerAccuracy,
		"spread_record":   fmt.Sprintf("%d-%d-%d", report.SpreadWins, report.SpreadLosses, report.SpreadPushes),
	}).Info("Accuracy evaluation complete")

	return report, nil
}

// gradeSpread grades the model's side of the closing spread. The model
// picks home whenever its predicted margin beats the line; the pick wins
// if that side covers, and a game landing exactly on the line pushes.
func (s *AccuracyService) gradeSpread(ctx context.Context, pred *models.Prediction, game *models.Game) SpreadResult {
	line := s.closingSpread(ctx, game)
	if line == nil {
		return SpreadPush
	}

	predictedMargin := -pred.PredictedSpread
	actualMargin := float64(game.HomeMargin())

	coverMargin := actualMargin + *line
	if coverMargin == 0 {
		return SpreadPush
	}

	pickedHome := predictedMargin > -*line
	homeCovered := coverMargin > 0
	if pickedHome == homeCovered {
		return SpreadWin
	}
	return SpreadLoss
}

// closingSpread returns the most recent home spread posted for the game
// at any bookmaker, or nil if no spread market was stored.
func (s *AccuracyService) closingSpread(ctx context.Context, game *models.Game) *float64 {
	lines, err := s.oddsRepo.GetLatestByGame(ctx, game.ID)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			s.logger.WithError(err).WithField("game_id", game.ID).Debug("Failed to load closing lines")
		}
		return nil
	}

	var best *models.OddsLine
	for _, line := range lines {
		if line.HomeSpread == nil {
			continue
		}
		if best == nil || line.FetchedAt.After(best.FetchedAt) {
			best = line
		}
	}
	if best == nil {
		return nil
	}
	return best.HomeSpread
}
