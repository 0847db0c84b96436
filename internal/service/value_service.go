package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/hoopsight/internal/engine/props"
	"github.com/yourusername/hoopsight/internal/engine/rating"
	"github.com/yourusername/hoopsight/internal/engine/value"
	"github.com/yourusername/hoopsight/internal/logger"
	"github.com/yourusername/hoopsight/internal/metrics"
	"github.com/yourusername/hoopsight/internal/models"
	"github.com/yourusername/hoopsight/internal/repository"
)

// ValueOptions tunes signal filtering and sizing.
type ValueOptions struct {
	Bankroll               float64
	MaxStakePerBet         float64
	MinConfidenceThreshold float64
}

// ValueService joins stored predictions with current market lines and
// emits value signals for mispriced markets.
type ValueService struct {
	teamRepo   repository.TeamRepository
	oddsRepo   repository.OddsRepository
	signalRepo repository.ValueSignalRepository
	opts       ValueOptions
	logger     *logrus.Logger
	predLogger *logger.PredictionLogger
}

// NewValueService creates a new value service
func NewValueService(
	teamRepo repository.TeamRepository,
	oddsRepo repository.OddsRepository,
	signalRepo repository.ValueSignalRepository,
	opts ValueOptions,
	log *logrus.Logger,
) *ValueService {
	return &ValueService{
		teamRepo:   teamRepo,
		oddsRepo:   oddsRepo,
		signalRepo: signalRepo,
		opts:       opts,
		logger:     log,
		predLogger: logger.NewPredictionLogger(log),
	}
}

// AnalyzeSlate scans each predicted game's markets and stores a signal
// for every bet that clears both value thresholds.
func (s *ValueService) AnalyzeSlate(ctx context.Context, results []GamePredictionResult) ([]*models.ValueSignal, error) {
	metrics.UpdateBankroll(s.opts.Bankroll)

	var signals []*models.ValueSignal
	for _, result := range results {
		if result.Prediction.Confidence < s.opts.MinConfidenceThreshold {
			s.logger.WithFields(logrus.Fields{
				"game_id":    result.Game.ID,
				"confidence": result.Prediction.Confidence,
			}).Debug("Prediction below confidence threshold, skipping markets")
			continue
		}

		gameSignals, err := s.analyzeGame(ctx, result)
		if err != nil {
			s.logger.WithError(err).WithField("game_id", result.Game.ID).Warn("Failed to analyze game markets")
			continue
		}
		signals = append(signals, gameSignals...)
	}

	s.logger.WithField("signals", len(signals)).Info("Value analysis complete")

	return signals, nil
}

func (s *ValueService) analyzeGame(ctx context.Context, result GamePredictionResult) ([]*models.ValueSignal, error) {
	lines, err := s.oddsRepo.GetLatestByGame(ctx, result.Game.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load market lines: %w", err)
	}
	if len(lines) == 0 {
		return nil, models.ErrNoOddsForGame
	}

	modelTotal := s.modelTotal(result.HomeTeam, result.AwayTeam)

	var signals []*models.ValueSignal
	for _, line := range lines {
		quote := quoteFromLine(line)
		analysis := value.AnalyzeGame(result.Prediction, modelTotal, quote)

		direction := s.lineDirection(ctx, result.Game.ID, line.Bookmaker)

		for i := range analysis.Assessments {
			assessment := analysis.Assessments[i]
			if !assessment.HasValue {
				continue
			}

			signal := s.buildSignal(result.Game.ID, line.Bookmaker, assessment, direction)
			if err := s.signalRepo.Create(ctx, signal); err != nil {
				return signals, fmt.Errorf("failed to store value signal: %w", err)
			}

			metrics.RecordValueSignal()
			s.predLogger.LogValueSignal(
				result.Game.ID.String(), line.Bookmaker, string(assessment.BetType),
				assessment.Odds, assessment.ExpectedValue, assessment.Edge, signal.KellyFraction,
			)
			signals = append(signals, signal)
		}
	}

	return signals, nil
}

func (s *ValueService) buildSignal(gameID uuid.UUID, bookmaker string, assessment value.ValueAssessment, direction value.MovementDirection) *models.ValueSignal {
	kelly := value.KellyFraction(assessment.ModelProbability, assessment.Odds)

	stake := decimal.NewFromFloat(s.opts.Bankroll).
		Mul(decimal.NewFromFloat(kelly)).
		Round(2)
	maxStake := decimal.NewFromFloat(s.opts.MaxStakePerBet)
	if s.opts.MaxStakePerBet > 0 && stake.GreaterThan(maxStake) {
		stake = maxStake
	}

	return &models.ValueSignal{
		ID:               uuid.New(),
		GameID:           gameID,
		Bookmaker:        bookmaker,
		BetType:          string(assessment.BetType),
		Odds:             assessment.Odds,
		ModelProbability: assessment.ModelProbability,
		ExpectedValue:    assessment.ExpectedValue,
		Edge:             assessment.Edge,
		KellyFraction:    kelly,
		Stake:            stake,
		Explanation:      assessment.Explanation,
		LineDirection:    string(direction),
		CreatedAt:        time.Now().UTC(),
	}
}

// lineDirection compares a bookmaker's opening and current spreads to
// classify where sharp money has pushed the line.
func (s *ValueService) lineDirection(ctx context.Context, gameID uuid.UUID, bookmaker string) value.MovementDirection {
	opening, err := s.oddsRepo.GetOpeningLine(ctx, gameID, bookmaker)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			s.logger.WithError(err).Debug("Failed to load opening line")
		}
		return value.MovementStable
	}
	current, err := s.oddsRepo.GetCurrentLine(ctx, gameID, bookmaker)
	if err != nil {
		return value.MovementStable
	}
	if opening.HomeSpread == nil || current.HomeSpread == nil {
		return value.MovementStable
	}

	movement := value.AnalyzeLineMovement(
		*opening.HomeSpread, *current.HomeSpread,
		derefOrZero(opening.Total), derefOrZero(current.Total),
	)
	return movement.Direction
}

// modelTotal estimates the game total from the teams' paces and the
// league scoring rate. Zero when pace data is missing, which disables
// totals markets for the game.
func (s *ValueService) modelTotal(home, away *models.Team) float64 {
	if home.PaceRating <= 0 || away.PaceRating <= 0 {
		return 0
	}
	pace := props.ProjectGamePace(home.PaceRating, away.PaceRating)
	return pace * 2.0 * rating.LeagueAverageRating / 100.0
}

// quoteFromLine flattens a stored line into the analyzer's quote type.
// Missing markets become zero prices, which the analyzer skips.
func quoteFromLine(line *models.OddsLine) value.OddsQuote {
	quote := value.OddsQuote{Bookmaker: line.Bookmaker}
	if line.HasMoneyline() {
		quote.HomeMoneyline = *line.HomeMoneyline
		quote.AwayMoneyline = *line.AwayMoneyline
	}
	if line.HasSpread() {
		quote.HomeSpread = *line.HomeSpread
		quote.HomeSpreadPrice = *line.HomeSpreadPrice
		quote.AwaySpreadPrice = *line.AwaySpreadPrice
	}
	if line.HasTotal() {
		quote.Total = *line.Total
		quote.OverPrice = *line.OverPrice
		quote.UnderPrice = *line.UnderPrice
	}
	return quote
}

func derefOrZero(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
