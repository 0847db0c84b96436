package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/hoopsight/internal/engine/props"
	"github.com/yourusername/hoopsight/internal/logger"
	"github.com/yourusername/hoopsight/internal/metrics"
	"github.com/yourusername/hoopsight/internal/models"
	"github.com/yourusername/hoopsight/internal/repository"
)

// PropPredictionResult pairs a posted prop line with the model output.
type PropPredictionResult struct {
	Line       *models.PropLine
	Prediction props.PropPrediction
}

// PropsService projects player props against posted lines.
type PropsService struct {
	teamRepo   repository.TeamRepository
	gameRepo   repository.GameRepository
	propRepo   repository.PropRepository
	logger     *logrus.Logger
	predLogger *logger.PredictionLogger
}

// NewPropsService creates a new props service
func NewPropsService(
	teamRepo repository.TeamRepository,
	gameRepo repository.GameRepository,
	propRepo repository.PropRepository,
	log *logrus.Logger,
) *PropsService {
	return &PropsService{
		teamRepo:   teamRepo,
		gameRepo:   gameRepo,
		propRepo:   propRepo,
		logger:     log,
		predLogger: logger.NewPredictionLogger(log),
	}
}

// PredictGameProps projects every stored prop line for a game.
func (s *PropsService) PredictGameProps(ctx context.Context, game *models.Game) ([]PropPredictionResult, error) {
	homeTeam, err := s.teamRepo.GetByID(ctx, game.HomeTeamID)
	if err != nil {
		return nil, fmt.Errorf("failed to load home team: %w", err)
	}
	awayTeam, err := s.teamRepo.GetByID(ctx, game.AwayTeamID)
	if err != nil {
		return nil, fmt.Errorf("failed to load away team: %w", err)
	}

	lines, err := s.propRepo.GetPropLinesByGame(ctx, game.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load prop lines: %w", err)
	}

	gamePace := 0.0
	if homeTeam.PaceRating > 0 && awayTeam.PaceRating > 0 {
		gamePace = props.ProjectGamePace(homeTeam.PaceRating, awayTeam.PaceRating)
	}

	var results []PropPredictionResult
	for _, line := range lines {
		averages, err := s.propRepo.GetAverages(ctx, line.PlayerID, line.StatType)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				s.logger.WithFields(logrus.Fields{
					"player": line.PlayerID,
					"stat":   line.StatType,
				}).Debug("No stored averages for prop line, skipping")
				continue
			}
			return results, fmt.Errorf("failed to load averages: %w", err)
		}

		isHome := averages.TeamID == game.HomeTeamID
		isBackToBack, err := s.isBackToBack(ctx, game, averages.TeamID)
		if err != nil {
			return results, err
		}

		opponent := awayTeam
		if !isHome {
			opponent = homeTeam
		}

		input := props.PropInput{
			PlayerID:         line.PlayerID,
			StatType:         props.StatType(line.StatType),
			Line:             line.Line,
			SeasonAverage:    averages.SeasonAverage,
			RecentAverage:    averages.RecentAverage,
			GamesPlayed:      averages.GamesPlayed,
			IsHome:           isHome,
			IsBackToBack:     isBackToBack,
			OpponentRank:     opponent.DefensiveRank,
			ProjectedMinutes: averages.SeasonMinutes,
			SeasonMinutes:    averages.SeasonMinutes,
			GamePace:         gamePace,
		}

		pred := props.PredictProp(input)
		metrics.RecordPropPrediction()

		if pred.Recommendation != props.RecommendPass {
			s.predLogger.LogPropPrediction(
				line.PlayerID, line.StatType, string(pred.Recommendation),
				line.Line, pred.PredictedValue, pred.Confidence,
			)
		}

		results = append(results, PropPredictionResult{Line: line, Prediction: pred})
	}

	s.logger.WithFields(logrus.Fields{
		"game_id": game.ID,
		"props":   len(results),
	}).Info("Prop projection complete")

	return results, nil
}

// isBackToBack reports whether the team played the previous day.
func (s *PropsService) isBackToBack(ctx context.Context, game *models.Game, teamID uuid.UUID) (bool, error) {
	recent, err := s.gameRepo.GetRecentFinalsByTeam(ctx, teamID, game.GameDate, 1)
	if err != nil {
		return false, fmt.Errorf("failed to load recent games: %w", err)
	}
	return restDays(game.GameDate, recent) == 0, nil
}
