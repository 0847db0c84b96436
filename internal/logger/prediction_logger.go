// Package logger provides structured logging for the prediction pipeline.
package logger

import (
	"github.com/sirupsen/logrus"
)

// PredictionLogger provides dedicated structured logging for model
// outputs and value signals.
type PredictionLogger struct {
	*logrus.Entry
}

// NewPredictionLogger creates a new prediction logger.
func NewPredictionLogger(baseLogger *logrus.Logger) *PredictionLogger {
	return &PredictionLogger{
		Entry: baseLogger.WithField("component", "prediction"),
	}
}

// LogGamePrediction logs a completed game prediction.
func (pl *PredictionLogger) LogGamePrediction(gameID, homeTeam, awayTeam, winner string, homeProb, spread, confidence float64) {
	pl.WithFields(logrus.Fields{
		"game_id":          gameID,
		"home_team":        homeTeam,
		"away_team":        awayTeam,
		"predicted_winner": winner,
		"home_probability": homeProb,
		"predicted_spread": spread,
		"confidence":       confidence,
	}).Info("Game prediction recorded")
}

// LogValueSignal logs a value bet recommendation.
func (pl *PredictionLogger) LogValueSignal(gameID, bookmaker, betType string, odds int, expectedValue, edge, kellyFraction float64) {
	pl.WithFields(logrus.Fields{
		"game_id":        gameID,
		"bookmaker":      bookmaker,
		"bet_type":       betType,
		"odds":           odds,
		"expected_value": expectedValue,
		"edge":           edge,
		"kelly_fraction": kellyFraction,
	}).Info("Value signal emitted")
}

// LogRatingUpdate logs a rating change after a game result.
func (pl *PredictionLogger) LogRatingUpdate(teamCode string, oldRating, newRating float64, gameID string) {
	pl.WithFields(logrus.Fields{
		"team":       teamCode,
		"old_rating": oldRating,
		"new_rating": newRating,
		"game_id":    gameID,
	}).Debug("Rating updated")
}

// LogPropPrediction logs a player prop recommendation.
func (pl *PredictionLogger) LogPropPrediction(playerID, statType, recommendation string, line, predicted, confidence float64) {
	pl.WithFields(logrus.Fields{
		"player_id":      playerID,
		"stat_type":      statType,
		"recommendation": recommendation,
		"line":           line,
		"predicted":      predicted,
		"confidence":     confidence,
	}).Info("Prop prediction recorded")
}
