// Package prediction orchestrates the rating engine and factor
// calculators into a single game prediction: win probabilities, an
// implied point spread, and a confidence score. The package is pure and
// stateless; callers supply ratings and context and own persistence.
package prediction

import (
	"math"
	"time"

	"github.com/yourusername/hoopsight/internal/engine/factors"
	"github.com/yourusername/hoopsight/internal/engine/rating"
)

const (
	// DefaultHomeAdvantage is the rating-point bonus for the home side.
	DefaultHomeAdvantage = 100.0

	// Probability clamp bounds: no game is ever a lock.
	minProbability = 0.05
	maxProbability = 0.95

	// ratingPointsPerSpreadPoint converts a rating gap to a point
	// spread: 25 rating points is roughly one point on the scoreboard.
	ratingPointsPerSpreadPoint = 25.0

	// factorPointsPerUnit converts the factor probability adjustment
	// into spread points.
	factorPointsPerUnit = 50.0

	// playoffConfidenceBoost is the multiplicative confidence bump for
	// elevated-stakes games.
	playoffConfidenceBoost = 1.05

	maxConfidence = 0.95
)

// FormContext is the trailing-window record for each side.
type FormContext struct {
	Home factors.Record `json:"home"`
	Away factors.Record `json:"away"`
}

// RestContext carries rest days since each side's previous game. Zero
// means a back-to-back.
type RestContext struct {
	HomeDays int `json:"home_days"`
	AwayDays int `json:"away_days"`
}

// HeadToHeadContext is the season series tally between the two teams.
type HeadToHeadContext struct {
	HomeWins int `json:"home_wins"`
	AwayWins int `json:"away_wins"`
}

// TravelContext is the away side's travel distance in miles.
type TravelContext struct {
	AwayMiles float64 `json:"away_miles"`
}

// InjuryContext carries externally computed injury impact scores on a
// 0 (healthy) to 1 (maximal) scale.
type InjuryContext struct {
	HomeImpact float64 `json:"home_impact"`
	AwayImpact float64 `json:"away_impact"`
}

// NetRatingContext carries each side's SOS-adjusted net rating in
// points per 100 possessions. Zero means no stored rating.
type NetRatingContext struct {
	Home float64 `json:"home"`
	Away float64 `json:"away"`
}

// MatchupInput is the complete input for one game prediction. All
// contextual sub-objects are optional; a nil pointer resolves to the
// documented neutral default so the model is always computable.
type MatchupInput struct {
	HomeTeamID    string
	AwayTeamID    string
	HomeRating    float64
	AwayRating    float64
	GameDate      time.Time
	IsPlayoff     bool
	HomeAdvantage float64

	RecentForm *FormContext
	Rest       *RestContext
	HeadToHead *HeadToHeadContext
	Travel     *TravelContext
	Injury     *InjuryContext
	NetRatings *NetRatingContext
}

// NewMatchupInput builds a MatchupInput with the default home advantage
// and no contextual data.
func NewMatchupInput(homeTeamID, awayTeamID string, homeRating, awayRating float64) MatchupInput {
	return MatchupInput{
		HomeTeamID:    homeTeamID,
		AwayTeamID:    awayTeamID,
		HomeRating:    homeRating,
		AwayRating:    awayRating,
		HomeAdvantage: DefaultHomeAdvantage,
	}
}

// GamePrediction is the model output for one matchup. Probabilities
// always sum to 1 and sit inside [0.05, 0.95]; a negative spread means
// the home side is favored.
type GamePrediction struct {
	HomeTeamID         string           `json:"home_team_id"`
	AwayTeamID         string           `json:"away_team_id"`
	HomeWinProbability float64          `json:"home_win_probability"`
	AwayWinProbability float64          `json:"away_win_probability"`
	PredictedSpread    float64          `json:"predicted_spread"`
	Confidence         float64          `json:"confidence"`
	PredictedWinner    string           `json:"predicted_winner"`
	Factors            []factors.Result `json:"factors"`
}

// Predict produces a GamePrediction for the matchup. The base
// probability comes from the rating gap plus home advantage; the
// contextual factors shift it by their weighted contributions.
func Predict(in MatchupInput) GamePrediction {
	base := rating.ExpectedWinProbability(in.HomeRating+in.HomeAdvantage, in.AwayRating)

	results := computeFactors(in)
	adjustment := factors.TotalAdjustment(results)

	homeProb := clampProbability(base + adjustment)
	awayProb := 1.0 - homeProb

	ratingDiff := in.HomeRating + in.HomeAdvantage - in.AwayRating
	spread := -(ratingDiff/ratingPointsPerSpreadPoint + adjustment*factorPointsPerUnit)

	confidence := baseConfidence(math.Abs(ratingDiff)) * factors.Alignment(results)
	if in.IsPlayoff {
		confidence *= playoffConfidenceBoost
	}
	if confidence > maxConfidence {
		confidence = maxConfidence
	}

	winner := in.HomeTeamID
	if awayProb > homeProb {
		winner = in.AwayTeamID
	}

	return GamePrediction{
		HomeTeamID:         in.HomeTeamID,
		AwayTeamID:         in.AwayTeamID,
		HomeWinProbability: homeProb,
		AwayWinProbability: awayProb,
		PredictedSpread:    spread,
		Confidence:         confidence,
		PredictedWinner:    winner,
		Factors:            results,
	}
}

// computeFactors evaluates every contextual calculator, substituting
// the neutral default for any missing sub-object.
func computeFactors(in MatchupInput) []factors.Result {
	form := FormContext{}
	if in.RecentForm != nil {
		form = *in.RecentForm
	}

	// A missing rest context means a normal one-day gap for both sides.
	rest := RestContext{HomeDays: 1, AwayDays: 1}
	if in.Rest != nil {
		rest = *in.Rest
	}

	h2h := HeadToHeadContext{}
	if in.HeadToHead != nil {
		h2h = *in.HeadToHead
	}

	travel := TravelContext{}
	if in.Travel != nil {
		travel = *in.Travel
	}

	injury := InjuryContext{}
	if in.Injury != nil {
		injury = *in.Injury
	}

	nets := NetRatingContext{}
	if in.NetRatings != nil {
		nets = *in.NetRatings
	}

	return []factors.Result{
		factors.NewResult(factors.CategoryRecentForm, factors.RecentForm(form.Home, form.Away)),
		factors.NewResult(factors.CategoryRest, factors.Rest(rest.HomeDays, rest.AwayDays)),
		factors.NewResult(factors.CategoryHeadToHead, factors.HeadToHead(h2h.HomeWins, h2h.AwayWins)),
		factors.NewResult(factors.CategoryTravel, factors.Travel(travel.AwayMiles)),
		factors.NewResult(factors.CategoryInjury, factors.Injury(injury.HomeImpact, injury.AwayImpact)),
		factors.NewResult(factors.CategoryNetRating, factors.NetRatingGap(nets.Home, nets.Away)),
	}
}

// baseConfidence maps the absolute rating gap to a confidence score on
// a piecewise-linear curve: flat near even matchups, steeper through
// the middle, saturating at 0.95 for very large gaps.
func baseConfidence(absRatingDiff float64) float64 {
	switch {
	case absRatingDiff <= 100:
		return 0.5 + absRatingDiff*0.001
	case absRatingDiff <= 250:
		return 0.6 + (absRatingDiff-100)*0.0014
	default:
		return math.Min(maxConfidence, 0.81+(absRatingDiff-250)*0.001)
	}
}

func clampProbability(p float64) float64 {
	if p < minProbability {
		return minProbability
	}
	if p > maxProbability {
		return maxProbability
	}
	return p
}
