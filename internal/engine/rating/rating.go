// Package rating implements an Elo-style rating system for team strength.
// All functions are pure: callers own persistence and pass the current
// rating in, receiving the new rating out. Updates for one team must be
// applied in game-chronological order.
package rating

import (
	"fmt"
	"math"
)

const (
	// DefaultRating is the starting rating for a new team and the mean
	// that RegressTowardMean pulls toward between seasons.
	DefaultRating = 1500.0

	// KRegular and KPlayoff are the step-size constants for regular
	// season and elevated-stakes games respectively.
	KRegular = 20.0
	KPlayoff = 24.0

	// RegressionFraction is the share of the distance to DefaultRating
	// removed at a season boundary.
	RegressionFraction = 0.25

	// Margin-of-victory dampening constants. The multiplier shrinks as
	// the rating gap further confirms an already-expected outcome,
	// preventing rating inflation from predictable blowouts.
	movC = 2.2
	movc = 0.001
)

// ExpectedWinProbability returns the probability that a team rated
// ratingA beats a team rated ratingB, on the standard logistic curve
// with a 400-point denominator. The result is strictly inside (0, 1).
func ExpectedWinProbability(ratingA, ratingB float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (ratingB-ratingA)/400.0))
}

// MarginOfVictoryMultiplier returns the dampened margin bonus for a
// decisive result. eloDiff is the winner's rating minus the loser's
// rating; larger positive values (an expected blowout) shrink the
// multiplier.
func MarginOfVictoryMultiplier(pointDiff float64, eloDiff float64) float64 {
	margin := math.Abs(pointDiff)
	return math.Log(margin+1.0) * (movC / (movc*eloDiff + movC))
}

// UpdateRating applies one game result to a team's rating and returns
// the new rating. homeAdvantage is additive and signed: pass a positive
// value when the opponent is at home, a negative value when the team
// being updated is at home. pointDiff is the absolute score margin and
// must be nonzero; this domain has no ties.
func UpdateRating(teamRating, opponentRating float64, won bool, pointDiff float64, isPlayoff bool, homeAdvantage float64) (float64, error) {
	if pointDiff == 0 {
		return teamRating, fmt.Errorf("update rating: point differential must be nonzero")
	}

	adjustedOpponent := opponentRating + homeAdvantage
	expected := ExpectedWinProbability(teamRating, adjustedOpponent)

	actual := 0.0
	eloDiff := adjustedOpponent - teamRating
	if won {
		actual = 1.0
		eloDiff = teamRating - adjustedOpponent
	}

	k := KRegular
	if isPlayoff {
		k = KPlayoff
	}

	mov := MarginOfVictoryMultiplier(pointDiff, eloDiff)
	return teamRating + k*mov*(actual-expected), nil
}

// RegressTowardMean pulls a rating back toward DefaultRating by
// RegressionFraction. Applied once between rating periods, never
// mid-season.
func RegressTowardMean(teamRating float64) float64 {
	return teamRating + RegressionFraction*(DefaultRating-teamRating)
}
