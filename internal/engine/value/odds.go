// Package value converts market odds and model probabilities into
// expected value, edge, and bet recommendations. Like the rest of the
// engine it is pure: quotes come in, assessments come out.
package value

import "fmt"

// ToDecimalOdds converts American odds to decimal odds.
// +150 becomes 2.50, -150 becomes 1.667.
func ToDecimalOdds(american int) (float64, error) {
	if american == 0 {
		return 0, fmt.Errorf("invalid american odds: cannot be 0")
	}
	if american > 0 {
		return float64(american)/100.0 + 1.0, nil
	}
	return 100.0/float64(-american) + 1.0, nil
}

// ImpliedProbability converts American odds to the market-implied win
// probability. +150 implies 0.40, -150 implies 0.60.
func ImpliedProbability(american int) (float64, error) {
	if american == 0 {
		return 0, fmt.Errorf("invalid american odds: cannot be 0")
	}
	if american > 0 {
		return 100.0 / (float64(american) + 100.0), nil
	}
	abs := float64(-american)
	return abs / (abs + 100.0), nil
}
