// Package normdist provides a closed-form standard normal CDF used by
// the prop model and the spread/total cover-probability estimates.
package normdist

import "math"

// Abramowitz & Stegun 26.2.17 rational approximation constants.
const (
	p  = 0.2316419
	b1 = 0.319381530
	b2 = -0.356563782
	b3 = 1.781477937
	b4 = -1.821255978
	b5 = 1.330274429
)

// CDF returns P(Z <= z) for a standard normal variable, accurate to
// about 7.5e-8, without any special-function dependency.
func CDF(z float64) float64 {
	if z < 0 {
		return 1.0 - CDF(-z)
	}

	t := 1.0 / (1.0 + p*z)
	poly := t * (b1 + t*(b2+t*(b3+t*(b4+t*b5))))
	pdf := math.Exp(-z*z/2.0) / math.Sqrt(2.0*math.Pi)
	return 1.0 - pdf*poly
}

// Survival returns P(Z > z).
func Survival(z float64) float64 {
	return 1.0 - CDF(z)
}

// ZScore standardizes a value against a mean and standard deviation.
// A zero or negative standard deviation yields 0 (degenerate input
// carries no signal).
func ZScore(value, mean, stdDev float64) float64 {
	if stdDev <= 0 {
		return 0
	}
	return (value - mean) / stdDev
}
