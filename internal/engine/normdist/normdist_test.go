package normdist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCDF(t *testing.T) {
	tests := []struct {
		z        float64
		expected float64
	}{
		{0, 0.5},
		{1.0, 0.8413},
		{-1.0, 0.1587},
		{1.96, 0.9750},
		{-1.96, 0.0250},
		{3.0, 0.9987},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.expected, CDF(tt.z), 0.0005, "z=%v", tt.z)
	}
}

func TestCDFSymmetry(t *testing.T) {
	for _, z := range []float64{0.1, 0.5, 1.0, 2.5, 4.0} {
		assert.InDelta(t, 1.0, CDF(z)+CDF(-z), 1e-9, "z=%v", z)
	}
}

func TestSurvivalComplementsCDF(t *testing.T) {
	for _, z := range []float64{-2, -0.5, 0, 0.5, 2} {
		assert.InDelta(t, 1.0, CDF(z)+Survival(z), 1e-12, "z=%v", z)
	}
}

func TestZScore(t *testing.T) {
	assert.InDelta(t, 1.5, ZScore(13, 10, 2), 1e-12)
	assert.InDelta(t, -2.0, ZScore(6, 10, 2), 1e-12)
	assert.Equal(t, 0.0, ZScore(13, 10, 0), "degenerate std dev carries no signal")
}
