package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoissonPMF(t *testing.T) {
	tests := []struct {
		name     string
		k        int
		lambda   float64
		expected float64
	}{
		{"zero events zero rate", 0, 0, 1},
		{"positive events zero rate", 3, 0, 0},
		{"negative k", -1, 2.0, 0},
		{"k=0 lambda=1", 0, 1.0, math.Exp(-1)},
		{"k=2 lambda=1.5", 2, 1.5, math.Exp(-1.5) * 1.5 * 1.5 / 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, poissonPMF(tt.k, tt.lambda), 1e-12)
		})
	}
}

func TestPoissonPMFLargeLambdaStable(t *testing.T) {
	// A naive factorial overflows long before k=150; the log-space form
	// must stay finite and mass must still sum toward 1
	sum := 0.0
	for k := 0; k <= 400; k++ {
		p := poissonPMF(k, 150)
		assert.False(t, math.IsNaN(p) || math.IsInf(p, 0))
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestPoissonCDF(t *testing.T) {
	// P(X <= 1) for lambda 1.2 is e^-1.2 * (1 + 1.2)
	expected := math.Exp(-1.2) * 2.2
	assert.InDelta(t, expected, poissonCDF(1, 1.2), 1e-12)

	assert.Equal(t, 0.0, poissonCDF(-1, 2.0))
	assert.Equal(t, 1.0, poissonCDF(5, 0))
}

func TestPoissonSurvivalComplementsCDF(t *testing.T) {
	for k := 0; k <= 6; k++ {
		total := poissonCDF(k-1, 2.3) + poissonSurvival(k, 2.3)
		assert.InDelta(t, 1.0, total, 1e-12)
	}
}
