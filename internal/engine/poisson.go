// Package engine implements the real-time multi-market probability engine.
// Every entry point is a pure function of a MatchSnapshot: the engine holds
// no state across invocations and the same snapshot always produces the
// same output.
package engine

import "math"

// poissonPMF returns P(X = k) for X ~ Poisson(lambda). The term is computed
// in log space via Lgamma so large lambdas neither overflow the factorial
// nor lose precision the way a naive term-by-term sum does.
func poissonPMF(k int, lambda float64) float64 {
	if k < 0 {
		return 0
	}
	if lambda <= 0 {
		if k == 0 {
			return 1
		}
		return 0
	}
	lg, _ := math.Lgamma(float64(k) + 1)
	return math.Exp(float64(k)*math.Log(lambda) - lambda - lg)
}

// poissonCDF returns P(X <= k) for X ~ Poisson(lambda)
func poissonCDF(k int, lambda float64) float64 {
	if k < 0 {
		return 0
	}
	if lambda <= 0 {
		return 1
	}
	sum := 0.0
	for i := 0; i <= k; i++ {
		sum += poissonPMF(i, lambda)
	}
	if sum > 1 {
		sum = 1
	}
	return sum
}

// poissonSurvival returns P(X >= k), the complement used for Over lines
func poissonSurvival(k int, lambda float64) float64 {
	return 1 - poissonCDF(k-1, lambda)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
