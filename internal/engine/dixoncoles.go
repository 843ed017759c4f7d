package engine

// maxGridGoals bounds the joint score matrix; mass beyond 10 goals a side
// is negligible for any realistic in-play rate.
const maxGridGoals = 10

// ScoreGrid is the joint probability mass over scorelines (i, j), built
// from two independent Poisson marginals with the Dixon-Coles low-score
// correction applied and renormalized to total mass 1.
type ScoreGrid struct {
	cells [maxGridGoals + 1][maxGridGoals + 1]float64
}

// dixonColesTau returns the correction factor for scoreline (x, y). It is
// 1 everywhere except the four low-score cells, where rho shifts mass to
// match the observed correlation between the teams' scoring.
func dixonColesTau(x, y int, lambdaHome, lambdaAway, rho float64) float64 {
	switch {
	case x == 0 && y == 0:
		return 1 - lambdaHome*lambdaAway*rho
	case x == 1 && y == 0:
		return 1 + lambdaHome*rho
	case x == 0 && y == 1:
		return 1 + lambdaAway*rho
	case x == 1 && y == 1:
		return 1 - rho
	default:
		return 1
	}
}

// NewScoreGrid builds the corrected joint distribution for the given
// expected remaining goals per side. rho = 0 reduces to independent Poisson.
func NewScoreGrid(lambdaHome, lambdaAway, rho float64) *ScoreGrid {
	g := &ScoreGrid{}
	total := 0.0
	for i := 0; i <= maxGridGoals; i++ {
		for j := 0; j <= maxGridGoals; j++ {
			p := poissonPMF(i, lambdaHome) * poissonPMF(j, lambdaAway) *
				dixonColesTau(i, j, lambdaHome, lambdaAway, rho)
			if p < 0 {
				p = 0
			}
			g.cells[i][j] = p
			total += p
		}
	}
	if total > 0 {
		for i := 0; i <= maxGridGoals; i++ {
			for j := 0; j <= maxGridGoals; j++ {
				g.cells[i][j] /= total
			}
		}
	}
	return g
}

// Prob returns the probability of the exact scoreline (homeGoals, awayGoals)
func (g *ScoreGrid) Prob(homeGoals, awayGoals int) float64 {
	if homeGoals < 0 || awayGoals < 0 || homeGoals > maxGridGoals || awayGoals > maxGridGoals {
		return 0
	}
	return g.cells[homeGoals][awayGoals]
}

// BTTSYes returns the corrected probability that both sides score at least
// once: the summed joint mass over all (i, j) with i >= 1 and j >= 1.
// Multiplying independently corrected per-team probabilities instead would
// silently discard the correlation the correction exists to capture.
func (g *ScoreGrid) BTTSYes() float64 {
	both := 0.0
	for i := 1; i <= maxGridGoals; i++ {
		for j := 1; j <= maxGridGoals; j++ {
			both += g.cells[i][j]
		}
	}
	return both
}
