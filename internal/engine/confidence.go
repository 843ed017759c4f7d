package engine

import "github.com/yourusername/matchpulse/internal/models"

// tierFromScore converts an accumulated evidence score into a tier
func tierFromScore(score int) models.ConfidenceTier {
	switch {
	case score >= 70:
		return models.ConfidenceVeryHigh
	case score >= 50:
		return models.ConfidenceHigh
	case score >= 30:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}

// goalsConfidence grades an over/under estimate: more minutes played, a
// real xG signal and a clear distance from the line all add evidence
func goalsConfidence(minute int, hasXG bool, expectedTotal, threshold float64) models.ConfidenceTier {
	score := 0
	if minute >= 30 {
		score += 20
	}
	if minute >= 60 {
		score += 15
	}
	if hasXG {
		score += 30
	}
	distance := expectedTotal - threshold
	if distance >= 1.0 || distance <= -1.0 {
		score += 20
	}
	return tierFromScore(score)
}

// nextGoalConfidence grades a next-goal pick by the size of the edge and
// the strength of the momentum signal
func nextGoalConfidence(minute int, hasXG bool, homeProb, awayProb float64, mom Momentum) models.ConfidenceTier {
	score := 0

	edge := homeProb - awayProb
	if edge < 0 {
		edge = -edge
	}
	switch {
	case edge > 30:
		score += 40
	case edge > 20:
		score += 30
	case edge > 15:
		score += 20
	}

	maxRatio := mom.HomeRatio
	if mom.AwayRatio() > maxRatio {
		maxRatio = mom.AwayRatio()
	}
	if maxRatio > 0.75 {
		score += 30
	} else if maxRatio > 0.6 {
		score += 20
	}

	if hasXG {
		score += 20
	}
	if minute >= 30 {
		score += 10
	}

	return tierFromScore(score)
}

// resultConfidence grades a 1X2 estimate: late leads are near-certain,
// early level games are guesses
func resultConfidence(minute, lead int, hasXG bool) models.ConfidenceTier {
	score := 0
	if minute >= 30 {
		score += 20
	}
	if minute >= 60 {
		score += 20
	}
	if hasXG {
		score += 20
	}
	if lead < 0 {
		lead = -lead
	}
	switch {
	case lead >= 2:
		score += 30
	case lead == 1:
		score += 15
	}
	return tierFromScore(score)
}

// disciplineConfidence grades cards/corners estimates by sample size
func disciplineConfidence(minute int, sampleSize int) models.ConfidenceTier {
	score := 0
	if minute >= 30 {
		score += 25
	}
	if minute >= 60 {
		score += 20
	}
	if sampleSize >= 10 {
		score += 25
	} else if sampleSize >= 5 {
		score += 15
	}
	return tierFromScore(score)
}
