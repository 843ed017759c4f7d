package engine

import (
	"math"

	"github.com/yourusername/matchpulse/internal/models"
)

// sanitizeSnapshot returns a copy of the snapshot with every numeric field
// coerced into a usable range. Absent provider values arrive as zero from
// the provider layer already; this additionally squashes NaN, infinities
// and negatives so no arithmetic downstream ever sees them.
func sanitizeSnapshot(snap *models.MatchSnapshot) *models.MatchSnapshot {
	s := *snap

	if s.Minute < 0 {
		s.Minute = 0
	}

	s.Home = sanitizeStats(s.Home)
	s.Away = sanitizeStats(s.Away)

	return &s
}

func sanitizeStats(t models.TeamStats) models.TeamStats {
	t.Goals = nonNegative(t.Goals)
	t.XG = finiteNonNegative(t.XG)
	t.Shots = nonNegative(t.Shots)
	t.ShotsOnTarget = nonNegative(t.ShotsOnTarget)
	t.Corners = nonNegative(t.Corners)
	t.YellowCards = nonNegative(t.YellowCards)
	t.RedCards = nonNegative(t.RedCards)
	t.Fouls = nonNegative(t.Fouls)
	t.Possession = clamp(finiteNonNegative(t.Possession), 0, 100)
	t.DangerousAttacks = nonNegative(t.DangerousAttacks)
	return t
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func finiteNonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
