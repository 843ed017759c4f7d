package engine

import (
	"github.com/yourusername/matchpulse/internal/config"
)

// PhaseState names one of the six match phases. The set is closed; every
// switch over it is exhaustive.
type PhaseState string

const (
	PhaseOpening     PhaseState = "OPENING"
	PhaseProbing     PhaseState = "PROBING"
	PhasePreHTPush   PhaseState = "PRE_HT_PUSH"
	PhasePostHTReset PhaseState = "POST_HT_RESET"
	PhaseDecision    PhaseState = "DECISION_TIME"
	PhaseDesperate   PhaseState = "DESPERATE"
)

// Phase couples the phase name with its configured BTTS-style bias
type Phase struct {
	State PhaseState
	Bias  float64
}

// PhaseForMinute maps the match clock to its phase. Intervals are half-open
// [start, end); minutes at or past the last configured boundary (stoppage
// time) stay in the final phase. Pure and deterministic: the same minute
// always yields the same phase.
func PhaseForMinute(minute int, cfg *config.EngineConfig) Phase {
	if minute < 0 {
		minute = 0
	}
	for _, p := range cfg.Phases {
		if minute >= p.StartMinute && minute < p.EndMinute {
			return Phase{State: PhaseState(p.Name), Bias: p.Bias}
		}
	}
	last := cfg.Phases[len(cfg.Phases)-1]
	return Phase{State: PhaseState(last.Name), Bias: last.Bias}
}
