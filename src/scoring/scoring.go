// Package scoring turns claim verdicts and manipulation analysis into a
// credibility score and a publish decision. Pure arithmetic, no I/O.
package scoring

import (
	"math"
	"strings"

	"github.com/realorrender/realorrender/src/types"
)

// Policy carries every tunable constant of the scoring algorithm so the
// numbers can change without touching the code below.
type Policy struct {
	ContradictedPenalty    float64
	InsufficientPenalty    float64
	ManipulationPenaltyPer float64
	ManipulationMaxSignals int
	ManipulationMaxPenalty float64
	AIMaxPenalty           float64
	AllowThreshold         float64
	WarnThreshold          float64
}

// DefaultPolicy returns the production scoring policy.
func DefaultPolicy() Policy {
	return Policy{
		ContradictedPenalty:    25,
		InsufficientPenalty:    10,
		ManipulationPenaltyPer: 3,
		ManipulationMaxSignals: 5,
		ManipulationMaxPenalty: 15,
		AIMaxPenalty:           10,
		AllowThreshold:         75,
		WarnThreshold:          50,
	}
}

// Score computes the credibility score in [0,100], rounded to one decimal.
// Starts at 100; each CONTRADICTED or INSUFFICIENT verdict subtracts its
// penalty, manipulation signals subtract up to the capped maximum, and an
// AI-generation likelihood (when known) subtracts proportionally.
func (p Policy) Score(verdicts []types.Verdict, signals []string, aiLikelihood *float64) float64 {
	score := 100.0

	for _, v := range verdicts {
		switch types.Verdict(strings.ToUpper(string(v))) {
		case types.VerdictContradicted:
			score -= p.ContradictedPenalty
		case types.VerdictInsufficient:
			score -= p.InsufficientPenalty
		}
	}

	n := len(signals)
	if n > p.ManipulationMaxSignals {
		n = p.ManipulationMaxSignals
	}
	manipulation := float64(n) * p.ManipulationPenaltyPer
	if manipulation > p.ManipulationMaxPenalty {
		manipulation = p.ManipulationMaxPenalty
	}
	score -= manipulation

	if aiLikelihood != nil {
		ai := *aiLikelihood * p.AIMaxPenalty
		if ai > p.AIMaxPenalty {
			ai = p.AIMaxPenalty
		}
		score -= ai
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return math.Round(score*10) / 10
}

// Decision maps a score onto ALLOW / WARN / BLOCK. Band boundaries are
// inclusive at the bottom: exactly AllowThreshold is ALLOW, exactly
// WarnThreshold is WARN.
func (p Policy) Decision(score float64) types.Decision {
	if score >= p.AllowThreshold {
		return types.DecisionAllow
	}
	if score >= p.WarnThreshold {
		return types.DecisionWarn
	}
	return types.DecisionBlock
}
