package recovery

import (
	"fmt"
	"math"
	"time"

	"github.com/scanops/triage/internal/core/domain"
)

// SelectorConfig holds the scoring knobs. The defaults reproduce the tuned
// production behavior; change them only with evidence.
type SelectorConfig struct {
	// DiscountBase discounts a strategy's success probability per prior
	// attempt: adjusted = p * DiscountBase^(attempts-1).
	DiscountBase float64
	// TimeWeight converts estimated seconds into a score penalty. Small on
	// purpose: time is a tie-breaker, not a dominant factor.
	TimeWeight float64
}

// DefaultSelectorConfig returns the standard scoring parameters.
func DefaultSelectorConfig() SelectorConfig {
	return SelectorConfig{
		DiscountBase: 0.9,
		TimeWeight:   1.0 / 1000.0,
	}
}

// Selector picks the most promising strategy for a failure given its attempt
// history. Stateless; safe for concurrent use.
type Selector struct {
	cfg SelectorConfig
}

// NewSelector creates a selector. Zero-valued config fields fall back to the
// defaults.
func NewSelector(cfg SelectorConfig) *Selector {
	def := DefaultSelectorConfig()
	if cfg.DiscountBase <= 0 {
		cfg.DiscountBase = def.DiscountBase
	}
	if cfg.TimeWeight <= 0 {
		cfg.TimeWeight = def.TimeWeight
	}
	return &Selector{cfg: cfg}
}

// Select never fails: given the catalog entry for a kind it returns either the
// highest-scoring viable strategy or, when every candidate's retry budget is
// exhausted, a synthesized terminal escalation. Ties keep catalog order.
func (s *Selector) Select(strategies []domain.RecoveryStrategy, fc domain.FailureContext) domain.RecoveryStrategy {
	viable := make([]domain.RecoveryStrategy, 0, len(strategies))
	for _, st := range strategies {
		if fc.AttemptCount <= st.MaxAttempts {
			viable = append(viable, st)
		}
	}

	if len(viable) == 0 {
		return exhaustedEscalation(fc.ToolName)
	}

	best := viable[0]
	bestScore := s.score(viable[0], fc.AttemptCount)
	for _, st := range viable[1:] {
		if sc := s.score(st, fc.AttemptCount); sc > bestScore {
			best = st
			bestScore = sc
		}
	}
	return best
}

// Score exposes the scoring function for observability and tests.
func (s *Selector) Score(st domain.RecoveryStrategy, attemptCount int) float64 {
	return s.score(st, attemptCount)
}

func (s *Selector) score(st domain.RecoveryStrategy, attemptCount int) float64 {
	adjusted := st.SuccessProbability * math.Pow(s.cfg.DiscountBase, float64(attemptCount-1))
	return adjusted - st.EstimatedTime.Seconds()*s.cfg.TimeWeight
}

// exhaustedEscalation is the fail-closed terminal state: once returned, the
// attempt count already exceeds every budget, so re-entry selects it again
// rather than looping back into retries.
func exhaustedEscalation(tool string) domain.RecoveryStrategy {
	return domain.RecoveryStrategy{
		Action: domain.ActionEscalateToHuman,
		Parameters: map[string]any{
			"message": fmt.Sprintf("All recovery strategies exhausted for %s", tool),
			"urgency": domain.UrgencyHigh,
		},
		MaxAttempts:        1,
		BackoffMultiplier:  1.0,
		SuccessProbability: 0.9,
		EstimatedTime:      300 * time.Second,
	}
}
