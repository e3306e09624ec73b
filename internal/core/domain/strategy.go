package domain

import "time"

// RecoveryAction is the kind of autonomous action a strategy prescribes.
type RecoveryAction string

const (
	ActionRetryWithBackoff    RecoveryAction = "retry_with_backoff"
	ActionRetryReducedScope   RecoveryAction = "retry_with_reduced_scope"
	ActionSwitchTool          RecoveryAction = "switch_tool"
	ActionAdjustParameters    RecoveryAction = "adjust_parameters"
	ActionEscalateToHuman     RecoveryAction = "escalate_to_human"
	ActionGracefulDegradation RecoveryAction = "graceful_degradation"
	ActionAbort               RecoveryAction = "abort"
)

// RecoveryStrategy is an immutable action template with its retry budget and
// success/cost estimate. Templates live in the static catalog; the selector
// returns them by value, so callers never mutate shared state.
type RecoveryStrategy struct {
	Action             RecoveryAction `json:"action"`
	Parameters         map[string]any `json:"parameters,omitempty"`
	MaxAttempts        int            `json:"max_attempts"`
	BackoffMultiplier  float64        `json:"backoff_multiplier"`
	SuccessProbability float64        `json:"success_probability"`
	EstimatedTime      time.Duration  `json:"estimated_time"`
}

// Urgency grades an escalation for the human operator.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)
