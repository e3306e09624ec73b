package recovery

import (
	"time"

	"github.com/scanops/triage/internal/core/domain"
)

// Catalog is the static table of recovery strategy templates per ErrorKind,
// in declared preference order (pre-scoring). Built once at startup and never
// mutated afterwards, so lookups need no synchronization.
type Catalog struct {
	entries map[domain.ErrorKind][]domain.RecoveryStrategy
}

// NewCatalog builds the default catalog. Every ErrorKind maps to at least one
// strategy, and unknown keeps both a retry and an escalation option so the
// selector's first pass always has candidates.
func NewCatalog() *Catalog {
	return &Catalog{entries: map[domain.ErrorKind][]domain.RecoveryStrategy{
		domain.ErrorKindTimeout: {
			{
				Action:             domain.ActionRetryWithBackoff,
				Parameters:         map[string]any{"initial_delay": 5 * time.Second, "max_delay": 60 * time.Second},
				MaxAttempts:        3,
				BackoffMultiplier:  2.0,
				SuccessProbability: 0.7,
				EstimatedTime:      30 * time.Second,
			},
			{
				Action:             domain.ActionRetryReducedScope,
				Parameters:         map[string]any{"reduce_threads": true, "reduce_timeout": true},
				MaxAttempts:        2,
				BackoffMultiplier:  1.0,
				SuccessProbability: 0.8,
				EstimatedTime:      45 * time.Second,
			},
			{
				Action:             domain.ActionSwitchTool,
				Parameters:         map[string]any{"prefer_faster_tools": true},
				MaxAttempts:        1,
				BackoffMultiplier:  1.0,
				SuccessProbability: 0.6,
				EstimatedTime:      60 * time.Second,
			},
		},
		domain.ErrorKindPermissionDenied: {
			{
				Action:             domain.ActionEscalateToHuman,
				Parameters:         map[string]any{"message": "Privilege escalation required", "urgency": domain.UrgencyMedium},
				MaxAttempts:        1,
				BackoffMultiplier:  1.0,
				SuccessProbability: 0.9,
				EstimatedTime:      300 * time.Second,
			},
			{
				Action:             domain.ActionSwitchTool,
				Parameters:         map[string]any{"require_no_privileges": true},
				MaxAttempts:        1,
				BackoffMultiplier:  1.0,
				SuccessProbability: 0.5,
				EstimatedTime:      30 * time.Second,
			},
		},
		domain.ErrorKindNetworkUnreachable: {
			{
				Action:             domain.ActionRetryWithBackoff,
				Parameters:         map[string]any{"initial_delay": 10 * time.Second, "max_delay": 120 * time.Second},
				MaxAttempts:        3,
				BackoffMultiplier:  2.0,
				SuccessProbability: 0.6,
				EstimatedTime:      60 * time.Second,
			},
			{
				Action:             domain.ActionSwitchTool,
				Parameters:         map[string]any{"prefer_offline_tools": true},
				MaxAttempts:        1,
				BackoffMultiplier:  1.0,
				SuccessProbability: 0.4,
				EstimatedTime:      30 * time.Second,
			},
		},
		domain.ErrorKindRateLimited: {
			{
				Action:             domain.ActionRetryWithBackoff,
				Parameters:         map[string]any{"initial_delay": 30 * time.Second, "max_delay": 300 * time.Second},
				MaxAttempts:        5,
				BackoffMultiplier:  1.5,
				SuccessProbability: 0.9,
				EstimatedTime:      180 * time.Second,
			},
			{
				Action:             domain.ActionAdjustParameters,
				Parameters:         map[string]any{"reduce_rate": true, "increase_delays": true},
				MaxAttempts:        2,
				BackoffMultiplier:  1.0,
				SuccessProbability: 0.8,
				EstimatedTime:      120 * time.Second,
			},
		},
		domain.ErrorKindToolNotFound: {
			{
				Action:             domain.ActionSwitchTool,
				Parameters:         map[string]any{"find_equivalent": true},
				MaxAttempts:        1,
				BackoffMultiplier:  1.0,
				SuccessProbability: 0.7,
				EstimatedTime:      15 * time.Second,
			},
			{
				Action:             domain.ActionEscalateToHuman,
				Parameters:         map[string]any{"message": "Tool installation required", "urgency": domain.UrgencyLow},
				MaxAttempts:        1,
				BackoffMultiplier:  1.0,
				SuccessProbability: 0.9,
				EstimatedTime:      600 * time.Second,
			},
		},
		domain.ErrorKindInvalidParameters: {
			{
				Action:             domain.ActionAdjustParameters,
				Parameters:         map[string]any{"use_defaults": true, "remove_invalid": true},
				MaxAttempts:        3,
				BackoffMultiplier:  1.0,
				SuccessProbability: 0.8,
				EstimatedTime:      10 * time.Second,
			},
			{
				Action:             domain.ActionSwitchTool,
				Parameters:         map[string]any{"simpler_interface": true},
				MaxAttempts:        1,
				BackoffMultiplier:  1.0,
				SuccessProbability: 0.6,
				EstimatedTime:      30 * time.Second,
			},
		},
		domain.ErrorKindResourceExhausted: {
			{
				Action:             domain.ActionRetryReducedScope,
				Parameters:         map[string]any{"reduce_memory": true, "reduce_threads": true},
				MaxAttempts:        2,
				BackoffMultiplier:  1.0,
				SuccessProbability: 0.7,
				EstimatedTime:      60 * time.Second,
			},
			{
				Action:             domain.ActionRetryWithBackoff,
				Parameters:         map[string]any{"initial_delay": 60 * time.Second, "max_delay": 300 * time.Second},
				MaxAttempts:        2,
				BackoffMultiplier:  2.0,
				SuccessProbability: 0.5,
				EstimatedTime:      180 * time.Second,
			},
		},
		domain.ErrorKindAuthFailed: {
			{
				Action:             domain.ActionEscalateToHuman,
				Parameters:         map[string]any{"message": "Authentication credentials required", "urgency": domain.UrgencyHigh},
				MaxAttempts:        1,
				BackoffMultiplier:  1.0,
				SuccessProbability: 0.9,
				EstimatedTime:      300 * time.Second,
			},
			{
				Action:             domain.ActionSwitchTool,
				Parameters:         map[string]any{"no_auth_required": true},
				MaxAttempts:        1,
				BackoffMultiplier:  1.0,
				SuccessProbability: 0.4,
				EstimatedTime:      30 * time.Second,
			},
		},
		domain.ErrorKindTargetUnreachable: {
			{
				Action:             domain.ActionRetryWithBackoff,
				Parameters:         map[string]any{"initial_delay": 15 * time.Second, "max_delay": 180 * time.Second},
				MaxAttempts:        3,
				BackoffMultiplier:  2.0,
				SuccessProbability: 0.6,
				EstimatedTime:      90 * time.Second,
			},
			{
				Action:             domain.ActionGracefulDegradation,
				Parameters:         map[string]any{"skip_target": true, "continue_with_others": true},
				MaxAttempts:        1,
				BackoffMultiplier:  1.0,
				SuccessProbability: 1.0,
				EstimatedTime:      5 * time.Second,
			},
		},
		domain.ErrorKindParsingError: {
			{
				Action:             domain.ActionAdjustParameters,
				Parameters:         map[string]any{"change_output_format": true, "add_parsing_flags": true},
				MaxAttempts:        2,
				BackoffMultiplier:  1.0,
				SuccessProbability: 0.7,
				EstimatedTime:      20 * time.Second,
			},
			{
				Action:             domain.ActionSwitchTool,
				Parameters:         map[string]any{"better_output_format": true},
				MaxAttempts:        1,
				BackoffMultiplier:  1.0,
				SuccessProbability: 0.6,
				EstimatedTime:      30 * time.Second,
			},
		},
		domain.ErrorKindUnknown: {
			{
				Action:             domain.ActionRetryWithBackoff,
				Parameters:         map[string]any{"initial_delay": 5 * time.Second, "max_delay": 30 * time.Second},
				MaxAttempts:        2,
				BackoffMultiplier:  2.0,
				SuccessProbability: 0.3,
				EstimatedTime:      45 * time.Second,
			},
			{
				Action:             domain.ActionEscalateToHuman,
				Parameters:         map[string]any{"message": "Unknown error encountered", "urgency": domain.UrgencyMedium},
				MaxAttempts:        1,
				BackoffMultiplier:  1.0,
				SuccessProbability: 0.9,
				EstimatedTime:      300 * time.Second,
			},
		},
	}}
}

// Strategies returns the declared templates for a kind. Kinds without an entry
// fall back to the unknown entry, keeping the selector's input non-empty.
func (c *Catalog) Strategies(kind domain.ErrorKind) []domain.RecoveryStrategy {
	if entry, ok := c.entries[kind]; ok {
		return entry
	}
	return c.entries[domain.ErrorKindUnknown]
}

// Kinds returns every kind with a declared entry.
func (c *Catalog) Kinds() []domain.ErrorKind {
	kinds := make([]domain.ErrorKind, 0, len(c.entries))
	for k := range c.entries {
		kinds = append(kinds, k)
	}
	return kinds
}
