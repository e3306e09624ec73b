package domain

import "time"

// RecentIncident is a display-sized view of a ledger entry.
type RecentIncident struct {
	Tool      string    `json:"tool"`
	ErrorKind ErrorKind `json:"error_kind"`
	Timestamp time.Time `json:"timestamp"`
}

// LedgerStats aggregates the incident ledger on demand.
type LedgerStats struct {
	TotalIncidents int               `json:"total_incidents"`
	ByKind         map[ErrorKind]int `json:"by_kind"`
	ByTool         map[string]int    `json:"by_tool"`
	RecentCount    int               `json:"recent_count"`
	Recent         []RecentIncident  `json:"recent"`
}

// ToolStatus is the rolling health state of a dispatched tool.
type ToolStatus string

const (
	ToolStatusHealthy  ToolStatus = "healthy"
	ToolStatusDegraded ToolStatus = "degraded"
	ToolStatusFailing  ToolStatus = "failing"
)

// ToolHealth summarizes recent outcomes for one tool.
type ToolHealth struct {
	Status       ToolStatus `json:"status"`
	Failures     int        `json:"failures"`
	Successes    int        `json:"successes"`
	Consecutive  int        `json:"consecutive_failures"`
	LastFailure  time.Time  `json:"last_failure,omitempty"`
	DominantKind ErrorKind  `json:"dominant_kind,omitempty"`
}
