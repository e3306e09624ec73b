package domain

import "time"

// ResourceSnapshot is a best-effort view of host load at failure time.
// Diagnostic only; Available is false when the host refused to be measured.
type ResourceSnapshot struct {
	Available       bool    `json:"available"`
	CPUPercent      float64 `json:"cpu_percent"`
	MemoryPercent   float64 `json:"memory_percent"`
	DiskPercent     float64 `json:"disk_percent"`
	LoadAverage     float64 `json:"load_average,omitempty"`
	ActiveProcesses int     `json:"active_processes"`
}

// FailureContext is the immutable record of one observed tool failure.
// It is created once at classification time, appended to the ledger, and
// never mutated. PreviousIncidents holds ledger IDs of earlier failures of
// the same tool against the same target, oldest first.
type FailureContext struct {
	ID                string            `json:"id"`
	ToolName          string            `json:"tool_name"`
	Target            string            `json:"target"`
	Parameters        map[string]string `json:"parameters,omitempty"`
	ErrorKind         ErrorKind         `json:"error_kind"`
	ErrorMessage      string            `json:"error_msg"`
	AttemptCount      int               `json:"attempt_count"`
	Timestamp         time.Time         `json:"timestamp"`
	StackTrace        string            `json:"stack_trace,omitempty"`
	SystemResources   ResourceSnapshot  `json:"system_resources"`
	PreviousIncidents []string          `json:"previous_incidents,omitempty"`
}

// EscalationReport is the structured record handed to a human operator when
// autonomous recovery is exhausted. Terminal output, never mutated after
// creation; delivery to notification/ticketing sinks happens elsewhere.
type EscalationReport struct {
	ID               string            `json:"id"`
	Timestamp        time.Time         `json:"timestamp"`
	Tool             string            `json:"tool"`
	Target           string            `json:"target"`
	ErrorKind        ErrorKind         `json:"error_kind"`
	ErrorMessage     string            `json:"error_msg"`
	AttemptCount     int               `json:"attempt_count"`
	Urgency          Urgency           `json:"urgency"`
	SuggestedActions []string          `json:"suggested_actions"`
	Parameters       map[string]string `json:"parameters,omitempty"`
	SystemResources  ResourceSnapshot  `json:"system_resources"`
	RecentErrors     []string          `json:"recent_errors,omitempty"`
}
