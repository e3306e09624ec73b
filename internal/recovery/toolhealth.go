package recovery

import (
	"sync"
	"time"

	"github.com/scanops/triage/internal/core/domain"
)

// HealthTracker keeps a rolling view of per-tool outcomes so callers can steer
// substitution away from tools that keep failing. Counters age out of a fixed
// window; state transitions are driven by consecutive failures and window
// failure share.
type HealthTracker struct {
	mu     sync.RWMutex
	window time.Duration
	tools  map[string]*toolRecord
}

type toolRecord struct {
	outcomes    []outcome
	consecutive int
	lastFailure time.Time
	kindCounts  map[domain.ErrorKind]int
}

type outcome struct {
	at     time.Time
	failed bool
}

// NewHealthTracker creates a tracker with the given aging window; zero means
// one hour.
func NewHealthTracker(window time.Duration) *HealthTracker {
	if window <= 0 {
		window = time.Hour
	}
	return &HealthTracker{
		window: window,
		tools:  make(map[string]*toolRecord),
	}
}

// RecordFailure notes a classified failure for a tool.
func (h *HealthTracker) RecordFailure(tool string, kind domain.ErrorKind) {
	h.mu.Lock()
	defer h.mu.Unlock()

	rec := h.record(tool)
	now := time.Now()
	rec.outcomes = append(rec.outcomes, outcome{at: now, failed: true})
	rec.consecutive++
	rec.lastFailure = now
	rec.kindCounts[kind]++
	h.pruneLocked(rec, now)
}

// RecordSuccess notes a successful run, resetting the consecutive counter.
func (h *HealthTracker) RecordSuccess(tool string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	rec := h.record(tool)
	now := time.Now()
	rec.outcomes = append(rec.outcomes, outcome{at: now, failed: false})
	rec.consecutive = 0
	h.pruneLocked(rec, now)
}

// Status returns the current health state of a tool. Unseen tools are healthy.
func (h *HealthTracker) Status(tool string) domain.ToolStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()

	rec, ok := h.tools[tool]
	if !ok {
		return domain.ToolStatusHealthy
	}
	return statusOf(rec)
}

// Report returns the health of every tracked tool.
func (h *HealthTracker) Report() map[string]domain.ToolHealth {
	h.mu.RLock()
	defer h.mu.RUnlock()

	report := make(map[string]domain.ToolHealth, len(h.tools))
	for tool, rec := range h.tools {
		failures, successes := tally(rec)
		report[tool] = domain.ToolHealth{
			Status:       statusOf(rec),
			Failures:     failures,
			Successes:    successes,
			Consecutive:  rec.consecutive,
			LastFailure:  rec.lastFailure,
			DominantKind: dominantKind(rec),
		}
	}
	return report
}

func (h *HealthTracker) record(tool string) *toolRecord {
	rec, ok := h.tools[tool]
	if !ok {
		rec = &toolRecord{kindCounts: make(map[domain.ErrorKind]int)}
		h.tools[tool] = rec
	}
	return rec
}

func (h *HealthTracker) pruneLocked(rec *toolRecord, now time.Time) {
	cutoff := now.Add(-h.window)
	keep := rec.outcomes[:0]
	for _, o := range rec.outcomes {
		if o.at.After(cutoff) {
			keep = append(keep, o)
		}
	}
	rec.outcomes = keep
}

func statusOf(rec *toolRecord) domain.ToolStatus {
	failures, successes := tally(rec)
	total := failures + successes

	if rec.consecutive >= 3 {
		return domain.ToolStatusFailing
	}
	if total > 0 && float64(failures)/float64(total) >= 0.5 && failures >= 2 {
		return domain.ToolStatusDegraded
	}
	return domain.ToolStatusHealthy
}

func tally(rec *toolRecord) (failures, successes int) {
	for _, o := range rec.outcomes {
		if o.failed {
			failures++
		} else {
			successes++
		}
	}
	return failures, successes
}

func dominantKind(rec *toolRecord) domain.ErrorKind {
	var top domain.ErrorKind
	max := 0
	for kind, n := range rec.kindCounts {
		if n > max {
			top = kind
			max = n
		}
	}
	return top
}
