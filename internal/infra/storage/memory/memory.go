package memory

import (
	"context"
	"sync"

	"github.com/scanops/triage/internal/core/domain"
)

// EscalationArchive is the in-memory storage.EscalationArchive used when no
// database is configured, and in tests. Also a valid escalation sink.
type EscalationArchive struct {
	mu      sync.RWMutex
	reports []domain.EscalationReport
}

// NewEscalationArchive creates an empty archive.
func NewEscalationArchive() *EscalationArchive {
	return &EscalationArchive{}
}

// Save stores a finished escalation report.
func (a *EscalationArchive) Save(ctx context.Context, report domain.EscalationReport) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.reports = append(a.reports, report)
	return nil
}

// ListRecent returns the newest reports, most recent first.
func (a *EscalationArchive) ListRecent(ctx context.Context, limit int) ([]domain.EscalationReport, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if limit <= 0 || limit > len(a.reports) {
		limit = len(a.reports)
	}

	out := make([]domain.EscalationReport, 0, limit)
	for i := len(a.reports) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, a.reports[i])
	}
	return out, nil
}

// CountByKind returns archived escalation counts per error kind.
func (a *EscalationArchive) CountByKind(ctx context.Context) (map[domain.ErrorKind]int, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	counts := make(map[domain.ErrorKind]int)
	for _, r := range a.reports {
		counts[r.ErrorKind]++
	}
	return counts, nil
}

// Name identifies the sink in logs and metrics.
func (a *EscalationArchive) Name() string { return "memory" }

// Deliver archives the report, satisfying the engine's sink interface.
func (a *EscalationArchive) Deliver(ctx context.Context, report domain.EscalationReport) error {
	return a.Save(ctx, report)
}
