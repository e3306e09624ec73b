// Package storage defines the persistence boundary for escalated incidents.
// The in-process ledger stays authoritative for live decisions; the archive
// exists for audit and the operator console.
package storage

import (
	"context"

	"github.com/scanops/triage/internal/core/domain"
)

// EscalationArchive persists escalation reports.
type EscalationArchive interface {
	// Save stores a finished escalation report.
	Save(ctx context.Context, report domain.EscalationReport) error

	// ListRecent returns the newest reports, most recent first.
	ListRecent(ctx context.Context, limit int) ([]domain.EscalationReport, error)

	// CountByKind returns archived escalation counts per error kind.
	CountByKind(ctx context.Context) (map[domain.ErrorKind]int, error)
}
