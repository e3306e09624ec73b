package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/scanops/triage/internal/core/domain"
)

// EscalationRepo implements storage.EscalationArchive using PostgreSQL.
// It doubles as an escalation sink: Deliver archives the report.
type EscalationRepo struct {
	db *DB
}

// NewEscalationRepo creates a new PostgreSQL escalation archive.
func NewEscalationRepo(db *DB) *EscalationRepo {
	return &EscalationRepo{db: db}
}

// escalationRow is the flat database shape; structured fields are JSON columns.
type escalationRow struct {
	ID           string    `db:"id"`
	Timestamp    time.Time `db:"ts"`
	Tool         string    `db:"tool"`
	Target       string    `db:"target"`
	ErrorKind    string    `db:"error_kind"`
	ErrorMsg     string    `db:"error_msg"`
	AttemptCount int       `db:"attempt_count"`
	Urgency      string    `db:"urgency"`
	Suggestions  []byte    `db:"suggestions"`
	Parameters   []byte    `db:"parameters"`
	Resources    []byte    `db:"resources"`
	RecentErrors []byte    `db:"recent_errors"`
}

// Save stores a finished escalation report.
func (r *EscalationRepo) Save(ctx context.Context, report domain.EscalationReport) error {
	suggestions, err := json.Marshal(report.SuggestedActions)
	if err != nil {
		return fmt.Errorf("failed to marshal suggestions: %w", err)
	}
	parameters, err := json.Marshal(report.Parameters)
	if err != nil {
		return fmt.Errorf("failed to marshal parameters: %w", err)
	}
	resources, err := json.Marshal(report.SystemResources)
	if err != nil {
		return fmt.Errorf("failed to marshal resources: %w", err)
	}
	recentErrors, err := json.Marshal(report.RecentErrors)
	if err != nil {
		return fmt.Errorf("failed to marshal recent errors: %w", err)
	}

	query := `
		INSERT INTO escalations (id, ts, tool, target, error_kind, error_msg, attempt_count, urgency, suggestions, parameters, resources, recent_errors)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err = r.db.ExecContext(
		ctx,
		query,
		report.ID,
		report.Timestamp,
		report.Tool,
		report.Target,
		string(report.ErrorKind),
		report.ErrorMessage,
		report.AttemptCount,
		string(report.Urgency),
		suggestions,
		parameters,
		resources,
		recentErrors,
	)
	if err != nil {
		return fmt.Errorf("failed to insert escalation: %w", err)
	}
	return nil
}

// ListRecent returns the newest reports, most recent first.
func (r *EscalationRepo) ListRecent(ctx context.Context, limit int) ([]domain.EscalationReport, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, ts, tool, target, error_kind, error_msg, attempt_count, urgency, suggestions, parameters, resources, recent_errors
		FROM escalations
		ORDER BY ts DESC
		LIMIT $1
	`
	var rows []escalationRow
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list escalations: %w", err)
	}

	reports := make([]domain.EscalationReport, 0, len(rows))
	for _, row := range rows {
		report := domain.EscalationReport{
			ID:           row.ID,
			Timestamp:    row.Timestamp,
			Tool:         row.Tool,
			Target:       row.Target,
			ErrorKind:    domain.ErrorKind(row.ErrorKind),
			ErrorMessage: row.ErrorMsg,
			AttemptCount: row.AttemptCount,
			Urgency:      domain.Urgency(row.Urgency),
		}
		// JSON columns are written by Save; decode failures mean a corrupt
		// row, not a broken listing.
		_ = json.Unmarshal(row.Suggestions, &report.SuggestedActions)
		_ = json.Unmarshal(row.Parameters, &report.Parameters)
		_ = json.Unmarshal(row.Resources, &report.SystemResources)
		_ = json.Unmarshal(row.RecentErrors, &report.RecentErrors)
		reports = append(reports, report)
	}
	return reports, nil
}

// CountByKind returns archived escalation counts per error kind.
func (r *EscalationRepo) CountByKind(ctx context.Context) (map[domain.ErrorKind]int, error) {
	query := `SELECT error_kind, COUNT(*) AS n FROM escalations GROUP BY error_kind`

	var rows []struct {
		ErrorKind string `db:"error_kind"`
		N         int    `db:"n"`
	}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to count escalations: %w", err)
	}

	counts := make(map[domain.ErrorKind]int, len(rows))
	for _, row := range rows {
		counts[domain.ErrorKind(row.ErrorKind)] = row.N
	}
	return counts, nil
}

// Name identifies the sink in logs and metrics.
func (r *EscalationRepo) Name() string { return "postgres" }

// Deliver archives the report, satisfying the engine's sink interface.
func (r *EscalationRepo) Deliver(ctx context.Context, report domain.EscalationReport) error {
	return r.Save(ctx, report)
}
