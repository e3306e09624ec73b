package recovery

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/scanops/triage/internal/core/domain"
)

// EscalationSink receives finished escalation reports for delivery to a human
// channel (notification queue, ticketing archive, log). The engine fans out to
// every configured sink and never delivers anything itself.
type EscalationSink interface {
	Name() string
	Deliver(ctx context.Context, report domain.EscalationReport) error
}

// suggestions maps each ErrorKind to remediation steps a human can act on.
var suggestions = map[domain.ErrorKind][]string{
	domain.ErrorKindPermissionDenied: {
		"Run the command with sudo privileges",
		"Check file/directory permissions",
		"Verify user is in required groups",
	},
	domain.ErrorKindToolNotFound: {
		"Install the tool using the package manager",
		"Check if the tool is in PATH",
		"Verify tool installation",
	},
	domain.ErrorKindNetworkUnreachable: {
		"Check network connectivity",
		"Verify target is accessible",
		"Check firewall rules",
	},
	domain.ErrorKindRateLimited: {
		"Wait before retrying",
		"Use slower scan rates",
		"Check API rate limits",
	},
}

// Reporter builds escalation records from failure contexts. Lineage messages
// are resolved through the ledger at build time.
type Reporter struct {
	ledger *Ledger
}

// NewReporter creates a reporter backed by the given ledger.
func NewReporter(ledger *Ledger) *Reporter {
	return &Reporter{ledger: ledger}
}

// Escalate assembles the structured incident record for a human operator:
// full diagnostic context plus up to the last 5 prior messages in the same
// tool+target lineage. The returned record is terminal and never mutated.
func (r *Reporter) Escalate(fc domain.FailureContext, urgency domain.Urgency) domain.EscalationReport {
	if urgency == "" {
		urgency = domain.UrgencyMedium
	}

	return domain.EscalationReport{
		ID:               uuid.New().String(),
		Timestamp:        time.Now(),
		Tool:             fc.ToolName,
		Target:           fc.Target,
		ErrorKind:        fc.ErrorKind,
		ErrorMessage:     fc.ErrorMessage,
		AttemptCount:     fc.AttemptCount,
		Urgency:          urgency,
		SuggestedActions: suggestionsFor(fc),
		Parameters:       fc.Parameters,
		SystemResources:  fc.SystemResources,
		RecentErrors:     r.ledger.Messages(fc.PreviousIncidents, 5),
	}
}

func suggestionsFor(fc domain.FailureContext) []string {
	if s, ok := suggestions[fc.ErrorKind]; ok {
		if fc.ErrorKind == domain.ErrorKindToolNotFound {
			steps := make([]string, len(s))
			copy(steps, s)
			steps[0] = fmt.Sprintf("Install %s using the package manager", fc.ToolName)
			return steps
		}
		return s
	}
	return []string{"Review error details and logs"}
}

// LogSink delivers escalations as structured error logs. Always safe to keep
// enabled alongside queue and archive sinks.
type LogSink struct {
	log *slog.Logger
}

// NewLogSink creates a sink writing to the given logger (nil means default).
func NewLogSink(log *slog.Logger) *LogSink {
	if log == nil {
		log = slog.Default()
	}
	return &LogSink{log: log}
}

// Name identifies the sink in logs and metrics.
func (s *LogSink) Name() string { return "log" }

// Deliver logs the report. Never fails.
func (s *LogSink) Deliver(_ context.Context, report domain.EscalationReport) error {
	s.log.Error("Human escalation required",
		"tool", report.Tool,
		"target", report.Target,
		"error_kind", report.ErrorKind,
		"urgency", report.Urgency,
		"attempts", report.AttemptCount,
		"error", report.ErrorMessage,
		"suggestions", report.SuggestedActions,
	)
	return nil
}
