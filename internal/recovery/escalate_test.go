package recovery

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/scanops/triage/internal/core/domain"
)

func TestEscalate_BuildsFullReport(t *testing.T) {
	ledger := NewLedger(10)
	reporter := NewReporter(ledger)

	prior := ledger.Append(incident("gobuster", "https://a", "429 too many requests", domain.ErrorKindRateLimited))

	fc := domain.FailureContext{
		ToolName:          "gobuster",
		Target:            "https://a",
		ErrorKind:         domain.ErrorKindRateLimited,
		ErrorMessage:      "rate limit exceeded",
		AttemptCount:      3,
		Timestamp:         time.Now(),
		Parameters:        map[string]string{"threads": "50"},
		PreviousIncidents: []string{prior.ID},
	}

	report := reporter.Escalate(fc, domain.UrgencyHigh)

	if report.ID == "" {
		t.Error("report must carry an ID")
	}
	if report.Tool != "gobuster" || report.Target != "https://a" {
		t.Errorf("tool/target = %s/%s, want gobuster/https://a", report.Tool, report.Target)
	}
	if report.Urgency != domain.UrgencyHigh {
		t.Errorf("urgency = %v, want high", report.Urgency)
	}
	if report.AttemptCount != 3 {
		t.Errorf("attempts = %d, want 3", report.AttemptCount)
	}
	if !reflect.DeepEqual(report.RecentErrors, []string{"429 too many requests"}) {
		t.Errorf("RecentErrors = %v, want prior lineage message", report.RecentErrors)
	}
	if len(report.SuggestedActions) == 0 {
		t.Error("report must carry suggestions")
	}
}

func TestEscalate_DefaultUrgencyIsMedium(t *testing.T) {
	reporter := NewReporter(NewLedger(10))
	report := reporter.Escalate(incident("nmap", "10.0.0.5", "x", domain.ErrorKindTimeout), "")
	if report.Urgency != domain.UrgencyMedium {
		t.Errorf("urgency = %v, want medium", report.Urgency)
	}
}

func TestEscalate_RecentErrorsCappedAtFive(t *testing.T) {
	ledger := NewLedger(20)
	reporter := NewReporter(ledger)

	var ids []string
	for i := 0; i < 8; i++ {
		fc := ledger.Append(incident("nmap", "10.0.0.5", "timed out", domain.ErrorKindTimeout))
		ids = append(ids, fc.ID)
	}

	fc := incident("nmap", "10.0.0.5", "timed out again", domain.ErrorKindTimeout)
	fc.PreviousIncidents = ids

	report := reporter.Escalate(fc, domain.UrgencyLow)
	if len(report.RecentErrors) != 5 {
		t.Errorf("len(RecentErrors) = %d, want 5", len(report.RecentErrors))
	}
}

func TestSuggestionsFor(t *testing.T) {
	tests := []struct {
		kind   domain.ErrorKind
		tool   string
		first  string
		length int
	}{
		{domain.ErrorKindPermissionDenied, "nmap", "Run the command with sudo privileges", 3},
		{domain.ErrorKindToolNotFound, "nuclei", "Install nuclei using the package manager", 3},
		{domain.ErrorKindRateLimited, "gobuster", "Wait before retrying", 3},
		{domain.ErrorKindParsingError, "nmap", "Review error details and logs", 1},
	}

	for _, tt := range tests {
		fc := incident(tt.tool, "10.0.0.5", "x", tt.kind)
		got := suggestionsFor(fc)
		if len(got) != tt.length {
			t.Errorf("%v: len = %d, want %d", tt.kind, len(got), tt.length)
			continue
		}
		if got[0] != tt.first {
			t.Errorf("%v: first suggestion = %q, want %q", tt.kind, got[0], tt.first)
		}
	}
}

func TestSuggestionsFor_ToolNotFoundDoesNotMutateTable(t *testing.T) {
	fc := incident("nuclei", "10.0.0.5", "command not found", domain.ErrorKindToolNotFound)
	_ = suggestionsFor(fc)

	if suggestions[domain.ErrorKindToolNotFound][0] != "Install the tool using the package manager" {
		t.Error("shared suggestion table was mutated by personalization")
	}
}

func TestLogSink_NeverFails(t *testing.T) {
	sink := NewLogSink(nil)
	if sink.Name() != "log" {
		t.Errorf("Name() = %q, want log", sink.Name())
	}
	if err := sink.Deliver(context.Background(), domain.EscalationReport{Tool: "nmap"}); err != nil {
		t.Errorf("Deliver returned %v, want nil", err)
	}
}
