package recovery

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/scanops/triage/internal/core/domain"
)

// mockSink records delivered reports and can be told to fail.
type mockSink struct {
	mu       sync.Mutex
	name     string
	reports  []domain.EscalationReport
	failWith error
}

func (m *mockSink) Name() string { return m.name }

func (m *mockSink) Deliver(_ context.Context, report domain.EscalationReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	m.reports = append(m.reports, report)
	return nil
}

func (m *mockSink) delivered() []domain.EscalationReport {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.EscalationReport(nil), m.reports...)
}

type fixedProber struct{ snap domain.ResourceSnapshot }

func (p fixedProber) Snapshot() domain.ResourceSnapshot { return p.snap }

func TestEngine_HandleFailure_RateLimited(t *testing.T) {
	engine := NewEngine(Options{LedgerCapacity: 10})

	strategy := engine.HandleFailure(context.Background(), "gobuster",
		ToolError{Message: "rate limit exceeded (429)"},
		CallContext{
			Target:       "https://example.com",
			Parameters:   map[string]string{"threads": "50"},
			AttemptCount: 1,
		})

	if strategy.Action != domain.ActionRetryWithBackoff && strategy.Action != domain.ActionAdjustParameters {
		t.Errorf("action = %v, want a rate_limited catalog action", strategy.Action)
	}

	stats := engine.Statistics()
	if stats.TotalIncidents != 1 {
		t.Fatalf("TotalIncidents = %d, want 1", stats.TotalIncidents)
	}
	if stats.ByKind[domain.ErrorKindRateLimited] != 1 {
		t.Errorf("incident not classified as rate_limited: %v", stats.ByKind)
	}
	if stats.ByTool["gobuster"] != 1 {
		t.Errorf("incident not attributed to gobuster: %v", stats.ByTool)
	}
}

func TestEngine_HandleFailure_LineageAccumulates(t *testing.T) {
	engine := NewEngine(Options{LedgerCapacity: 10})
	ctx := context.Background()

	toolErr := ToolError{Message: "connection timed out"}
	call := CallContext{Target: "10.0.0.5", AttemptCount: 1}
	engine.HandleFailure(ctx, "nmap", toolErr, call)

	call.AttemptCount = 2
	engine.HandleFailure(ctx, "nmap", toolErr, call)

	ids := engine.Ledger().Lineage("nmap", "10.0.0.5", 0)
	if len(ids) != 2 {
		t.Fatalf("lineage length = %d, want 2", len(ids))
	}
	second, ok := engine.Ledger().Get(ids[1])
	if !ok {
		t.Fatal("second incident not in ledger")
	}
	if len(second.PreviousIncidents) != 1 || second.PreviousIncidents[0] != ids[0] {
		t.Errorf("second incident lineage = %v, want [%s]", second.PreviousIncidents, ids[0])
	}
}

func TestEngine_HandleFailure_ExhaustionEscalatesToSinks(t *testing.T) {
	sink := &mockSink{name: "mock"}
	engine := NewEngine(Options{LedgerCapacity: 10, Sinks: []EscalationSink{sink}})

	strategy := engine.HandleFailure(context.Background(), "nmap",
		ToolError{Message: "connection timed out"},
		CallContext{Target: "10.0.0.5", AttemptCount: 10})

	if strategy.Action != domain.ActionEscalateToHuman {
		t.Fatalf("action = %v, want escalate_to_human at exhaustion", strategy.Action)
	}

	got := sink.delivered()
	if len(got) != 1 {
		t.Fatalf("delivered reports = %d, want 1", len(got))
	}
	if got[0].Urgency != domain.UrgencyHigh {
		t.Errorf("urgency = %v, want high", got[0].Urgency)
	}
	if got[0].Tool != "nmap" || got[0].Target != "10.0.0.5" {
		t.Errorf("report tool/target = %s/%s", got[0].Tool, got[0].Target)
	}
}

func TestEngine_HandleFailure_SinkErrorDoesNotChangeDecision(t *testing.T) {
	broken := &mockSink{name: "broken", failWith: errors.New("queue unavailable")}
	working := &mockSink{name: "working"}
	engine := NewEngine(Options{Sinks: []EscalationSink{broken, working}})

	strategy := engine.HandleFailure(context.Background(), "sqlmap",
		ToolError{Message: "login failed: invalid credentials"},
		CallContext{Target: "https://example.com", AttemptCount: 1})

	if strategy.Action != domain.ActionEscalateToHuman {
		t.Fatalf("auth_failed first pick = %v, want escalate_to_human", strategy.Action)
	}
	if len(working.delivered()) != 1 {
		t.Error("healthy sink must still receive the report after another sink fails")
	}
}

func TestEngine_HandleFailure_AttachesResourceSnapshot(t *testing.T) {
	snap := domain.ResourceSnapshot{Available: true, CPUPercent: 93.5, MemoryPercent: 81.0}
	engine := NewEngine(Options{Prober: fixedProber{snap: snap}})

	engine.HandleFailure(context.Background(), "nuclei",
		ToolError{Message: "out of memory"},
		CallContext{Target: "https://example.com", AttemptCount: 1})

	ids := engine.Ledger().Lineage("nuclei", "https://example.com", 0)
	if len(ids) != 1 {
		t.Fatal("incident not recorded")
	}
	fc, _ := engine.Ledger().Get(ids[0])
	if !fc.SystemResources.Available || fc.SystemResources.CPUPercent != 93.5 {
		t.Errorf("SystemResources = %+v, want probed snapshot", fc.SystemResources)
	}
}

func TestEngine_HandleFailure_ZeroAttemptTreatedAsFirst(t *testing.T) {
	engine := NewEngine(Options{})

	strategy := engine.HandleFailure(context.Background(), "nmap",
		ToolError{Message: "connection timed out"},
		CallContext{Target: "10.0.0.5"})

	if strategy.Action == domain.ActionEscalateToHuman {
		t.Errorf("attempt 0 must behave like attempt 1, got immediate escalation")
	}
}

func TestEngine_HandleFailure_TagOverridesMessage(t *testing.T) {
	engine := NewEngine(Options{})

	engine.HandleFailure(context.Background(), "trivy",
		ToolError{Message: "operation failed", Tag: domain.TagPermission},
		CallContext{Target: "registry.local", AttemptCount: 1})

	stats := engine.Statistics()
	if stats.ByKind[domain.ErrorKindPermissionDenied] != 1 {
		t.Errorf("tagged failure not classified by tag: %v", stats.ByKind)
	}
}

func TestEngine_AdjustParameters(t *testing.T) {
	engine := NewEngine(Options{})

	got := engine.AdjustParameters("gobuster", domain.ErrorKindRateLimited, map[string]string{"threads": "50"})
	if got["threads"] != "5" || got["rate-limit"] != "10" {
		t.Errorf("AdjustParameters = %v, want throttled values", got)
	}
}

func TestEngine_GetAlternative(t *testing.T) {
	engine := NewEngine(Options{})

	alt, ok := engine.GetAlternative("nmap", Constraints{RequireNoPrivileges: true})
	if !ok || alt != "rustscan" {
		t.Errorf("GetAlternative(nmap, no-priv) = %q, %v; want rustscan, true", alt, ok)
	}
}

func TestEngine_ToolHealthFeedsFromOutcomes(t *testing.T) {
	engine := NewEngine(Options{})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		engine.HandleFailure(ctx, "nikto",
			ToolError{Message: "connection timed out"},
			CallContext{Target: "https://example.com", AttemptCount: i + 1})
	}

	health := engine.ToolHealth()
	if health["nikto"].Status != domain.ToolStatusFailing {
		t.Fatalf("nikto status = %v, want failing", health["nikto"].Status)
	}

	engine.RecordSuccess("nikto")
	health = engine.ToolHealth()
	if health["nikto"].Status == domain.ToolStatusFailing {
		t.Error("success must clear failing state")
	}
}

func TestEngine_Escalate_Direct(t *testing.T) {
	sink := &mockSink{name: "mock"}
	engine := NewEngine(Options{Sinks: []EscalationSink{sink}})

	fc := incident("amass", "example.com", "expired token", domain.ErrorKindAuthFailed)
	report := engine.Escalate(context.Background(), fc, domain.UrgencyHigh)

	if report.Urgency != domain.UrgencyHigh {
		t.Errorf("urgency = %v, want high", report.Urgency)
	}
	if len(sink.delivered()) != 1 {
		t.Error("direct escalation must reach sinks")
	}
}
