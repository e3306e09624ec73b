package recovery

import (
	"context"
	"log/slog"
	"time"

	"github.com/scanops/triage/internal/core/domain"
	"github.com/scanops/triage/internal/metrics"
)

// ResourceProber supplies the best-effort host snapshot attached to each
// incident. Implementations must degrade to Available=false instead of
// failing; the decision path never depends on the probe.
type ResourceProber interface {
	Snapshot() domain.ResourceSnapshot
}

// noopProber is used when no prober is configured.
type noopProber struct{}

func (noopProber) Snapshot() domain.ResourceSnapshot { return domain.ResourceSnapshot{} }

// ToolError is the raw failure as reported by the tool runner.
type ToolError struct {
	Message string
	Tag     domain.KindTag
}

// CallContext describes the failed invocation. AttemptCount starts at 1 and
// must increase on every re-invocation of the same logical operation.
type CallContext struct {
	Target       string
	Parameters   map[string]string
	AttemptCount int
	StackTrace   string
}

// Engine is the failure-recovery facade. Classification, selection,
// substitution, and parameter adjustment are pure; the only shared state is
// the ledger and the health tracker, which guard themselves. One engine
// serves any number of concurrent tool runners.
type Engine struct {
	catalog  *Catalog
	selector *Selector
	ledger   *Ledger
	reporter *Reporter
	health   *HealthTracker
	prober   ResourceProber
	sinks    []EscalationSink
	log      *slog.Logger
}

// Options configures an Engine. Zero values get working defaults.
type Options struct {
	LedgerCapacity int
	Selector       SelectorConfig
	Prober         ResourceProber
	Sinks          []EscalationSink
	Logger         *slog.Logger
}

// NewEngine wires the engine from its parts.
func NewEngine(opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Prober == nil {
		opts.Prober = noopProber{}
	}
	ledger := NewLedger(opts.LedgerCapacity)
	return &Engine{
		catalog:  NewCatalog(),
		selector: NewSelector(opts.Selector),
		ledger:   ledger,
		reporter: NewReporter(ledger),
		health:   NewHealthTracker(0),
		prober:   opts.Prober,
		sinks:    opts.Sinks,
		log:      opts.Logger,
	}
}

// HandleFailure makes one bounded recovery decision: classify the failure,
// record the incident, and select the most promising strategy for the current
// attempt. Never fails and never returns "no decision"; at true exhaustion the
// returned strategy is a terminal human escalation, already delivered to the
// configured sinks. The context is used only for sink delivery.
func (e *Engine) HandleFailure(ctx context.Context, tool string, toolErr ToolError, call CallContext) domain.RecoveryStrategy {
	kind := Classify(toolErr.Message, toolErr.Tag)
	attempts := call.AttemptCount
	if attempts < 1 {
		attempts = 1
	}

	fc := domain.FailureContext{
		ToolName:          tool,
		Target:            call.Target,
		Parameters:        call.Parameters,
		ErrorKind:         kind,
		ErrorMessage:      toolErr.Message,
		AttemptCount:      attempts,
		Timestamp:         time.Now(),
		StackTrace:        call.StackTrace,
		SystemResources:   e.prober.Snapshot(),
		PreviousIncidents: e.ledger.Lineage(tool, call.Target, 0),
	}
	fc = e.ledger.Append(fc)

	e.health.RecordFailure(tool, kind)
	metrics.IncidentsTotal.WithLabelValues(string(kind), tool).Inc()
	metrics.LedgerSize.Set(float64(e.ledger.Size()))

	strategy := e.selector.Select(e.catalog.Strategies(kind), fc)
	metrics.RecoveriesTotal.WithLabelValues(string(strategy.Action)).Inc()

	e.log.Warn("Recovery strategy selected",
		"tool", tool,
		"target", call.Target,
		"error_kind", kind,
		"attempt", attempts,
		"action", strategy.Action,
	)

	if strategy.Action == domain.ActionEscalateToHuman {
		urgency, _ := strategy.Parameters["urgency"].(domain.Urgency)
		e.deliverEscalation(ctx, e.reporter.Escalate(fc, urgency))
	}

	return strategy
}

// RecordSuccess tells the engine a tool run completed, feeding the health view.
func (e *Engine) RecordSuccess(tool string) {
	e.health.RecordSuccess(tool)
}

// AdjustParameters rewrites tool parameters for a failure kind. Pure.
func (e *Engine) AdjustParameters(tool string, kind domain.ErrorKind, params map[string]string) map[string]string {
	return AdjustParameters(tool, kind, params)
}

// GetAlternative returns the best substitute tool under the constraints.
func (e *Engine) GetAlternative(tool string, c Constraints) (string, bool) {
	return BestAlternative(tool, c)
}

// Escalate builds and delivers an escalation for an already-recorded incident.
func (e *Engine) Escalate(ctx context.Context, fc domain.FailureContext, urgency domain.Urgency) domain.EscalationReport {
	report := e.reporter.Escalate(fc, urgency)
	e.deliverEscalation(ctx, report)
	return report
}

// Statistics returns the on-demand ledger aggregate.
func (e *Engine) Statistics() domain.LedgerStats {
	return e.ledger.Statistics()
}

// ToolHealth returns the rolling per-tool health report.
func (e *Engine) ToolHealth() map[string]domain.ToolHealth {
	return e.health.Report()
}

// Ledger exposes the incident arena for collaborators (status CLI, tests).
func (e *Engine) Ledger() *Ledger {
	return e.ledger
}

func (e *Engine) deliverEscalation(ctx context.Context, report domain.EscalationReport) {
	metrics.EscalationsTotal.WithLabelValues(string(report.Urgency)).Inc()
	for _, sink := range e.sinks {
		if err := sink.Deliver(ctx, report); err != nil {
			// Sink trouble must not affect the decision already made.
			metrics.SinkErrorsTotal.WithLabelValues(sink.Name()).Inc()
			e.log.Warn("Escalation sink delivery failed", "sink", sink.Name(), "error", err)
		}
	}
}
