package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// IncidentsTotal counts classified failures per kind and tool
	IncidentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_incidents_total",
			Help: "Total number of classified tool failures",
		},
		[]string{"kind", "tool"},
	)

	// RecoveriesTotal counts selected recovery strategies per action
	RecoveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_recoveries_total",
			Help: "Total number of recovery strategies selected",
		},
		[]string{"action"},
	)

	// EscalationsTotal counts human escalations per urgency
	EscalationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_escalations_total",
			Help: "Total number of human escalations emitted",
		},
		[]string{"urgency"},
	)

	// LedgerSize tracks the number of incidents retained in the ledger
	LedgerSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "triage_ledger_size",
			Help: "Incidents currently retained in the ledger",
		},
	)

	// SinkErrorsTotal counts failed escalation deliveries per sink
	SinkErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_sink_errors_total",
			Help: "Total number of failed escalation sink deliveries",
		},
		[]string{"sink"},
	)
)
