package recovery

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/scanops/triage/internal/core/domain"
)

// DefaultLedgerCapacity bounds the incident history unless configured.
const DefaultLedgerCapacity = 1000

// Ledger is the bounded, append-only incident arena. It owns every
// FailureContext by value; lineage between incidents is expressed as IDs into
// the arena, never as embedded copies, so history cannot grow cyclically.
// Appends and pruning are serialized behind one mutex; reads take a consistent
// snapshot under the read lock.
type Ledger struct {
	mu       sync.RWMutex
	capacity int
	// incidents holds the newest capacity entries in append order. evicted
	// counts entries pruned from the head, so an entry's arena sequence is
	// evicted+index.
	incidents []domain.FailureContext
	seqByID   map[string]int
	evicted   int
}

// NewLedger creates a ledger with the given capacity; zero or negative means
// DefaultLedgerCapacity.
func NewLedger(capacity int) *Ledger {
	if capacity <= 0 {
		capacity = DefaultLedgerCapacity
	}
	return &Ledger{
		capacity: capacity,
		seqByID:  make(map[string]int),
	}
}

// Append assigns the incident an ID, inserts it at the tail, and prunes from
// the head while over capacity. Returns the stored value.
func (l *Ledger) Append(fc domain.FailureContext) domain.FailureContext {
	l.mu.Lock()
	defer l.mu.Unlock()

	if fc.ID == "" {
		fc.ID = uuid.New().String()
	}
	l.seqByID[fc.ID] = l.evicted + len(l.incidents)
	l.incidents = append(l.incidents, fc)

	for len(l.incidents) > l.capacity {
		delete(l.seqByID, l.incidents[0].ID)
		l.incidents = l.incidents[1:]
		l.evicted++
	}

	return fc
}

// Get returns the incident with the given ID, if it is still in the arena.
func (l *Ledger) Get(id string) (domain.FailureContext, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.getLocked(id)
}

func (l *Ledger) getLocked(id string) (domain.FailureContext, bool) {
	seq, ok := l.seqByID[id]
	if !ok {
		return domain.FailureContext{}, false
	}
	idx := seq - l.evicted
	if idx < 0 || idx >= len(l.incidents) {
		return domain.FailureContext{}, false
	}
	return l.incidents[idx], true
}

// Size returns the current number of retained incidents.
func (l *Ledger) Size() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.incidents)
}

// Lineage returns the IDs of retained incidents for the same tool and target,
// oldest first, capped to limit (0 means no cap).
func (l *Ledger) Lineage(tool, target string, limit int) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var ids []string
	for _, fc := range l.incidents {
		if fc.ToolName == tool && fc.Target == target {
			ids = append(ids, fc.ID)
		}
	}
	if limit > 0 && len(ids) > limit {
		ids = ids[len(ids)-limit:]
	}
	return ids
}

// Messages resolves lineage IDs to their raw error messages, newest last,
// capped to limit. IDs already evicted from the arena are skipped.
func (l *Ledger) Messages(ids []string, limit int) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var msgs []string
	for _, id := range ids {
		if fc, ok := l.getLocked(id); ok {
			msgs = append(msgs, fc.ErrorMessage)
		}
	}
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return msgs
}

// Statistics aggregates the arena on demand: totals, counts by kind and tool,
// and incidents within the last hour with the 10 most recent for display.
// Nothing is cached; the numbers always reflect the arena as of the call.
func (l *Ledger) Statistics() domain.LedgerStats {
	l.mu.RLock()
	defer l.mu.RUnlock()

	stats := domain.LedgerStats{
		TotalIncidents: len(l.incidents),
		ByKind:         make(map[domain.ErrorKind]int),
		ByTool:         make(map[string]int),
	}

	cutoff := time.Now().Add(-time.Hour)
	var recent []domain.RecentIncident
	for _, fc := range l.incidents {
		stats.ByKind[fc.ErrorKind]++
		stats.ByTool[fc.ToolName]++
		if fc.Timestamp.After(cutoff) {
			recent = append(recent, domain.RecentIncident{
				Tool:      fc.ToolName,
				ErrorKind: fc.ErrorKind,
				Timestamp: fc.Timestamp,
			})
		}
	}

	stats.RecentCount = len(recent)
	if len(recent) > 10 {
		recent = recent[len(recent)-10:]
	}
	stats.Recent = recent
	return stats
}
