package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/scanops/triage/internal/core/domain"
)

// escalationTTL bounds how long an undelivered record survives in Redis.
const escalationTTL = 7 * 24 * time.Hour

// EscalationQueue is a Redis-backed escalation sink: records are stored as
// JSON values with a ZSet priority queue on top, highest urgency first and
// FIFO within the same urgency. An operator console or notifier pops from the
// other end; this side only pushes.
type EscalationQueue struct {
	rdb *redis.Client
}

// NewEscalationQueue creates a queue on an existing client.
func NewEscalationQueue(client *Client) *EscalationQueue {
	return &EscalationQueue{rdb: client.rdb}
}

// Key helpers
func queueKey() string {
	return "escalations:pending"
}

func reportKey(id string) string {
	return fmt.Sprintf("escalation:%s", id)
}

// urgencyRank orders queue entries; lower score pops first.
func urgencyRank(u domain.Urgency) float64 {
	switch u {
	case domain.UrgencyHigh:
		return 0
	case domain.UrgencyMedium:
		return 1
	default:
		return 2
	}
}

// Name identifies the sink in logs and metrics.
func (q *EscalationQueue) Name() string { return "redis" }

// Deliver pushes an escalation report onto the queue.
func (q *EscalationQueue) Deliver(ctx context.Context, report domain.EscalationReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal escalation: %w", err)
	}

	if err := q.rdb.Set(ctx, reportKey(report.ID), data, escalationTTL).Err(); err != nil {
		return fmt.Errorf("failed to set escalation: %w", err)
	}

	// Score: urgency rank shifted by timestamp so equal urgencies stay FIFO.
	score := urgencyRank(report.Urgency)*1e12 + float64(report.Timestamp.UnixMilli())
	if err := q.rdb.ZAdd(ctx, queueKey(), redis.Z{
		Score:  score,
		Member: report.ID,
	}).Err(); err != nil {
		return fmt.Errorf("failed to add to queue: %w", err)
	}

	return nil
}

// PopNext retrieves and removes the most urgent pending escalation.
func (q *EscalationQueue) PopNext(ctx context.Context) (*domain.EscalationReport, error) {
	results, err := q.rdb.ZRange(ctx, queueKey(), 0, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("zrange failed: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	id := results[0]
	if err := q.rdb.ZRem(ctx, queueKey(), id).Err(); err != nil {
		return nil, fmt.Errorf("failed to remove from queue: %w", err)
	}

	data, err := q.rdb.Get(ctx, reportKey(id)).Bytes()
	if err == redis.Nil {
		// Data expired but ID still queued; nothing to deliver.
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get escalation: %w", err)
	}

	var report domain.EscalationReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal escalation: %w", err)
	}

	return &report, nil
}

// PendingCount returns the number of queued escalations.
func (q *EscalationQueue) PendingCount(ctx context.Context) (int64, error) {
	n, err := q.rdb.ZCard(ctx, queueKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("zcard failed: %w", err)
	}
	return n, nil
}
