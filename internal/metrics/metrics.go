package metrics

import (
	"time"
)

// Operation outcomes.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// MetricsCollector defines the interface for collecting ledger metrics.
type MetricsCollector interface {
	// RecordOperation records one ledger operation and how long it took,
	// queueing included.
	RecordOperation(operation string, outcome string, duration time.Duration)

	// RecordQueueDepth records how many actions wait for a worker.
	RecordQueueDepth(depth int)
}

// NoOpCollector is used when metrics are not needed.
type NoOpCollector struct{}

func (NoOpCollector) RecordOperation(operation string, outcome string, duration time.Duration) {}

func (NoOpCollector) RecordQueueDepth(depth int) {}
