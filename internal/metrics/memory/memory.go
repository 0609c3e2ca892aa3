package memory

import (
	"sync"
	"time"

	"github.com/carson-networks/ledger-server/internal/metrics"
)

// MemoryCollector implements MetricsCollector for in-memory testing.
type MemoryCollector struct {
	mu sync.RWMutex

	operations map[string]map[string]int64
	durations  map[string][]time.Duration
	queueDepth int
}

var _ metrics.MetricsCollector = (*MemoryCollector)(nil)

func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{
		operations: make(map[string]map[string]int64),
		durations:  make(map[string][]time.Duration),
	}
}

func (mc *MemoryCollector) RecordOperation(operation string, outcome string, duration time.Duration) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	outcomes, ok := mc.operations[operation]
	if !ok {
		outcomes = make(map[string]int64)
		mc.operations[operation] = outcomes
	}
	outcomes[outcome]++
	mc.durations[operation] = append(mc.durations[operation], duration)
}

func (mc *MemoryCollector) RecordQueueDepth(depth int) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.queueDepth = depth
}

// Count returns how often operation finished with outcome.
func (mc *MemoryCollector) Count(operation string, outcome string) int64 {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.operations[operation][outcome]
}

func (mc *MemoryCollector) Durations(operation string) []time.Duration {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	out := make([]time.Duration, len(mc.durations[operation]))
	copy(out, mc.durations[operation])
	return out
}

func (mc *MemoryCollector) QueueDepth() int {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.queueDepth
}

func (mc *MemoryCollector) Reset() {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.operations = make(map[string]map[string]int64)
	mc.durations = make(map[string][]time.Duration)
	mc.queueDepth = 0
}
