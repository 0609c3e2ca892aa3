package operator

import (
	"context"
	"errors"
	"sync"

	"github.com/carson-networks/ledger-server/internal/metrics"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
)

const queueSize = 1000

var ErrStopped = errors.New("operator delegator is stopped")

// OperatorDelegator manages the queue, starts/stops Operators (workers), and enqueues items.
type OperatorDelegator struct {
	storage    *storage.Storage
	metrics    metrics.MetricsCollector
	guard      *guard
	queue      chan ActionItem
	numWorkers int
	wg         sync.WaitGroup

	stateMu  sync.RWMutex
	started  bool
	stopped  bool
	stopOnce sync.Once
}

func NewOperatorDelegator(s *storage.Storage, numWorkers int, collector metrics.MetricsCollector) *OperatorDelegator {
	if numWorkers < 1 {
		numWorkers = 1
	}
	if collector == nil {
		collector = metrics.NoOpCollector{}
	}
	return &OperatorDelegator{
		storage:    s,
		metrics:    collector,
		guard:      newGuard(),
		queue:      make(chan ActionItem, queueSize),
		numWorkers: numWorkers,
	}
}

func (d *OperatorDelegator) Start() {
	d.stateMu.Lock()
	d.started = true
	d.stateMu.Unlock()

	for i := 0; i < d.numWorkers; i++ {
		d.wg.Add(1)
		op := NewOperator(d.storage, d.guard, d.queue, d.recordQueueDepth)
		go func() {
			defer d.wg.Done()
			op.Run()
		}()
	}
}

// Stop refuses new actions, lets the workers drain the queue and waits for them.
func (d *OperatorDelegator) Stop() {
	d.stopOnce.Do(func() {
		d.stateMu.Lock()
		d.stopped = true
		close(d.queue)
		d.stateMu.Unlock()
		d.wg.Wait()
	})
}

// Running reports whether workers are started and accepting actions.
func (d *OperatorDelegator) Running() bool {
	d.stateMu.RLock()
	defer d.stateMu.RUnlock()
	return d.started && !d.stopped
}

// Process queues action and waits for a worker to apply it. It returns the
// action's error, or ctx.Err() if the caller stops waiting first.
func (d *OperatorDelegator) Process(ctx context.Context, action actions.IAction) error {
	respCh := make(chan ActionItemResponse, 1)
	item := ActionItem{
		ctx:      ctx,
		action:   action,
		response: respCh,
	}

	if err := d.enqueue(ctx, item); err != nil {
		return err
	}

	select {
	case resp := <-respCh:
		return resp.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *OperatorDelegator) enqueue(ctx context.Context, item ActionItem) error {
	d.stateMu.RLock()
	defer d.stateMu.RUnlock()

	if d.stopped {
		return ErrStopped
	}

	select {
	case d.queue <- item:
		d.recordQueueDepth()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *OperatorDelegator) recordQueueDepth() {
	d.metrics.RecordQueueDepth(len(d.queue))
}
