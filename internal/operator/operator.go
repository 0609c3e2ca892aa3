package operator

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// Operator is the worker that processes items from the queue.
type Operator struct {
	storage *storage.Storage
	guard   *guard
	queue   chan ActionItem
	onTake  func()
}

func NewOperator(s *storage.Storage, g *guard, queue chan ActionItem, onTake func()) *Operator {
	return &Operator{
		storage: s,
		guard:   g,
		queue:   queue,
		onTake:  onTake,
	}
}

// Run listens to the queue and processes items. Exits when the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		if o.onTake != nil {
			o.onTake()
		}
		o.processItem(item)
	}
}

func (o *Operator) processItem(item ActionItem) {
	// The caller is gone; nothing has been applied yet, so skip the action.
	if err := item.ctx.Err(); err != nil {
		item.response <- ActionItemResponse{err: err}
		return
	}

	release := o.guard.acquire(item.action.Scope())
	err := o.execute(context.WithoutCancel(item.ctx), item.action)
	release()

	item.response <- ActionItemResponse{err: err}
}

// execute runs action inside one write transaction. Once started it runs to
// commit or rollback regardless of the caller.
func (o *Operator) execute(ctx context.Context, action actions.IAction) error {
	writer, err := o.storage.Write(ctx)
	if err != nil {
		return err
	}

	if err = action.Perform(ctx, writer); err != nil {
		if rbErr := writer.Rollback(ctx); rbErr != nil {
			logrus.WithError(rbErr).Warnf("Operator.%v.RollbackFailed", action.Name())
		}
		return err
	}

	return writer.Commit(ctx)
}

type ActionItem struct {
	ctx      context.Context
	action   actions.IAction
	response chan ActionItemResponse
}

type ActionItemResponse struct {
	err error
}
