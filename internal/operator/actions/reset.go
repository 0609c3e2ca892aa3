package actions

import (
	"context"

	"github.com/carson-networks/ledger-server/internal/storage"
)

// Reset clears every account and then the whole transaction log.
type Reset struct{}

func (r *Reset) Name() string { return "reset" }

func (r *Reset) Scope() Scope {
	return Scope{Exclusive: true}
}

func (r *Reset) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := writer.Account.DeleteAll(ctx); err != nil {
		return err
	}
	return writer.Transaction.DeleteAll(ctx)
}
