package service

import (
	"context"

	"github.com/carson-networks/ledger-server/internal/metrics"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// actionProcessor runs an action to completion against storage.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Service holds all business logic services.
type Service struct {
	Ledger *LedgerService
}

// NewService creates a new Service with the given storage.
func NewService(store *storage.Storage, processor actionProcessor, collector metrics.MetricsCollector) *Service {
	return &Service{
		Ledger: NewLedgerService(store, processor, collector),
	}
}
