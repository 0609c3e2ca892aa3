package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-server/internal/metrics"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// LedgerService handles the ledger's business operations. Mutations are
// handed to the operator as actions; reads go straight to storage.
type LedgerService struct {
	storage   *storage.Storage
	processor actionProcessor
	metrics   metrics.MetricsCollector
}

func NewLedgerService(store *storage.Storage, processor actionProcessor, collector metrics.MetricsCollector) *LedgerService {
	if collector == nil {
		collector = metrics.NoOpCollector{}
	}
	return &LedgerService{
		storage:   store,
		processor: processor,
		metrics:   collector,
	}
}

// Balance returns the account's current balance.
func (s *LedgerService) Balance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	start := time.Now()

	acc, err := s.storage.Reader.Accounts.FindByAccountID(ctx, accountID)
	if err == nil && acc == nil {
		err = ErrAccountNotFound
	}
	s.observe("balance", start, err)
	if err != nil {
		return decimal.Zero, err
	}

	return acc.Balance, nil
}

// Deposit adds amount to the destination account, opening it on first use.
func (s *LedgerService) Deposit(ctx context.Context, destination string, amount decimal.Decimal) (*DepositResult, error) {
	if destination == "" {
		return nil, ErrMissingAccountID
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	action := &actions.Deposit{Destination: destination, Amount: amount}
	if err := s.process(ctx, action); err != nil {
		return nil, err
	}

	return &DepositResult{
		Destination: stateFromAction(action.Result.Destination),
		Opened:      action.Result.Opened,
	}, nil
}

// Withdraw takes amount from the origin account, drawing on its credit line
// once the balance runs out.
func (s *LedgerService) Withdraw(ctx context.Context, origin string, amount decimal.Decimal) (*WithdrawResult, error) {
	if origin == "" {
		return nil, ErrMissingAccountID
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	action := &actions.Withdraw{Origin: origin, Amount: amount}
	if err := s.process(ctx, action); err != nil {
		return nil, err
	}

	return &WithdrawResult{Origin: stateFromAction(action.Result.Origin)}, nil
}

// Transfer moves amount of balance from origin to destination.
func (s *LedgerService) Transfer(ctx context.Context, origin, destination string, amount decimal.Decimal) (*TransferResult, error) {
	if origin == "" || destination == "" {
		return nil, ErrMissingAccountID
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	action := &actions.Transfer{Origin: origin, Destination: destination, Amount: amount}
	if err := s.process(ctx, action); err != nil {
		return nil, err
	}

	return &TransferResult{
		Origin:      stateFromAction(action.Result.Origin),
		Destination: stateFromAction(action.Result.Destination),
	}, nil
}

// Reset deletes every account and transaction.
func (s *LedgerService) Reset(ctx context.Context) error {
	return s.process(ctx, &actions.Reset{})
}

func (s *LedgerService) process(ctx context.Context, action actions.IAction) error {
	start := time.Now()
	err := s.processor.Process(ctx, action)
	s.observe(action.Name(), start, err)

	if err != nil && !actions.IsRejection(err) {
		logrus.WithError(err).WithField("operation", action.Name()).Error("LedgerService.process")
	}
	return err
}

func (s *LedgerService) observe(operation string, start time.Time, err error) {
	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeError
		if actions.IsRejection(err) {
			outcome = metrics.OutcomeRejected
		}
	}
	s.metrics.RecordOperation(operation, outcome, time.Since(start))
}
