package actions

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrAccountNotFound   = errors.New("account does not exist")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSameAccount       = errors.New("origin and destination are the same account")
)

// InsufficientFundsError reports a rejected withdrawal or transfer. It
// matches ErrInsufficientFunds with errors.Is.
type InsufficientFundsError struct {
	Operation string
	AccountID string
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds for %s on account %s: available %s, requested %s",
		e.Operation, e.AccountID, e.Available.String(), e.Requested.String())
}

func (e *InsufficientFundsError) Unwrap() error {
	return ErrInsufficientFunds
}

func accountNotFound(accountID string) error {
	return fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
}

// IsRejection reports whether err is an expected business outcome rather
// than a fault.
func IsRejection(err error) bool {
	return errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrInsufficientFunds) ||
		errors.Is(err, ErrSameAccount)
}
