package account

import (
	"context"
	"errors"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// DefaultCreditLimit is the credit line every account opens with.
var DefaultCreditLimit = decimal.NewFromInt(1000)

var (
	ErrNotFound      = errors.New("account not found")
	ErrAlreadyExists = errors.New("account already exists")
)

// Account represents an account record.
type Account struct {
	ID        uuid.UUID
	AccountID string
	Balance   decimal.Decimal
	Credit    decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AccountCreate is the input for creating a new account.
type AccountCreate struct {
	AccountID string
	Balance   decimal.Decimal
}

// AccountUpdate holds the fields Save merges into an account. Unset fields
// are left untouched.
type AccountUpdate struct {
	Balance omit.Val[decimal.Decimal]
	Credit  omit.Val[decimal.Decimal]
}

// AccountFilter specifies filters for listing accounts.
type AccountFilter struct {
	Limit  int
	Offset int
}

// IAccountReader is the read side of the account store.
type IAccountReader interface {
	// FindByAccountID returns nil, nil when no account has the external id.
	FindByAccountID(ctx context.Context, accountID string) (*Account, error)
	List(ctx context.Context, filter *AccountFilter) ([]*Account, error)
}

// IAccountTable defines the interface for account storage operations.
// It enforces no business rules.
//
//go:generate mockery --name IAccountTable --inpackage --with-expecter
type IAccountTable interface {
	IAccountReader
	Create(ctx context.Context, create *AccountCreate) (*Account, error)
	Save(ctx context.Context, id uuid.UUID, update *AccountUpdate) (*Account, error)
	DeleteAll(ctx context.Context) error
}
