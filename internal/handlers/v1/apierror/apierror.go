package apierror

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/service"
)

// zeroNotFound renders as a bare JSON 0 with status 404, the ledger's reply
// for an unknown account.
type zeroNotFound struct {
	cause error
}

func (e *zeroNotFound) Error() string {
	return e.cause.Error()
}

func (e *zeroNotFound) Unwrap() error {
	return e.cause
}

func (e *zeroNotFound) GetStatus() int {
	return http.StatusNotFound
}

func (e *zeroNotFound) MarshalJSON() ([]byte, error) {
	return []byte("0"), nil
}

// FromLedger maps a ledger service error to the huma error the API returns.
func FromLedger(err error, message string) error {
	switch {
	case errors.Is(err, service.ErrAccountNotFound):
		return &zeroNotFound{cause: err}
	case errors.Is(err, service.ErrInsufficientFunds):
		return huma.Error409Conflict(err.Error())
	case errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrMissingAccountID),
		errors.Is(err, service.ErrSameAccount):
		return huma.Error400BadRequest(err.Error())
	default:
		var se huma.StatusError
		if errors.As(err, &se) {
			return err
		}
		return huma.NewError(http.StatusInternalServerError, message, err)
	}
}
