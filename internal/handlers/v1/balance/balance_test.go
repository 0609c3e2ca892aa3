package balance

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/ledger-server/internal/service"
)

type mockBalanceReader struct {
	mock.Mock
}

func (m *mockBalanceReader) Balance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID)
	balance, _ := args.Get(0).(decimal.Decimal)
	return balance, args.Error(1)
}

func newTestAPI(t *testing.T, svc balanceReader) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewBalanceHandler(svc).Register(api)
	return api
}

func TestHTTP_Balance_Found(t *testing.T) {
	svc := new(mockBalanceReader)
	svc.On("Balance", mock.Anything, "200").Return(decimal.RequireFromString("150"), nil)

	resp := newTestAPI(t, svc).Get("/balance?account_id=200")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "150", strings.TrimSpace(resp.Body.String()))
}

func TestHTTP_Balance_Fractional(t *testing.T) {
	svc := new(mockBalanceReader)
	svc.On("Balance", mock.Anything, "200").Return(decimal.RequireFromString("20.5"), nil)

	resp := newTestAPI(t, svc).Get("/balance?account_id=200")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "20.5", strings.TrimSpace(resp.Body.String()))
}

func TestHTTP_Balance_NotFound(t *testing.T) {
	svc := new(mockBalanceReader)
	svc.On("Balance", mock.Anything, "nope").Return(decimal.Zero, service.ErrAccountNotFound)

	resp := newTestAPI(t, svc).Get("/balance?account_id=nope")

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "0", strings.TrimSpace(resp.Body.String()))
}

func TestHTTP_Balance_MissingAccountID(t *testing.T) {
	svc := new(mockBalanceReader)

	resp := newTestAPI(t, svc).Get("/balance")

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	svc.AssertNotCalled(t, "Balance", mock.Anything, mock.Anything)
}

func TestHTTP_Balance_ServiceError(t *testing.T) {
	svc := new(mockBalanceReader)
	svc.On("Balance", mock.Anything, "200").Return(decimal.Zero, errors.New("db down"))

	resp := newTestAPI(t, svc).Get("/balance?account_id=200")

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}
