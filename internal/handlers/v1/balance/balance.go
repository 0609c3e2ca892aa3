package balance

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/apierror"
	"github.com/carson-networks/ledger-server/internal/logging"
)

// BalanceInput is the Huma input for querying an account's balance.
type BalanceInput struct {
	AccountID string `query:"account_id" required:"true" minLength:"1" doc:"External account id"`
}

// BalanceOutput is the bare balance number.
type BalanceOutput struct {
	Body float64
}

type balanceReader interface {
	Balance(ctx context.Context, accountID string) (decimal.Decimal, error)
}

// BalanceHandler handles GET /balance.
type BalanceHandler struct {
	Ledger balanceReader
}

func NewBalanceHandler(svc balanceReader) *BalanceHandler {
	return &BalanceHandler{Ledger: svc}
}

func (h *BalanceHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-balance",
		Method:      http.MethodGet,
		Path:        "/balance",
		Summary:     "Get an account balance",
		Description: "Returns the balance as a bare number, or 0 with status 404 for an unknown account.",
		Tags:        []string{"Ledger"},
	}, h.handle)
}

func (h *BalanceHandler) handle(ctx context.Context, input *BalanceInput) (*BalanceOutput, error) {
	logData := logging.GetLogData(ctx)
	if logData != nil {
		logData.AddData("accountID", input.AccountID)
	}

	balance, err := h.Ledger.Balance(ctx, input.AccountID)
	if err != nil {
		return nil, apierror.FromLedger(err, "failed to read balance")
	}

	return &BalanceOutput{Body: balance.InexactFloat64()}, nil
}
