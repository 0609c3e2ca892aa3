package account

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
)

type GetAccountInput struct {
	AccountID string `path:"accountID" minLength:"1" doc:"External account id"`
}

type GetAccountOutput struct {
	Body Account
}

type accountGetter interface {
	GetAccount(ctx context.Context, accountID string) (*service.Account, error)
}

// GetAccountHandler handles GET /v1/account/{accountID}.
type GetAccountHandler struct {
	AccountService accountGetter
}

func NewGetAccountHandler(svc accountGetter) *GetAccountHandler {
	return &GetAccountHandler{AccountService: svc}
}

func (h *GetAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-account",
		Method:      http.MethodGet,
		Path:        "/v1/account/{accountID}",
		Summary:     "Get an account",
		Description: "Returns one account with its balance and remaining credit line.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *GetAccountHandler) handle(ctx context.Context, input *GetAccountInput) (*GetAccountOutput, error) {
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("accountID", input.AccountID)
	}

	acc, err := h.AccountService.GetAccount(ctx, input.AccountID)
	if errors.Is(err, service.ErrAccountNotFound) {
		return nil, huma.Error404NotFound("account not found")
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to get account", err)
	}

	return &GetAccountOutput{Body: toAccount(*acc)}, nil
}
