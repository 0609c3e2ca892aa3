package event

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/apierror"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
)

const (
	TypeDeposit  = "deposit"
	TypeWithdraw = "withdraw"
	TypeTransfer = "transfer"
)

// EventInput is the Huma input for posting a ledger event.
type EventInput struct {
	Body EventBody
}

// EventBody is the request body for a deposit, withdraw or transfer.
type EventBody struct {
	Type        string  `json:"type" enum:"deposit,withdraw,transfer" doc:"Event type"`
	Origin      string  `json:"origin,omitempty" doc:"Account debited by a withdraw or transfer"`
	Destination string  `json:"destination,omitempty" doc:"Account credited by a deposit or transfer"`
	Amount      float64 `json:"amount" exclusiveMinimum:"0" doc:"Amount moved"`
}

// AccountState is an account as it stands after the event.
type AccountState struct {
	ID      string   `json:"id" doc:"Account id"`
	Balance float64  `json:"balance" doc:"Balance after the event"`
	Credit  *float64 `json:"credit,omitempty" doc:"Remaining credit line, reported for withdrawals"`
}

// EventResponse carries the accounts the event touched.
type EventResponse struct {
	Origin      *AccountState `json:"origin,omitempty"`
	Destination *AccountState `json:"destination,omitempty"`
}

type EventOutput struct {
	Status int
	Body   EventResponse
}

// ledger is the interface for applying ledger events.
type ledger interface {
	Deposit(ctx context.Context, destination string, amount decimal.Decimal) (*service.DepositResult, error)
	Withdraw(ctx context.Context, origin string, amount decimal.Decimal) (*service.WithdrawResult, error)
	Transfer(ctx context.Context, origin, destination string, amount decimal.Decimal) (*service.TransferResult, error)
}

// EventHandler handles POST /event.
type EventHandler struct {
	Ledger ledger
}

func NewEventHandler(svc ledger) *EventHandler {
	return &EventHandler{Ledger: svc}
}

func (h *EventHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "post-event",
		Method:        http.MethodPost,
		Path:          "/event",
		Summary:       "Apply a ledger event",
		Description:   "Deposits into, withdraws from, or transfers between accounts. A deposit to an unknown account opens it.",
		Tags:          []string{"Ledger"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func (h *EventHandler) handle(ctx context.Context, input *EventInput) (*EventOutput, error) {
	logData := logging.GetLogData(ctx)
	body := input.Body
	amount := decimal.NewFromFloat(body.Amount)

	if logData != nil {
		logData.AddData("eventType", body.Type)
		logData.AddData("origin", body.Origin)
		logData.AddData("destination", body.Destination)
		logData.AddData("amount", amount.String())
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming(body.Type + "Ms")
	}
	resp, err := h.apply(ctx, body, amount)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierror.FromLedger(err, "failed to apply "+body.Type)
	}

	return &EventOutput{
		Status: http.StatusCreated,
		Body:   *resp,
	}, nil
}

func (h *EventHandler) apply(ctx context.Context, body EventBody, amount decimal.Decimal) (*EventResponse, error) {
	switch body.Type {
	case TypeDeposit:
		result, err := h.Ledger.Deposit(ctx, body.Destination, amount)
		if err != nil {
			return nil, err
		}
		return &EventResponse{Destination: balanceOnly(result.Destination)}, nil
	case TypeWithdraw:
		result, err := h.Ledger.Withdraw(ctx, body.Origin, amount)
		if err != nil {
			return nil, err
		}
		return &EventResponse{Origin: withCredit(result.Origin)}, nil
	case TypeTransfer:
		result, err := h.Ledger.Transfer(ctx, body.Origin, body.Destination, amount)
		if err != nil {
			return nil, err
		}
		return &EventResponse{
			Origin:      balanceOnly(result.Origin),
			Destination: balanceOnly(result.Destination),
		}, nil
	default:
		return nil, huma.Error400BadRequest("unknown event type " + body.Type)
	}
}

func balanceOnly(s service.AccountState) *AccountState {
	return &AccountState{
		ID:      s.ID,
		Balance: s.Balance.InexactFloat64(),
	}
}

func withCredit(s service.AccountState) *AccountState {
	state := balanceOnly(s)
	credit := s.Credit.InexactFloat64()
	state.Credit = &credit
	return state
}
