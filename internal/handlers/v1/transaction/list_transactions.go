package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
)

// Page is the pagination cursor exchanged with clients. MaxCreationTime is
// pinned by the first page so rows logged later never shift the offsets.
type Page struct {
	Position        int    `json:"position" minimum:"0"`
	Limit           int    `json:"limit" minimum:"1" maximum:"100"`
	MaxCreationTime string `json:"maxCreationTime" format:"date-time"`
}

type ListTransactionsBody struct {
	AccountID string `json:"accountID,omitempty" doc:"Only entries where this account is origin or destination"`
	Page      *Page  `json:"cursor,omitempty" doc:"nextCursor from the previous response"`
}

type ListTransactionsInput struct {
	Body ListTransactionsBody
}

type ListTransactionsOutput struct {
	Body struct {
		Transactions []Transaction `json:"transactions"`
		NextPage     *Page         `json:"nextCursor,omitempty"`
	}
}

type transactionLister interface {
	ListTransactions(ctx context.Context, accountID string, cursor *service.TransactionCursor) ([]service.Transaction, *service.TransactionCursor, error)
}

// ListTransactionsHandler serves the transaction log, newest first.
type ListTransactionsHandler struct {
	TransactionService transactionLister
}

func NewListTransactionsHandler(svc transactionLister) *ListTransactionsHandler {
	return &ListTransactionsHandler{TransactionService: svc}
}

func (h *ListTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodPost,
		Path:        "/v1/transaction/list",
		Summary:     "List logged transactions",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (p *Page) toCursor() (*service.TransactionCursor, error) {
	if p == nil {
		return nil, nil
	}
	maxCreationTime, err := time.Parse(time.RFC3339Nano, p.MaxCreationTime)
	if err != nil {
		return nil, huma.Error400BadRequest("invalid cursor maxCreationTime", err)
	}
	return &service.TransactionCursor{
		Position:        p.Position,
		Limit:           p.Limit,
		MaxCreationTime: maxCreationTime,
	}, nil
}

func pageFromCursor(c *service.TransactionCursor) *Page {
	if c == nil {
		return nil
	}
	return &Page{
		Position:        c.Position,
		Limit:           c.Limit,
		MaxCreationTime: c.MaxCreationTime.Format(time.RFC3339Nano),
	}
}

func (h *ListTransactionsHandler) handle(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	cursor, err := input.Body.Page.toCursor()
	if err != nil {
		return nil, err
	}

	logData := logging.GetLogData(ctx)
	stop := func() {}
	if logData != nil {
		logData.AddData("accountID", input.Body.AccountID)
		stop = logData.AddTiming("listTransactionsMs")
	}
	rows, next, err := h.TransactionService.ListTransactions(ctx, input.Body.AccountID, cursor)
	stop()
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to list transactions", err)
	}

	out := &ListTransactionsOutput{}
	out.Body.Transactions = make([]Transaction, 0, len(rows))
	for _, row := range rows {
		out.Body.Transactions = append(out.Body.Transactions, fromService(row))
	}
	out.Body.NextPage = pageFromCursor(next)
	return out, nil
}
