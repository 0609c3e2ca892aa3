package reset

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// ResetOutput is a plain-text OK.
type ResetOutput struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

type resetter interface {
	Reset(ctx context.Context) error
}

// ResetHandler handles POST /reset.
type ResetHandler struct {
	Ledger resetter
}

func NewResetHandler(svc resetter) *ResetHandler {
	return &ResetHandler{Ledger: svc}
}

func (h *ResetHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "reset",
		Method:      http.MethodPost,
		Path:        "/reset",
		Summary:     "Reset the ledger",
		Description: "Deletes every account and transaction.",
		Tags:        []string{"Ledger"},
	}, h.handle)
}

func (h *ResetHandler) handle(ctx context.Context, _ *struct{}) (*ResetOutput, error) {
	if err := h.Ledger.Reset(ctx); err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to reset ledger", err)
	}

	return &ResetOutput{
		ContentType: "text/plain",
		Body:        []byte("OK"),
	}, nil
}
