package transaction

import (
	"time"

	"github.com/carson-networks/ledger-server/internal/service"
)

// Transaction is one entry of the transaction log as returned by the API.
type Transaction struct {
	ID          string  `json:"id" doc:"Transaction UUID"`
	Type        string  `json:"type" enum:"deposit,withdraw,transfer"`
	Origin      string  `json:"origin,omitempty" doc:"Debited account id"`
	Destination string  `json:"destination,omitempty" doc:"Credited account id"`
	Amount      float64 `json:"amount"`
	CreatedAt   string  `json:"createdAt" format:"date-time"`
}

func fromService(tx service.Transaction) Transaction {
	return Transaction{
		ID:          tx.ID.String(),
		Type:        tx.Type,
		Origin:      tx.Origin.GetOrZero(),
		Destination: tx.Destination.GetOrZero(),
		Amount:      tx.Amount.InexactFloat64(),
		CreatedAt:   tx.CreatedAt.Format(time.RFC3339Nano),
	}
}
