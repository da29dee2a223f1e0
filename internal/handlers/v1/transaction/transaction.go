package transaction

import (
	"time"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

// Transaction is the API representation of a ledger record.
type Transaction struct {
	ID                   string `json:"id" doc:"Transaction UUID"`
	Kind                 string `json:"kind" enum:"credit,debit,transfer" doc:"Record kind"`
	Amount               string `json:"amount" doc:"Decimal amount moved"`
	Description          string `json:"description" doc:"Human readable description"`
	SourceAccountID      string `json:"sourceAccountId" doc:"Account the operation was applied to"`
	DestinationAccountID string `json:"destinationAccountId,omitempty" doc:"Receiving account, transfers only"`
	CreatedAt            string `json:"createdAt" doc:"RFC3339 creation timestamp"`
}

// FromLedger converts a domain record into its API shape.
func FromLedger(r *ledger.Record) Transaction {
	t := Transaction{
		ID:              r.ID.String(),
		Kind:            r.Kind.String(),
		Amount:          r.Amount.String(),
		Description:     r.Description,
		SourceAccountID: r.SourceAccountID.String(),
		CreatedAt:       r.CreatedAt.Format(time.RFC3339),
	}
	if r.DestinationAccountID != nil {
		t.DestinationAccountID = r.DestinationAccountID.String()
	}
	return t
}
