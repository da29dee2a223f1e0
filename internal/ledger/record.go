package ledger

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// RecordKind classifies a transaction record. The amount is always
// positive; the kind plus source/destination encode direction.
type RecordKind int8

const (
	RecordKindCredit RecordKind = iota
	RecordKindDebit
	RecordKindTransfer
)

func (k RecordKind) String() string {
	switch k {
	case RecordKindCredit:
		return "credit"
	case RecordKindDebit:
		return "debit"
	case RecordKindTransfer:
		return "transfer"
	}
	return "unknown"
}

// Record is the immutable audit fact for one balance-affecting event.
// DestinationAccountID is set only for transfers; for credits and debits
// SourceAccountID is the account the operation was applied to.
type Record struct {
	ID                   uuid.UUID       `json:"id"`
	Kind                 RecordKind      `json:"kind"`
	Amount               decimal.Decimal `json:"amount"`
	Description          string          `json:"description"`
	SourceAccountID      uuid.UUID       `json:"sourceAccountId"`
	DestinationAccountID *uuid.UUID      `json:"destinationAccountId,omitempty"`
	CreatedAt            time.Time       `json:"createdAt"`
}
