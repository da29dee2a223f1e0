package transaction

import (
	"context"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

// Row mirrors the transactions table. Seq is an insertion-ordered sequence
// used to break ties between records sharing a timestamp.
type Row struct {
	ID                   uuid.UUID           `db:"id"`
	Seq                  int64               `db:"seq"`
	Kind                 int16               `db:"kind"`
	Amount               decimal.Decimal     `db:"amount"`
	Description          string              `db:"description"`
	SourceAccountID      uuid.UUID           `db:"source_account_id"`
	DestinationAccountID null.Val[uuid.UUID] `db:"destination_account_id"`
	CreatedAt            time.Time           `db:"created_at"`
}

// Record converts the stored row into the domain record.
func (r *Row) Record() *ledger.Record {
	return &ledger.Record{
		ID:                   r.ID,
		Kind:                 ledger.RecordKind(r.Kind),
		Amount:               r.Amount,
		Description:          r.Description,
		SourceAccountID:      r.SourceAccountID,
		DestinationAccountID: r.DestinationAccountID.Ptr(),
		CreatedAt:            r.CreatedAt,
	}
}

// Create is the input for appending a new transaction record.
// DestinationAccountID is set only for transfers.
type Create struct {
	Kind                 ledger.RecordKind
	Amount               decimal.Decimal
	Description          string
	SourceAccountID      uuid.UUID
	DestinationAccountID *uuid.UUID
}

// ITransactionTable defines the interface for transaction storage operations.
// This abstraction allows swapping the implementation (e.g. Bob) without changing callers.
// Records are append-only: there is no update or delete.
type ITransactionTable interface {
	Insert(ctx context.Context, create *Create) (*Row, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*Row, error)
}
