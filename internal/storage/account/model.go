package account

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

// Row mirrors the accounts table.
type Row struct {
	ID             uuid.UUID       `db:"id"`
	OwnerID        uuid.UUID       `db:"owner_id"`
	Type           int16           `db:"type"`
	Balance        decimal.Decimal `db:"balance"`
	OverdraftLimit decimal.Decimal `db:"overdraft_limit"`
	InterestRate   decimal.Decimal `db:"interest_rate"`
	OpenedOn       time.Time       `db:"opened_on"`
	CreatedAt      time.Time       `db:"created_at"`
}

// Account converts the stored row into the domain entity.
func (r *Row) Account() *ledger.Account {
	return &ledger.Account{
		ID:             r.ID,
		OwnerID:        r.OwnerID,
		Type:           ledger.AccountType(r.Type),
		Balance:        r.Balance,
		OverdraftLimit: r.OverdraftLimit,
		InterestRate:   r.InterestRate,
		OpenedOn:       r.OpenedOn,
	}
}

// Create is the input for inserting a new account.
type Create struct {
	OwnerID        uuid.UUID
	Type           ledger.AccountType
	Balance        decimal.Decimal
	OverdraftLimit decimal.Decimal
	InterestRate   decimal.Decimal
	OpenedOn       time.Time
}

// IAccountTable defines the interface for account storage operations.
// This abstraction allows swapping the implementation (e.g. Bob) without changing callers.
type IAccountTable interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Row, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Row, error)
	Insert(ctx context.Context, create *Create) (uuid.UUID, error)
	UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error
	Delete(ctx context.Context, id uuid.UUID) error
}
