package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// Withdraw debits one account under its variant policy. On policy failure
// nothing persists. Updated holds the post-withdrawal account on success.
type Withdraw struct {
	AccountID uuid.UUID
	Amount    decimal.Decimal

	Updated *ledger.Account
}

func (a *Withdraw) Perform(ctx context.Context, writer *storage.Writer) error {
	row, err := writer.Accounts.FindByIDForUpdate(ctx, a.AccountID)
	if err != nil {
		return err
	}

	acct := row.Account()
	if err := acct.Withdraw(a.Amount); err != nil {
		return err
	}

	if err := writer.Accounts.UpdateBalance(ctx, acct.ID, acct.Balance); err != nil {
		return err
	}

	a.Updated = acct
	return nil
}
