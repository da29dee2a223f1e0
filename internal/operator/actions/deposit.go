package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// Deposit credits one account. The row lock makes the read-check-write a
// single atomic unit with respect to other operations on the account.
// Updated holds the post-deposit account on success.
type Deposit struct {
	AccountID uuid.UUID
	Amount    decimal.Decimal

	Updated *ledger.Account
}

func (a *Deposit) Perform(ctx context.Context, writer *storage.Writer) error {
	row, err := writer.Accounts.FindByIDForUpdate(ctx, a.AccountID)
	if err != nil {
		return err
	}

	acct := row.Account()
	if err := acct.Deposit(a.Amount); err != nil {
		return err
	}

	if err := writer.Accounts.UpdateBalance(ctx, acct.ID, acct.Balance); err != nil {
		return err
	}

	a.Updated = acct
	return nil
}
