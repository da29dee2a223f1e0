package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
)

// CreateAccount persists a freshly constructed, already-validated account.
// CreatedID is set on success.
type CreateAccount struct {
	Account *ledger.Account

	CreatedID uuid.UUID
}

func (a *CreateAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	id, err := writer.Accounts.Insert(ctx, &account.Create{
		OwnerID:        a.Account.OwnerID,
		Type:           a.Account.Type,
		Balance:        a.Account.Balance,
		OverdraftLimit: a.Account.OverdraftLimit,
		InterestRate:   a.Account.InterestRate,
		OpenedOn:       a.Account.OpenedOn,
	})
	if err != nil {
		return err
	}

	a.CreatedID = id
	return nil
}
