package actions

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// CloseAccount deletes an account record, refusing unless the balance is
// exactly zero. Transaction history is retained for audit either way.
type CloseAccount struct {
	AccountID uuid.UUID
}

func (a *CloseAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	row, err := writer.Accounts.FindByIDForUpdate(ctx, a.AccountID)
	if err != nil {
		return err
	}

	if !row.Balance.IsZero() {
		return fmt.Errorf("%w: account %s holds %s", ledger.ErrNonZeroBalance, a.AccountID, row.Balance)
	}

	return writer.Accounts.Delete(ctx, a.AccountID)
}
