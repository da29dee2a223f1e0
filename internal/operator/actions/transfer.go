package actions

import (
	"bytes"
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// Transfer atomically moves Amount from the source account to the
// destination account and appends the transfer record, all in one
// transaction. Row locks are taken in canonical account-id order, not
// source/destination order, so concurrent opposite-direction transfers on
// the same pair cannot deadlock.
//
// Record, Source, and Destination are set on success.
type Transfer struct {
	SourceID      uuid.UUID
	DestinationID uuid.UUID
	Amount        decimal.Decimal
	Description   string

	Record      *ledger.Record
	Source      *ledger.Account
	Destination *ledger.Account
}

func (a *Transfer) Perform(ctx context.Context, writer *storage.Writer) error {
	first, second := a.SourceID, a.DestinationID
	if bytes.Compare(second.Bytes(), first.Bytes()) < 0 {
		first, second = second, first
	}

	firstRow, err := writer.Accounts.FindByIDForUpdate(ctx, first)
	if err != nil {
		return err
	}
	secondRow, err := writer.Accounts.FindByIDForUpdate(ctx, second)
	if err != nil {
		return err
	}

	sourceRow, destinationRow := firstRow, secondRow
	if firstRow.ID != a.SourceID {
		sourceRow, destinationRow = secondRow, firstRow
	}

	source := sourceRow.Account()
	destination := destinationRow.Account()

	if err := source.Withdraw(a.Amount); err != nil {
		return err
	}
	if err := destination.Deposit(a.Amount); err != nil {
		return err
	}

	if err := writer.Accounts.UpdateBalance(ctx, source.ID, source.Balance); err != nil {
		return err
	}
	if err := writer.Accounts.UpdateBalance(ctx, destination.ID, destination.Balance); err != nil {
		return err
	}

	row, err := writer.Transactions.Insert(ctx, &transaction.Create{
		Kind:                 ledger.RecordKindTransfer,
		Amount:               a.Amount,
		Description:          a.Description,
		SourceAccountID:      source.ID,
		DestinationAccountID: &destination.ID,
	})
	if err != nil {
		return err
	}

	a.Record = row.Record()
	a.Source = source
	a.Destination = destination
	return nil
}
