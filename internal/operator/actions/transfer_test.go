package actions

import (
	"context"
	"errors"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

func newTestWriter(t *testing.T) (*storage.Writer, *account.MockIAccountTable, *transaction.MockITransactionTable) {
	t.Helper()
	mockAccounts := account.NewMockIAccountTable(t)
	mockTransactions := transaction.NewMockITransactionTable(t)
	writer := &storage.Writer{
		Accounts:     mockAccounts,
		Transactions: mockTransactions,
	}
	return writer, mockAccounts, mockTransactions
}

func checkingRow(id uuid.UUID, balance, overdraftLimit string) *account.Row {
	return &account.Row{
		ID:             id,
		OwnerID:        uuid.Must(uuid.NewV4()),
		Type:           int16(ledger.AccountTypeChecking),
		Balance:        decimal.RequireFromString(balance),
		OverdraftLimit: decimal.RequireFromString(overdraftLimit),
		InterestRate:   decimal.Zero,
	}
}

func savingsRow(id uuid.UUID, balance, interestRate string) *account.Row {
	return &account.Row{
		ID:           id,
		OwnerID:      uuid.Must(uuid.NewV4()),
		Type:         int16(ledger.AccountTypeSavings),
		Balance:      decimal.RequireFromString(balance),
		InterestRate: decimal.RequireFromString(interestRate),
	}
}

func TestTransfer_Success(t *testing.T) {
	writer, mockAccounts, mockTransactions := newTestWriter(t)

	sourceID := uuid.Must(uuid.NewV4())
	destinationID := uuid.Must(uuid.NewV4())
	recordID := uuid.Must(uuid.NewV4())

	mockAccounts.EXPECT().FindByIDForUpdate(mock.Anything, sourceID).
		Return(checkingRow(sourceID, "1000.00", "0"), nil)
	mockAccounts.EXPECT().FindByIDForUpdate(mock.Anything, destinationID).
		Return(savingsRow(destinationID, "500.00", "1.5"), nil)

	mockAccounts.EXPECT().UpdateBalance(mock.Anything, sourceID, mock.MatchedBy(func(b decimal.Decimal) bool {
		return b.Equal(decimal.RequireFromString("700.00"))
	})).Return(nil)
	mockAccounts.EXPECT().UpdateBalance(mock.Anything, destinationID, mock.MatchedBy(func(b decimal.Decimal) bool {
		return b.Equal(decimal.RequireFromString("800.00"))
	})).Return(nil)

	mockTransactions.EXPECT().Insert(mock.Anything, mock.MatchedBy(func(c *transaction.Create) bool {
		return c.Kind == ledger.RecordKindTransfer &&
			c.Amount.Equal(decimal.RequireFromString("300.00")) &&
			c.SourceAccountID == sourceID &&
			c.DestinationAccountID != nil && *c.DestinationAccountID == destinationID
	})).Return(&transaction.Row{
		ID:              recordID,
		Kind:            int16(ledger.RecordKindTransfer),
		Amount:          decimal.RequireFromString("300.00"),
		SourceAccountID: sourceID,
	}, nil)

	action := &Transfer{
		SourceID:      sourceID,
		DestinationID: destinationID,
		Amount:        decimal.RequireFromString("300.00"),
		Description:   "rent",
	}

	err := action.Perform(context.Background(), writer)

	assert.NoError(t, err)
	assert.Equal(t, recordID, action.Record.ID)
	assert.True(t, action.Source.Balance.Equal(decimal.RequireFromString("700.00")))
	assert.True(t, action.Destination.Balance.Equal(decimal.RequireFromString("800.00")))
}

func TestTransfer_LocksAccountsInCanonicalOrder(t *testing.T) {
	writer, mockAccounts, mockTransactions := newTestWriter(t)

	// Source sorts after destination, so the destination row must be locked first.
	lowID := uuid.FromStringOrNil("11111111-1111-1111-1111-111111111111")
	highID := uuid.FromStringOrNil("22222222-2222-2222-2222-222222222222")

	var lockOrder []uuid.UUID
	mockAccounts.EXPECT().FindByIDForUpdate(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, id uuid.UUID) (*account.Row, error) {
			lockOrder = append(lockOrder, id)
			return checkingRow(id, "100.00", "0"), nil
		})
	mockAccounts.EXPECT().UpdateBalance(mock.Anything, mock.Anything, mock.Anything).Return(nil)
	mockTransactions.EXPECT().Insert(mock.Anything, mock.Anything).
		Return(&transaction.Row{ID: uuid.Must(uuid.NewV4())}, nil)

	action := &Transfer{
		SourceID:      highID,
		DestinationID: lowID,
		Amount:        decimal.RequireFromString("10.00"),
	}

	err := action.Perform(context.Background(), writer)

	assert.NoError(t, err)
	assert.Equal(t, []uuid.UUID{lowID, highID}, lockOrder)
}

func TestTransfer_InsufficientFunds_NothingPersists(t *testing.T) {
	writer, mockAccounts, mockTransactions := newTestWriter(t)

	sourceID := uuid.Must(uuid.NewV4())
	destinationID := uuid.Must(uuid.NewV4())

	mockAccounts.EXPECT().FindByIDForUpdate(mock.Anything, sourceID).
		Return(checkingRow(sourceID, "1000.00", "200.00"), nil)
	mockAccounts.EXPECT().FindByIDForUpdate(mock.Anything, destinationID).
		Return(checkingRow(destinationID, "0.00", "0"), nil)

	action := &Transfer{
		SourceID:      sourceID,
		DestinationID: destinationID,
		Amount:        decimal.RequireFromString("1500.00"),
	}

	err := action.Perform(context.Background(), writer)

	assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)
	var fundsErr *ledger.InsufficientFundsError
	assert.ErrorAs(t, err, &fundsErr)
	assert.Equal(t, sourceID, fundsErr.AccountID)
	mockAccounts.AssertNotCalled(t, "UpdateBalance", mock.Anything, mock.Anything, mock.Anything)
	mockTransactions.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	assert.Nil(t, action.Record)
}

func TestTransfer_SourceNotFound(t *testing.T) {
	writer, mockAccounts, mockTransactions := newTestWriter(t)

	sourceID := uuid.FromStringOrNil("11111111-1111-1111-1111-111111111111")
	destinationID := uuid.FromStringOrNil("22222222-2222-2222-2222-222222222222")

	mockAccounts.EXPECT().FindByIDForUpdate(mock.Anything, sourceID).
		Return(nil, errors.New("account not found: "+sourceID.String()))

	action := &Transfer{
		SourceID:      sourceID,
		DestinationID: destinationID,
		Amount:        decimal.RequireFromString("10.00"),
	}

	err := action.Perform(context.Background(), writer)

	assert.Error(t, err)
	mockTransactions.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}
