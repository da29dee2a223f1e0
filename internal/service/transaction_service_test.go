package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

func newTransactionTestService(t *testing.T) (*TransactionService, *accountServiceMocks) {
	t.Helper()
	mocks := &accountServiceMocks{
		accounts:     account.NewMockIAccountTable(t),
		transactions: transaction.NewMockITransactionTable(t),
		publisher:    &mockPublisher{},
	}
	mocks.processor = &inlineProcessor{
		writer: &storage.Writer{Accounts: mocks.accounts, Transactions: mocks.transactions},
	}
	store := &storage.Storage{Accounts: mocks.accounts, Transactions: mocks.transactions}
	svc := NewTransactionService(store, mocks.processor, mocks.publisher)
	return svc, mocks
}

// -- Transfer tests --

func TestTransfer_Success(t *testing.T) {
	svc, mocks := newTransactionTestService(t)

	sourceID := uuid.Must(uuid.NewV4())
	destinationID := uuid.Must(uuid.NewV4())
	recordID := uuid.Must(uuid.NewV4())
	amount := decimal.RequireFromString("300.00")

	mocks.accounts.EXPECT().FindByIDForUpdate(mock.Anything, sourceID).
		Return(checkingRow(sourceID, "1000.00", "0"), nil)
	mocks.accounts.EXPECT().FindByIDForUpdate(mock.Anything, destinationID).
		Return(savingsRow(destinationID, "500.00", "1.5"), nil)
	mocks.accounts.EXPECT().UpdateBalance(mock.Anything, sourceID, mock.Anything).Return(nil)
	mocks.accounts.EXPECT().UpdateBalance(mock.Anything, destinationID, mock.Anything).Return(nil)
	mocks.transactions.EXPECT().Insert(mock.Anything, mock.MatchedBy(func(c *transaction.Create) bool {
		return c.Kind == ledger.RecordKindTransfer &&
			c.Description == "rent" &&
			c.SourceAccountID == sourceID &&
			c.DestinationAccountID != nil && *c.DestinationAccountID == destinationID
	})).Return(&transaction.Row{
		ID:                   recordID,
		Kind:                 int16(ledger.RecordKindTransfer),
		Amount:               amount,
		Description:          "rent",
		SourceAccountID:      sourceID,
		DestinationAccountID: null.From(destinationID),
	}, nil)
	mocks.publisher.On("RecordCreated", mock.Anything).Return(nil)

	record, err := svc.Transfer(context.Background(), sourceID, destinationID, amount, "rent")

	assert.NoError(t, err)
	assert.Equal(t, recordID, record.ID)
	assert.Equal(t, ledger.RecordKindTransfer, record.Kind)
	assert.NotNil(t, record.DestinationAccountID)
	assert.Equal(t, destinationID, *record.DestinationAccountID)
	mocks.publisher.AssertExpectations(t)
}

func TestTransfer_DefaultDescription(t *testing.T) {
	svc, mocks := newTransactionTestService(t)

	sourceID := uuid.Must(uuid.NewV4())
	destinationID := uuid.Must(uuid.NewV4())

	mocks.accounts.EXPECT().FindByIDForUpdate(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, id uuid.UUID) (*account.Row, error) {
			return checkingRow(id, "100.00", "0"), nil
		})
	mocks.accounts.EXPECT().UpdateBalance(mock.Anything, mock.Anything, mock.Anything).Return(nil)
	mocks.transactions.EXPECT().Insert(mock.Anything, mock.MatchedBy(func(c *transaction.Create) bool {
		return strings.HasPrefix(c.Description, "Transfer from account ")
	})).Return(&transaction.Row{ID: uuid.Must(uuid.NewV4())}, nil)
	mocks.publisher.On("RecordCreated", mock.Anything).Return(nil)

	_, err := svc.Transfer(context.Background(), sourceID, destinationID,
		decimal.RequireFromString("10.00"), "")

	assert.NoError(t, err)
}

func TestTransfer_SameAccount(t *testing.T) {
	svc, mocks := newTransactionTestService(t)

	id := uuid.Must(uuid.NewV4())
	_, err := svc.Transfer(context.Background(), id, id, decimal.RequireFromString("10.00"), "")

	assert.ErrorIs(t, err, ledger.ErrSameAccountTransfer)
	assert.Nil(t, mocks.processor.lastAction)
}

func TestTransfer_NonPositiveAmount(t *testing.T) {
	svc, mocks := newTransactionTestService(t)

	_, err := svc.Transfer(context.Background(), uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4()),
		decimal.RequireFromString("-5.00"), "")

	assert.ErrorIs(t, err, ledger.ErrInvalidAmount)
	assert.Nil(t, mocks.processor.lastAction)
}

func TestTransfer_InsufficientFunds(t *testing.T) {
	svc, mocks := newTransactionTestService(t)

	sourceID := uuid.Must(uuid.NewV4())
	destinationID := uuid.Must(uuid.NewV4())

	mocks.accounts.EXPECT().FindByIDForUpdate(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, id uuid.UUID) (*account.Row, error) {
			return savingsRow(id, "100.00", "1.5"), nil
		})

	_, err := svc.Transfer(context.Background(), sourceID, destinationID,
		decimal.RequireFromString("200.00"), "")

	assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)
	mocks.transactions.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	mocks.publisher.AssertNotCalled(t, "RecordCreated", mock.Anything)
}

// -- History tests --

func TestHistoryFor_Success(t *testing.T) {
	svc, mocks := newTransactionTestService(t)

	accountID := uuid.Must(uuid.NewV4())
	otherID := uuid.Must(uuid.NewV4())
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

	mocks.transactions.EXPECT().ListByAccount(mock.Anything, accountID).Return([]*transaction.Row{
		{
			ID:                   uuid.Must(uuid.NewV4()),
			Seq:                  2,
			Kind:                 int16(ledger.RecordKindTransfer),
			Amount:               decimal.RequireFromString("25.00"),
			SourceAccountID:      accountID,
			DestinationAccountID: null.From(otherID),
			CreatedAt:            now,
		},
		{
			ID:              uuid.Must(uuid.NewV4()),
			Seq:             1,
			Kind:            int16(ledger.RecordKindCredit),
			Amount:          decimal.RequireFromString("100.00"),
			SourceAccountID: accountID,
			CreatedAt:       now.Add(-time.Hour),
		},
	}, nil)

	records, err := svc.HistoryFor(context.Background(), accountID)

	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, ledger.RecordKindTransfer, records[0].Kind)
	assert.Equal(t, otherID, *records[0].DestinationAccountID)
	assert.Equal(t, ledger.RecordKindCredit, records[1].Kind)
	assert.Nil(t, records[1].DestinationAccountID)
}

func TestHistoryFor_EmptyHistory(t *testing.T) {
	svc, mocks := newTransactionTestService(t)

	accountID := uuid.Must(uuid.NewV4())
	mocks.transactions.EXPECT().ListByAccount(mock.Anything, accountID).
		Return([]*transaction.Row{}, nil)

	records, err := svc.HistoryFor(context.Background(), accountID)

	assert.NoError(t, err)
	assert.Empty(t, records)
}

func TestHistoryFor_StorageError(t *testing.T) {
	svc, mocks := newTransactionTestService(t)

	accountID := uuid.Must(uuid.NewV4())
	mocks.transactions.EXPECT().ListByAccount(mock.Anything, accountID).
		Return(nil, errors.New("connection reset"))

	_, err := svc.HistoryFor(context.Background(), accountID)

	assert.ErrorIs(t, err, ledger.ErrPersistenceFailure)
}
