package actions

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

func TestDeposit_Success(t *testing.T) {
	writer, mockAccounts, _ := newTestWriter(t)

	accountID := uuid.Must(uuid.NewV4())
	mockAccounts.EXPECT().FindByIDForUpdate(mock.Anything, accountID).
		Return(savingsRow(accountID, "500.00", "1.5"), nil)
	mockAccounts.EXPECT().UpdateBalance(mock.Anything, accountID, mock.MatchedBy(func(b decimal.Decimal) bool {
		return b.Equal(decimal.RequireFromString("750.00"))
	})).Return(nil)

	action := &Deposit{AccountID: accountID, Amount: decimal.RequireFromString("250.00")}

	err := action.Perform(context.Background(), writer)

	assert.NoError(t, err)
	assert.NotNil(t, action.Updated)
	assert.True(t, action.Updated.Balance.Equal(decimal.RequireFromString("750.00")))
}

func TestDeposit_NonPositiveAmount(t *testing.T) {
	writer, mockAccounts, _ := newTestWriter(t)

	accountID := uuid.Must(uuid.NewV4())
	mockAccounts.EXPECT().FindByIDForUpdate(mock.Anything, accountID).
		Return(checkingRow(accountID, "100.00", "0"), nil)

	action := &Deposit{AccountID: accountID, Amount: decimal.Zero}

	err := action.Perform(context.Background(), writer)

	assert.ErrorIs(t, err, ledger.ErrInvalidAmount)
	mockAccounts.AssertNotCalled(t, "UpdateBalance", mock.Anything, mock.Anything, mock.Anything)
	assert.Nil(t, action.Updated)
}

func TestDeposit_AccountNotFound(t *testing.T) {
	writer, mockAccounts, _ := newTestWriter(t)

	accountID := uuid.Must(uuid.NewV4())
	mockAccounts.EXPECT().FindByIDForUpdate(mock.Anything, accountID).
		Return(nil, ledger.ErrAccountNotFound)

	action := &Deposit{AccountID: accountID, Amount: decimal.RequireFromString("10.00")}

	err := action.Perform(context.Background(), writer)

	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
}
