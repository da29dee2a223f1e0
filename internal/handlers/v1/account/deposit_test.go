package account

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

func newMoveMoneyTestAPI(t *testing.T, svc balanceMover) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewMoveMoneyHandler(svc).Register(api)
	return api
}

func creditRecord(accountID uuid.UUID, amount string) *ledger.Record {
	return &ledger.Record{
		ID:              uuid.Must(uuid.NewV4()),
		Kind:            ledger.RecordKindCredit,
		Amount:          decimal.RequireFromString(amount),
		SourceAccountID: accountID,
		CreatedAt:       time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestHTTP_Deposit_Success(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())
	ownerID := uuid.Must(uuid.NewV4())

	mockSvc := new(mockAccountService)
	mockSvc.On("Deposit", mock.Anything, accountID,
		mock.MatchedBy(func(a decimal.Decimal) bool { return a.Equal(decimal.RequireFromString("250.00")) }),
	).Return(testChecking(accountID, ownerID, "350", "0"), creditRecord(accountID, "250.00"), nil)

	resp := newMoveMoneyTestAPI(t, mockSvc).Post("/v1/account/"+accountID.String()+"/deposit", MoveMoneyBody{
		Amount: "250.00",
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	var body MoveMoneyResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "350", body.Account.Balance)
	assert.Equal(t, "credit", body.Transaction.Kind)
	assert.Equal(t, accountID.String(), body.Transaction.SourceAccountID)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_Deposit_AccountNotFound(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())

	mockSvc := new(mockAccountService)
	mockSvc.On("Deposit", mock.Anything, accountID, mock.Anything).
		Return(nil, nil, ledger.ErrAccountNotFound)

	resp := newMoveMoneyTestAPI(t, mockSvc).Post("/v1/account/"+accountID.String()+"/deposit", MoveMoneyBody{
		Amount: "10.00",
	})

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHTTP_Deposit_MissingAmount(t *testing.T) {
	mockSvc := new(mockAccountService)

	// Huma schema validation rejects the request before the handler runs.
	resp := newMoveMoneyTestAPI(t, mockSvc).Post(
		"/v1/account/"+uuid.Must(uuid.NewV4()).String()+"/deposit", MoveMoneyBody{})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "Deposit")
}

func TestHTTP_Deposit_InvalidAmount(t *testing.T) {
	mockSvc := new(mockAccountService)

	resp := newMoveMoneyTestAPI(t, mockSvc).Post(
		"/v1/account/"+uuid.Must(uuid.NewV4()).String()+"/deposit", MoveMoneyBody{
			Amount: "not-a-decimal",
		})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockSvc.AssertNotCalled(t, "Deposit")
}

func TestHTTP_Deposit_NonPositiveAmount(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())

	mockSvc := new(mockAccountService)
	mockSvc.On("Deposit", mock.Anything, accountID, mock.Anything).
		Return(nil, nil, ledger.ErrInvalidAmount)

	resp := newMoveMoneyTestAPI(t, mockSvc).Post("/v1/account/"+accountID.String()+"/deposit", MoveMoneyBody{
		Amount: "-5.00",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHTTP_Withdraw_Success(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())
	ownerID := uuid.Must(uuid.NewV4())

	record := creditRecord(accountID, "1100.00")
	record.Kind = ledger.RecordKindDebit

	mockSvc := new(mockAccountService)
	mockSvc.On("Withdraw", mock.Anything, accountID,
		mock.MatchedBy(func(a decimal.Decimal) bool { return a.Equal(decimal.RequireFromString("1100.00")) }),
	).Return(testChecking(accountID, ownerID, "-100", "200"), record, nil)

	resp := newMoveMoneyTestAPI(t, mockSvc).Post("/v1/account/"+accountID.String()+"/withdraw", MoveMoneyBody{
		Amount: "1100.00",
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	var body MoveMoneyResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "-100", body.Account.Balance)
	assert.Equal(t, "debit", body.Transaction.Kind)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_Withdraw_InsufficientFunds(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())

	mockSvc := new(mockAccountService)
	mockSvc.On("Withdraw", mock.Anything, accountID, mock.Anything).
		Return(nil, nil, &ledger.InsufficientFundsError{
			AccountID: accountID,
			Requested: decimal.RequireFromString("1500.00"),
			Balance:   decimal.RequireFromString("1000.00"),
		})

	resp := newMoveMoneyTestAPI(t, mockSvc).Post("/v1/account/"+accountID.String()+"/withdraw", MoveMoneyBody{
		Amount: "1500.00",
	})

	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestHTTP_Withdraw_PersistenceFailure(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())

	mockSvc := new(mockAccountService)
	mockSvc.On("Withdraw", mock.Anything, accountID, mock.Anything).
		Return(nil, nil, ledger.ErrPersistenceFailure)

	resp := newMoveMoneyTestAPI(t, mockSvc).Post("/v1/account/"+accountID.String()+"/withdraw", MoveMoneyBody{
		Amount: "10.00",
	})

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}
