package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/transaction"
	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/logging"
)

// MoveMoneyBody is the request body for deposits and withdrawals.
type MoveMoneyBody struct {
	Amount string `json:"amount" required:"true" minLength:"1" doc:"Positive decimal amount"`
}

// MoveMoneyInput is the Huma input for deposits and withdrawals.
type MoveMoneyInput struct {
	ID   string `path:"id" format:"uuid" doc:"Account UUID"`
	Body MoveMoneyBody
}

// MoveMoneyResponseBody is the response body for deposits and withdrawals.
type MoveMoneyResponseBody struct {
	Account     Account                 `json:"account" doc:"Account with updated balance"`
	Transaction transaction.Transaction `json:"transaction" doc:"Appended transaction record"`
}

// MoveMoneyOutput is the Huma output for deposits and withdrawals.
type MoveMoneyOutput struct {
	Body MoveMoneyResponseBody
}

// balanceMover is the interface for single-account balance mutations.
type balanceMover interface {
	Deposit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*ledger.Account, *ledger.Record, error)
	Withdraw(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*ledger.Account, *ledger.Record, error)
}

// MoveMoneyHandler handles POST /v1/account/{id}/deposit and /withdraw.
type MoveMoneyHandler struct {
	AccountService balanceMover
}

// NewMoveMoneyHandler creates a new MoveMoneyHandler.
func NewMoveMoneyHandler(svc balanceMover) *MoveMoneyHandler {
	return &MoveMoneyHandler{AccountService: svc}
}

// Register registers the deposit and withdraw endpoints with the Huma API.
func (h *MoveMoneyHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "deposit",
		Method:      http.MethodPost,
		Path:        "/v1/account/{id}/deposit",
		Summary:     "Deposit into an account",
		Tags:        []string{"Accounts"},
	}, h.handleDeposit)

	huma.Register(api, huma.Operation{
		OperationID: "withdraw",
		Method:      http.MethodPost,
		Path:        "/v1/account/{id}/withdraw",
		Summary:     "Withdraw from an account",
		Description: "Debits the account subject to its variant policy: Checking may use its overdraft, Savings never goes negative.",
		Tags:        []string{"Accounts"},
	}, h.handleWithdraw)
}

func parseMoveMoneyInput(input *MoveMoneyInput) (uuid.UUID, decimal.Decimal, error) {
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return uuid.Nil, decimal.Zero, huma.NewError(http.StatusBadRequest, "invalid account id", err)
	}
	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return uuid.Nil, decimal.Zero, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}
	return id, amount, nil
}

func (h *MoveMoneyHandler) handleDeposit(ctx context.Context, input *MoveMoneyInput) (*MoveMoneyOutput, error) {
	return h.handle(ctx, input, "depositMs", h.AccountService.Deposit)
}

func (h *MoveMoneyHandler) handleWithdraw(ctx context.Context, input *MoveMoneyInput) (*MoveMoneyOutput, error) {
	return h.handle(ctx, input, "withdrawMs", h.AccountService.Withdraw)
}

func (h *MoveMoneyHandler) handle(
	ctx context.Context,
	input *MoveMoneyInput,
	timingName string,
	move func(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*ledger.Account, *ledger.Record, error),
) (*MoveMoneyOutput, error) {
	logData := logging.GetLogData(ctx)

	id, amount, err := parseMoveMoneyInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming(timingName)
	}
	acct, record, err := move(ctx, id, amount)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.FromDomain(err)
	}

	if logData != nil {
		logData.AddData("accountID", id.String())
		logData.AddData("recordID", record.ID.String())
	}

	return &MoveMoneyOutput{
		Body: MoveMoneyResponseBody{
			Account:     fromLedger(acct),
			Transaction: transaction.FromLedger(record),
		},
	}, nil
}
