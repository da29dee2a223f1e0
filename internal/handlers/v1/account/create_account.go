package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/logging"
)

// CreateAccountBody is the request body fields for creating an account.
type CreateAccountBody struct {
	OwnerID        string `json:"ownerId" required:"true" format:"uuid" doc:"Owning principal UUID, supplied by the identity collaborator"`
	Type           int    `json:"type" minimum:"0" maximum:"1" doc:"Account type: 0=Checking, 1=Savings"`
	Balance        string `json:"balance,omitempty" doc:"Initial balance (e.g. '0' or '1234.56'), defaults to 0"`
	OverdraftLimit string `json:"overdraftLimit,omitempty" doc:"Checking overdraft limit, defaults to 0"`
	InterestRate   string `json:"interestRate,omitempty" doc:"Savings interest rate percent, defaults to 0"`
}

// CreateAccountInput is the Huma input for creating an account.
type CreateAccountInput struct {
	Body CreateAccountBody
}

// CreateAccountOutput is the response for creating an account.
type CreateAccountOutput struct {
	Status int
	Body   Account
}

// accountCreator is the interface for opening accounts.
type accountCreator interface {
	CreateChecking(ctx context.Context, ownerID uuid.UUID, initialBalance, overdraftLimit decimal.Decimal) (*ledger.Account, error)
	CreateSavings(ctx context.Context, ownerID uuid.UUID, initialBalance, interestRate decimal.Decimal) (*ledger.Account, error)
}

// CreateAccountHandler handles POST /v1/account.
type CreateAccountHandler struct {
	AccountService accountCreator
}

// NewCreateAccountHandler creates a new CreateAccountHandler.
func NewCreateAccountHandler(svc accountCreator) *CreateAccountHandler {
	return &CreateAccountHandler{AccountService: svc}
}

// Register registers the create account endpoint with the Huma API.
func (h *CreateAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-account",
		Method:      http.MethodPost,
		Path:        "/v1/account",
		Summary:     "Create an account",
		Description: "Opens a new Checking or Savings account for the given owner.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func parseDecimalField(raw, name string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, huma.NewError(http.StatusBadRequest, "invalid "+name, err)
	}
	return value, nil
}

func (h *CreateAccountHandler) handle(ctx context.Context, input *CreateAccountInput) (*CreateAccountOutput, error) {
	logData := logging.GetLogData(ctx)

	ownerID, err := uuid.FromString(input.Body.OwnerID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid ownerId", err)
	}

	balance, err := parseDecimalField(input.Body.Balance, "balance")
	if err != nil {
		return nil, err
	}
	overdraftLimit, err := parseDecimalField(input.Body.OverdraftLimit, "overdraftLimit")
	if err != nil {
		return nil, err
	}
	interestRate, err := parseDecimalField(input.Body.InterestRate, "interestRate")
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createAccountMs")
	}

	var acct *ledger.Account
	switch ledger.AccountType(input.Body.Type) {
	case ledger.AccountTypeChecking:
		acct, err = h.AccountService.CreateChecking(ctx, ownerID, balance, overdraftLimit)
	case ledger.AccountTypeSavings:
		acct, err = h.AccountService.CreateSavings(ctx, ownerID, balance, interestRate)
	default:
		return nil, huma.NewError(http.StatusBadRequest, "type must be 0 or 1", nil)
	}
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.FromDomain(err)
	}

	if logData != nil {
		logData.AddData("accountID", acct.ID.String())
	}

	return &CreateAccountOutput{
		Status: http.StatusCreated,
		Body:   fromLedger(acct),
	}, nil
}
