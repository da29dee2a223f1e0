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

// GetAccountInput is the Huma input for fetching an account.
type GetAccountInput struct {
	ID string `path:"id" format:"uuid" doc:"Account UUID"`
}

// GetAccountOutput is the Huma output for fetching an account.
type GetAccountOutput struct {
	Body Account
}

// InterestOutput is the Huma output for the interest preview.
type InterestOutput struct {
	Body struct {
		Interest string `json:"interest" doc:"Interest due, computed as balance * rate / 100; the balance is untouched"`
	}
}

// accountReader is the interface for reading accounts and previewing interest.
type accountReader interface {
	Get(ctx context.Context, id uuid.UUID) (*ledger.Account, error)
	Interest(ctx context.Context, id uuid.UUID) (decimal.Decimal, error)
}

// GetAccountHandler handles GET /v1/account/{id} and its interest preview.
type GetAccountHandler struct {
	AccountService accountReader
}

// NewGetAccountHandler creates a new GetAccountHandler.
func NewGetAccountHandler(svc accountReader) *GetAccountHandler {
	return &GetAccountHandler{AccountService: svc}
}

// Register registers the account read endpoints with the Huma API.
func (h *GetAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-account",
		Method:      http.MethodGet,
		Path:        "/v1/account/{id}",
		Summary:     "Get an account",
		Tags:        []string{"Accounts"},
	}, h.handleGet)

	huma.Register(api, huma.Operation{
		OperationID: "get-account-interest",
		Method:      http.MethodGet,
		Path:        "/v1/account/{id}/interest",
		Summary:     "Preview interest due",
		Description: "Returns balance * interestRate / 100 without mutating the balance.",
		Tags:        []string{"Accounts"},
	}, h.handleInterest)
}

func (h *GetAccountHandler) handleGet(ctx context.Context, input *GetAccountInput) (*GetAccountOutput, error) {
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid account id", err)
	}

	acct, err := h.AccountService.Get(ctx, id)
	if err != nil {
		return nil, httperr.FromDomain(err)
	}

	return &GetAccountOutput{Body: fromLedger(acct)}, nil
}

func (h *GetAccountHandler) handleInterest(ctx context.Context, input *GetAccountInput) (*InterestOutput, error) {
	logData := logging.GetLogData(ctx)

	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid account id", err)
	}

	interest, err := h.AccountService.Interest(ctx, id)
	if err != nil {
		return nil, httperr.FromDomain(err)
	}

	if logData != nil {
		logData.AddData("accountID", id.String())
	}

	out := &InterestOutput{}
	out.Body.Interest = interest.String()
	return out, nil
}
