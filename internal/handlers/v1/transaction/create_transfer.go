package transaction

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

// CreateTransferBody is the request body for a transfer between accounts.
type CreateTransferBody struct {
	SourceAccountID      string `json:"sourceAccountId" format:"uuid" required:"true" doc:"Account to debit"`
	DestinationAccountID string `json:"destinationAccountId" format:"uuid" required:"true" doc:"Account to credit"`
	Amount               string `json:"amount" required:"true" minLength:"1" doc:"Positive decimal amount"`
	Description          string `json:"description,omitempty" doc:"Optional description, defaulted when empty"`
}

// CreateTransferInput is the Huma input for the transfer endpoint.
type CreateTransferInput struct {
	Body CreateTransferBody
}

// CreateTransferOutput is the Huma output for the transfer endpoint.
type CreateTransferOutput struct {
	Status int
	Body   struct {
		Transaction Transaction `json:"transaction" doc:"The recorded transfer"`
	}
}

type transferCreator interface {
	Transfer(ctx context.Context, sourceID, destinationID uuid.UUID, amount decimal.Decimal, description string) (*ledger.Record, error)
}

// CreateTransferHandler handles POST /v1/transfer.
type CreateTransferHandler struct {
	TransactionService transferCreator
}

// NewCreateTransferHandler creates a new CreateTransferHandler.
func NewCreateTransferHandler(svc transferCreator) *CreateTransferHandler {
	return &CreateTransferHandler{TransactionService: svc}
}

// Register registers the transfer endpoint with the Huma API.
func (h *CreateTransferHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-transfer",
		Method:        http.MethodPost,
		Path:          "/v1/transfer",
		Summary:       "Transfer between two accounts",
		Description:   "Atomically debits the source and credits the destination. Either both balances move or neither does.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func (h *CreateTransferHandler) handle(ctx context.Context, input *CreateTransferInput) (*CreateTransferOutput, error) {
	logData := logging.GetLogData(ctx)

	sourceID, err := uuid.FromString(input.Body.SourceAccountID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid source account id", err)
	}
	destinationID, err := uuid.FromString(input.Body.DestinationAccountID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid destination account id", err)
	}
	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createTransferMs")
	}
	record, err := h.TransactionService.Transfer(ctx, sourceID, destinationID, amount, input.Body.Description)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.FromDomain(err)
	}

	if logData != nil {
		logData.AddData("transactionID", record.ID.String())
	}

	output := &CreateTransferOutput{Status: http.StatusCreated}
	output.Body.Transaction = FromLedger(record)
	return output, nil
}
