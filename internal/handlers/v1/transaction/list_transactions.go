package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/logging"
)

// ListTransactionsInput is the Huma input for the account history endpoint.
type ListTransactionsInput struct {
	ID string `path:"id" format:"uuid" doc:"Account UUID"`
}

// ListTransactionsOutput is the Huma output for the account history endpoint.
type ListTransactionsOutput struct {
	Body struct {
		Transactions []Transaction `json:"transactions" doc:"Records touching the account, most recent first"`
	}
}

type historyReader interface {
	HistoryFor(ctx context.Context, accountID uuid.UUID) ([]*ledger.Record, error)
}

// ListTransactionsHandler handles GET /v1/account/{id}/transactions.
type ListTransactionsHandler struct {
	TransactionService historyReader
}

// NewListTransactionsHandler creates a new ListTransactionsHandler.
func NewListTransactionsHandler(svc historyReader) *ListTransactionsHandler {
	return &ListTransactionsHandler{TransactionService: svc}
}

// Register registers the history endpoint with the Huma API.
func (h *ListTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodGet,
		Path:        "/v1/account/{id}/transactions",
		Summary:     "List an account's transaction history",
		Description: "Returns every record where the account is the source or the destination, newest first.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *ListTransactionsHandler) handle(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	logData := logging.GetLogData(ctx)

	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid account id", err)
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listTransactionsMs")
	}
	records, err := h.TransactionService.HistoryFor(ctx, id)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.FromDomain(err)
	}

	if logData != nil {
		logData.AddData("accountID", id.String())
		logData.AddData("transactionCount", len(records))
	}

	output := &ListTransactionsOutput{}
	output.Body.Transactions = make([]Transaction, 0, len(records))
	for _, record := range records {
		output.Body.Transactions = append(output.Body.Transactions, FromLedger(record))
	}
	return output, nil
}
