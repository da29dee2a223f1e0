package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/httperr"
	"github.com/carson-networks/ledger-server/internal/logging"
)

// CloseAccountInput is the Huma input for closing an account.
type CloseAccountInput struct {
	ID string `path:"id" format:"uuid" doc:"Account UUID"`
}

// CloseAccountOutput is the Huma output for closing an account.
type CloseAccountOutput struct {
	Status int
}

type accountCloser interface {
	Close(ctx context.Context, id uuid.UUID) error
}

// CloseAccountHandler handles DELETE /v1/account/{id}.
type CloseAccountHandler struct {
	AccountService accountCloser
}

// NewCloseAccountHandler creates a new CloseAccountHandler.
func NewCloseAccountHandler(svc accountCloser) *CloseAccountHandler {
	return &CloseAccountHandler{AccountService: svc}
}

// Register registers the close endpoint with the Huma API.
func (h *CloseAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "close-account",
		Method:        http.MethodDelete,
		Path:          "/v1/account/{id}",
		Summary:       "Close an account",
		Description:   "Removes an account. Refused while the account still holds a non-zero balance.",
		Tags:          []string{"Accounts"},
		DefaultStatus: http.StatusNoContent,
	}, h.handle)
}

func (h *CloseAccountHandler) handle(ctx context.Context, input *CloseAccountInput) (*CloseAccountOutput, error) {
	logData := logging.GetLogData(ctx)

	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid account id", err)
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("closeAccountMs")
	}
	err = h.AccountService.Close(ctx, id)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, httperr.FromDomain(err)
	}

	if logData != nil {
		logData.AddData("accountID", id.String())
	}

	return &CloseAccountOutput{Status: http.StatusNoContent}, nil
}
