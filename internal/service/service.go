package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/carson-networks/ledger-server/internal/events"
	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// Processor runs one action inside a storage transaction. Satisfied by
// *operator.OperatorDelegator.
type Processor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Service holds all business logic services.
type Service struct {
	Account     *AccountService
	Transaction *TransactionService
}

// NewService creates a new Service with the given storage, processor, and
// event publisher.
func NewService(store *storage.Storage, processor Processor, publisher events.Publisher) *Service {
	return &Service{
		Account:     NewAccountService(store, processor, publisher),
		Transaction: NewTransactionService(store, processor, publisher),
	}
}

// coreError passes the business-rule errors through unchanged and wraps
// everything else as a persistence failure.
func coreError(err error) error {
	switch {
	case errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrAccountNotFound),
		errors.Is(err, ledger.ErrInsufficientFunds),
		errors.Is(err, ledger.ErrSameAccountTransfer),
		errors.Is(err, ledger.ErrNonZeroBalance):
		return err
	default:
		return fmt.Errorf("%w: %w", ledger.ErrPersistenceFailure, err)
	}
}
