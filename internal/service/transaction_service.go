package service

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-server/internal/events"
	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// TransactionService handles the transfer engine and transaction history.
type TransactionService struct {
	storage   *storage.Storage
	processor Processor
	events    events.Publisher
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store *storage.Storage, processor Processor, publisher events.Publisher) *TransactionService {
	return &TransactionService{storage: store, processor: processor, events: publisher}
}

// Transfer atomically moves amount from the source to the destination
// account and returns the appended Transfer record. Validation failures
// are reported before any mutation is attempted; on any later failure the
// transaction rolls back and no partial balance change survives.
func (s *TransactionService) Transfer(ctx context.Context, sourceID, destinationID uuid.UUID, amount decimal.Decimal, description string) (*ledger.Record, error) {
	if !amount.IsPositive() {
		return nil, ledger.ErrInvalidAmount
	}
	if sourceID == destinationID {
		return nil, fmt.Errorf("%w: %s", ledger.ErrSameAccountTransfer, sourceID)
	}
	if description == "" {
		description = fmt.Sprintf("Transfer from account %s to account %s", sourceID, destinationID)
	}

	action := &actions.Transfer{
		SourceID:      sourceID,
		DestinationID: destinationID,
		Amount:        amount,
		Description:   description,
	}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, coreError(err)
	}

	if pubErr := s.events.RecordCreated(action.Record); pubErr != nil {
		logrus.WithError(pubErr).Warn("record event publish failed")
	}
	return action.Record, nil
}

// HistoryFor returns every record referencing the account as source or
// destination, most recent first. The result is a snapshot as of call
// time; an account with no records yields an empty history.
func (s *TransactionService) HistoryFor(ctx context.Context, accountID uuid.UUID) ([]*ledger.Record, error) {
	rows, err := s.storage.Transactions.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, coreError(err)
	}

	records := make([]*ledger.Record, len(rows))
	for i, row := range rows {
		records[i] = row.Record()
	}
	return records, nil
}
