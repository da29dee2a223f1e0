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
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// AccountService handles single-account business logic: create, get,
// deposit, withdraw, interest preview, and close.
type AccountService struct {
	storage   *storage.Storage
	processor Processor
	events    events.Publisher
}

// NewAccountService creates a new AccountService.
func NewAccountService(store *storage.Storage, processor Processor, publisher events.Publisher) *AccountService {
	return &AccountService{storage: store, processor: processor, events: publisher}
}

// CreateChecking opens a Checking account with the given initial balance
// and overdraft limit, owned by the authenticated principal.
func (s *AccountService) CreateChecking(ctx context.Context, ownerID uuid.UUID, initialBalance, overdraftLimit decimal.Decimal) (*ledger.Account, error) {
	acct, err := ledger.NewChecking(ownerID, initialBalance, overdraftLimit)
	if err != nil {
		return nil, err
	}
	return s.create(ctx, acct)
}

// CreateSavings opens a Savings account with the given initial balance and
// interest rate percent.
func (s *AccountService) CreateSavings(ctx context.Context, ownerID uuid.UUID, initialBalance, interestRate decimal.Decimal) (*ledger.Account, error) {
	acct, err := ledger.NewSavings(ownerID, initialBalance, interestRate)
	if err != nil {
		return nil, err
	}
	return s.create(ctx, acct)
}

func (s *AccountService) create(ctx context.Context, acct *ledger.Account) (*ledger.Account, error) {
	action := &actions.CreateAccount{Account: acct}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, coreError(err)
	}
	acct.ID = action.CreatedID
	return acct, nil
}

// Get retrieves an account by ID.
func (s *AccountService) Get(ctx context.Context, id uuid.UUID) (*ledger.Account, error) {
	row, err := s.storage.Accounts.FindByID(ctx, id)
	if err != nil {
		return nil, coreError(err)
	}
	return row.Account(), nil
}

// Interest returns the interest currently due on the account without
// mutating its balance.
func (s *AccountService) Interest(ctx context.Context, id uuid.UUID) (decimal.Decimal, error) {
	acct, err := s.Get(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}
	return acct.Interest(), nil
}

// Deposit credits the account and appends the Credit record. The balance
// change and the append are two store calls: if the append fails after the
// balance committed, the operation reports a persistence failure and the
// missing record is flagged for out-of-band reconciliation.
func (s *AccountService) Deposit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*ledger.Account, *ledger.Record, error) {
	if !amount.IsPositive() {
		return nil, nil, ledger.ErrInvalidAmount
	}

	action := &actions.Deposit{AccountID: id, Amount: amount}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, nil, coreError(err)
	}

	record, err := s.appendRecord(ctx, ledger.RecordKindCredit, id, amount,
		fmt.Sprintf("Deposit to account %s", id))
	if err != nil {
		return nil, nil, err
	}

	return action.Updated, record, nil
}

// Withdraw debits the account under its variant policy and appends the
// Debit record, with the same append semantics as Deposit.
func (s *AccountService) Withdraw(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*ledger.Account, *ledger.Record, error) {
	if !amount.IsPositive() {
		return nil, nil, ledger.ErrInvalidAmount
	}

	action := &actions.Withdraw{AccountID: id, Amount: amount}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, nil, coreError(err)
	}

	record, err := s.appendRecord(ctx, ledger.RecordKindDebit, id, amount,
		fmt.Sprintf("Withdrawal from account %s", id))
	if err != nil {
		return nil, nil, err
	}

	return action.Updated, record, nil
}

// Close deletes the account record. It refuses with ErrNonZeroBalance
// unless the balance is exactly zero; history is retained for audit.
func (s *AccountService) Close(ctx context.Context, id uuid.UUID) error {
	action := &actions.CloseAccount{AccountID: id}
	if err := s.processor.Process(ctx, action); err != nil {
		return coreError(err)
	}
	return nil
}

func (s *AccountService) appendRecord(ctx context.Context, kind ledger.RecordKind, accountID uuid.UUID, amount decimal.Decimal, description string) (*ledger.Record, error) {
	row, err := s.storage.Transactions.Insert(ctx, &transaction.Create{
		Kind:            kind,
		Amount:          amount,
		Description:     description,
		SourceAccountID: accountID,
	})
	if err != nil {
		// The balance change already committed; the record is transiently
		// missing until reconciled out of band.
		logrus.WithFields(logrus.Fields{
			"accountID": accountID.String(),
			"kind":      kind.String(),
			"amount":    amount.String(),
		}).WithError(err).Warn("transaction record append failed after balance commit; reconciliation needed")

		if pubErr := s.events.ReconciliationNeeded(events.Reconciliation{
			AccountID: accountID,
			Kind:      kind.String(),
			Amount:    amount,
			Reason:    err.Error(),
		}); pubErr != nil {
			logrus.WithError(pubErr).Warn("reconciliation event publish failed")
		}

		return nil, fmt.Errorf("%w: append %s record for account %s: %w",
			ledger.ErrPersistenceFailure, kind, accountID, err)
	}

	record := row.Record()
	if pubErr := s.events.RecordCreated(record); pubErr != nil {
		logrus.WithError(pubErr).Warn("record event publish failed")
	}
	return record, nil
}
