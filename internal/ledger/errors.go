package ledger

import (
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount rejects deposit/withdraw/transfer amounts <= 0.
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrAccountNotFound means the referenced account id does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInsufficientFunds means a withdrawal or transfer would violate the
	// account's balance invariant. The concrete error is an
	// *InsufficientFundsError carrying the account, amount, and limit.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrSameAccountTransfer rejects transfers where source == destination.
	ErrSameAccountTransfer = errors.New("source and destination accounts are the same")

	// ErrPersistenceFailure wraps store errors that prevented a change from
	// being durably recorded.
	ErrPersistenceFailure = errors.New("persistence failure")

	// ErrNonZeroBalance is the refusal result for closing an account whose
	// balance is not exactly zero.
	ErrNonZeroBalance = errors.New("account balance is not zero")
)

// InsufficientFundsError reports a withdrawal that would breach the
// account's variant policy. Overdraft is true for Checking accounts, whose
// message includes the overdraft limit.
type InsufficientFundsError struct {
	AccountID      uuid.UUID
	Requested      decimal.Decimal
	Balance        decimal.Decimal
	OverdraftLimit decimal.Decimal
	Overdraft      bool
}

func (e *InsufficientFundsError) Error() string {
	if e.Overdraft {
		return fmt.Sprintf("insufficient funds on account %s: withdrawal of %s exceeds balance %s with overdraft limit %s",
			e.AccountID, e.Requested, e.Balance, e.OverdraftLimit)
	}
	return fmt.Sprintf("insufficient funds on account %s: withdrawal of %s exceeds balance %s, no overdraft allowed",
		e.AccountID, e.Requested, e.Balance)
}

// Is lets errors.Is(err, ErrInsufficientFunds) match the typed error.
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}
