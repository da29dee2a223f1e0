// Package ledger holds the core domain model: accounts with per-variant
// balance policy and the immutable transaction records that describe every
// balance-affecting event. Everything here is pure in-memory computation;
// persistence is the caller's job.
package ledger

import (
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// AccountType selects the withdrawal policy variant.
type AccountType int8

const (
	AccountTypeChecking AccountType = iota
	AccountTypeSavings
)

var hundred = decimal.NewFromInt(100)

// Account is the balance-bearing unit. OverdraftLimit applies to Checking
// accounts only; InterestRate (percent) applies to Savings accounts only.
// The unused field is always zero for the other variant.
type Account struct {
	ID             uuid.UUID
	OwnerID        uuid.UUID
	Type           AccountType
	Balance        decimal.Decimal
	OverdraftLimit decimal.Decimal
	InterestRate   decimal.Decimal
	OpenedOn       time.Time
}

// NewChecking builds a Checking account honoring its creation invariants:
// the overdraft limit must not be negative and the initial balance must not
// already breach it. The ID is assigned by the store on insert.
func NewChecking(ownerID uuid.UUID, initialBalance, overdraftLimit decimal.Decimal) (*Account, error) {
	if overdraftLimit.IsNegative() {
		return nil, fmt.Errorf("%w: overdraft limit %s must not be negative", ErrInvalidAmount, overdraftLimit)
	}
	if initialBalance.LessThan(overdraftLimit.Neg()) {
		return nil, fmt.Errorf("%w: initial balance %s breaches overdraft limit %s", ErrInvalidAmount, initialBalance, overdraftLimit)
	}
	return &Account{
		OwnerID:        ownerID,
		Type:           AccountTypeChecking,
		Balance:        initialBalance,
		OverdraftLimit: overdraftLimit,
		InterestRate:   decimal.Zero,
		OpenedOn:       time.Now().UTC(),
	}, nil
}

// NewSavings builds a Savings account; the initial balance and the interest
// rate must not be negative.
func NewSavings(ownerID uuid.UUID, initialBalance, interestRate decimal.Decimal) (*Account, error) {
	if interestRate.IsNegative() {
		return nil, fmt.Errorf("%w: interest rate %s must not be negative", ErrInvalidAmount, interestRate)
	}
	if initialBalance.IsNegative() {
		return nil, fmt.Errorf("%w: savings initial balance %s must not be negative", ErrInvalidAmount, initialBalance)
	}
	return &Account{
		OwnerID:        ownerID,
		Type:           AccountTypeSavings,
		Balance:        initialBalance,
		OverdraftLimit: decimal.Zero,
		InterestRate:   interestRate,
		OpenedOn:       time.Now().UTC(),
	}, nil
}

// Deposit adds a positive amount to the balance. There is no upper bound.
func (a *Account) Deposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	a.Balance = a.Balance.Add(amount)
	return nil
}

// Withdraw subtracts a positive amount, subject to the variant policy:
// Checking may go negative down to -OverdraftLimit, Savings never goes
// below zero. On failure the balance is untouched.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	remaining := a.Balance.Sub(amount)
	switch a.Type {
	case AccountTypeChecking:
		if remaining.LessThan(a.OverdraftLimit.Neg()) {
			return &InsufficientFundsError{
				AccountID:      a.ID,
				Requested:      amount,
				Balance:        a.Balance,
				OverdraftLimit: a.OverdraftLimit,
				Overdraft:      true,
			}
		}
	case AccountTypeSavings:
		if remaining.IsNegative() {
			return &InsufficientFundsError{
				AccountID: a.ID,
				Requested: amount,
				Balance:   a.Balance,
			}
		}
	default:
		return fmt.Errorf("unknown account type %d", a.Type)
	}

	a.Balance = remaining
	return nil
}

// Interest returns balance * rate / 100 without mutating the balance.
// Applying the interest as a deposit is the caller's responsibility.
// Checking accounts always carry a zero rate, so their interest is zero.
func (a *Account) Interest() decimal.Decimal {
	return a.Balance.Mul(a.InterestRate).Div(hundred)
}
