package account

import (
	"time"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

// Account is the API response model for an account.
type Account struct {
	ID             string `json:"id" doc:"Account UUID"`
	OwnerID        string `json:"ownerId" doc:"Owning principal UUID"`
	Type           int    `json:"type" doc:"Account type: 0=Checking, 1=Savings"`
	Balance        string `json:"balance" doc:"Decimal balance"`
	OverdraftLimit string `json:"overdraftLimit" doc:"Overdraft limit, zero for Savings"`
	InterestRate   string `json:"interestRate" doc:"Interest rate percent, zero for Checking"`
	OpenedOn       string `json:"openedOn" doc:"RFC3339 opening date"`
}

func fromLedger(acct *ledger.Account) Account {
	return Account{
		ID:             acct.ID.String(),
		OwnerID:        acct.OwnerID.String(),
		Type:           int(acct.Type),
		Balance:        acct.Balance.String(),
		OverdraftLimit: acct.OverdraftLimit.String(),
		InterestRate:   acct.InterestRate.String(),
		OpenedOn:       acct.OpenedOn.Format(time.RFC3339),
	}
}
