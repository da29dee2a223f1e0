// Package storage is the ledger store: durable keyed storage for accounts
// and an append-only store for transaction records, backed by postgres.
package storage

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/ledger-server/internal/config"
	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// Storage bundles the table handles operating outside any transaction.
// Balance mutations must not use these directly; they go through a Writer
// so the read-check-write is a single atomic unit.
type Storage struct {
	db           bob.DB
	Accounts     account.IAccountTable
	Transactions transaction.ITransactionTable
}

// ConnString builds the postgres connection string shared by the server
// and the migration runner.
func ConnString(env *config.Config) string {
	return "postgres://" + env.PostgresUsername + ":" +
		env.PostgresPassword + "@" + env.PostgresAddress + ":" +
		env.PostgresPort + "/" + env.PostgresDB + "?sslmode=disable"
}

func NewStorage(env *config.Config) (*Storage, error) {
	sqlDB, err := sql.Open("postgres", ConnString(env))
	if err != nil {
		return nil, err
	}

	db := bob.NewDB(sqlDB)
	return &Storage{
		db:           db,
		Accounts:     account.NewTable(db),
		Transactions: transaction.NewTable(db),
	}, nil
}

// Write opens a transaction-scoped Writer. Every exit path must end in
// Commit or Rollback.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return NewWriter(tx), nil
}
