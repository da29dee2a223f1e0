package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

const tableName = "accounts"

var columns = []any{"id", "owner_id", "type", "balance", "overdraft_limit", "interest_rate", "opened_on", "created_at"}

// Table provides access to the accounts table through any bob executor,
// either the database handle or an open transaction.
type Table struct {
	exec bob.Executor
}

var _ IAccountTable = (*Table)(nil)

func NewTable(exec bob.Executor) *Table {
	return &Table{exec: exec}
}

// FindByID retrieves an account by primary key.
func (t *Table) FindByID(ctx context.Context, id uuid.UUID) (*Row, error) {
	return t.find(ctx, id, false)
}

// FindByIDForUpdate retrieves an account by primary key holding a row lock
// until the surrounding transaction commits or rolls back.
func (t *Table) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Row, error) {
	return t.find(ctx, id, true)
}

func (t *Table) find(ctx context.Context, id uuid.UUID, forUpdate bool) (*Row, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From(tableName),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	}
	if forUpdate {
		queryMods = append(queryMods, sm.ForUpdate())
	}

	row, err := bob.One(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[Row]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ledger.ErrAccountNotFound, id)
		}
		return nil, err
	}
	return &row, nil
}

// Insert creates a new account and returns its generated ID.
func (t *Table) Insert(ctx context.Context, create *Create) (uuid.UUID, error) {
	q := psql.Insert(
		im.Into(tableName, "owner_id", "type", "balance", "overdraft_limit", "interest_rate", "opened_on"),
		im.Values(psql.Arg(
			create.OwnerID,
			int16(create.Type),
			create.Balance,
			create.OverdraftLimit,
			create.InterestRate,
			create.OpenedOn,
		)),
		im.Returning("id"),
	)

	id, err := bob.One(ctx, t.exec, q, scan.SingleColumnMapper[uuid.UUID])
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// UpdateBalance updates the balance for a given account.
func (t *Table) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	q := psql.Update(
		um.Table(tableName),
		um.SetCol("balance").ToArg(balance),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)

	res, err := bob.Exec(ctx, t.exec, q)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ledger.ErrAccountNotFound, id)
	}
	return nil
}

// Delete removes an account record. Callers only ever invoke this when the
// balance is exactly zero; transaction history is retained for audit.
func (t *Table) Delete(ctx context.Context, id uuid.UUID) error {
	q := psql.Delete(
		dm.From(tableName),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)

	res, err := bob.Exec(ctx, t.exec, q)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ledger.ErrAccountNotFound, id)
	}
	return nil
}
