package transaction

import (
	"context"

	"github.com/aarondl/opt/null"
	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/mods"
	"github.com/stephenafamo/scan"
)

const tableName = "transactions"

var columns = []any{"id", "seq", "kind", "amount", "description", "source_account_id", "destination_account_id", "created_at"}

// Table provides access to the transactions table through any bob executor.
type Table struct {
	exec bob.Executor
}

var _ ITransactionTable = (*Table)(nil)

func NewTable(exec bob.Executor) *Table {
	return &Table{exec: exec}
}

// Insert appends a new transaction record and returns the stored row with
// its generated id, sequence, and timestamp.
func (t *Table) Insert(ctx context.Context, create *Create) (*Row, error) {
	q := psql.Insert(
		im.Into(tableName, "kind", "amount", "description", "source_account_id", "destination_account_id"),
		im.Values(psql.Arg(
			int16(create.Kind),
			create.Amount,
			create.Description,
			create.SourceAccountID,
			null.FromPtr(create.DestinationAccountID),
		)),
		im.Returning("*"),
	)

	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[Row]())
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// ListByAccount returns every record where the account is either source or
// destination, most recent first; records sharing a timestamp are ordered
// by insertion sequence.
func (t *Table) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*Row, error) {
	whereMods := []mods.Where[*dialect.SelectQuery]{
		sm.Where(psql.Quote("source_account_id").EQ(psql.Arg(accountID))),
		sm.Where(psql.Quote("destination_account_id").EQ(psql.Arg(accountID))),
	}

	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From(tableName),
		psql.WhereOr(whereMods...),
		sm.OrderBy("created_at").Desc(),
		sm.OrderBy("seq").Desc(),
	}

	rows, err := bob.All(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[Row]())
	if err != nil {
		return nil, err
	}

	result := make([]*Row, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}
