package actions

import (
	"context"

	"github.com/carson-networks/ledger-server/internal/storage"
)

// IAction is one mutation performed inside a storage transaction. The
// operator commits on nil, rolls back on error. Actions carry their own
// inputs and expose results through exported fields set during Perform.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}
