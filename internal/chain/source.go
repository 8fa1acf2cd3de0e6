// Package chain defines the data port the analysis engine consumes. The engine
// never talks to an explorer directly; any implementation of Source will do.
package chain

import (
	"context"
	"errors"

	"github.com/goodnatureofminers/chaintrace7000-backend/internal/model"
)

// ErrNotFound marks a txid or address the data source does not know. Batch
// operations skip such items and count them; they never abort a run. Port
// implementations also map exhausted retries to ErrNotFound so a run degrades
// instead of failing wholesale.
var ErrNotFound = errors.New("chain: not found")

// Source supplies transactions, address histories and spend lookups.
// Implementations own their retry and rate-limit policy; confirmation status
// is exposed only as a boolean, never as a confirmation count.
type Source interface {
	// FetchTransaction returns a single transaction or ErrNotFound.
	FetchTransaction(ctx context.Context, txid string) (*model.Transaction, error)

	// FetchTransactions resolves many txids with bounded concurrency. Items
	// the source does not know are returned in missing instead of failing
	// the batch; the returned transactions keep the order of txids.
	FetchTransactions(ctx context.Context, txids []string) (txs []*model.Transaction, missing []string, err error)

	// FetchAddressHistory returns one page of an address' transactions. An
	// empty cursor requests the first page; an empty NextCursor ends the
	// sequence.
	FetchAddressHistory(ctx context.Context, address, cursor string) (model.HistoryPage, error)

	// FetchSpend reports whether and where an output was spent.
	FetchSpend(ctx context.Context, txid string, vout uint32) (model.SpendInfo, error)
}
