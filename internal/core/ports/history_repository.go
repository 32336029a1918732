package ports

import (
	"context"

	"ordertrack/internal/core/domain/model/history"
	"ordertrack/internal/core/domain/model/kernel"
)

// HistoryRepository defines the persistence contract for the append-only
// audit ledger. Entries are insert-only: there is no update or delete.
type HistoryRepository interface {
	// Append writes one immutable audit record.
	Append(ctx context.Context, entry *history.Entry) error

	// ListByOrderID returns the entries for an order ordered by creation time
	// ascending. An empty slice is a valid outcome, distinct from "order
	// unknown": callers decide how to treat it.
	ListByOrderID(ctx context.Context, orderID kernel.UUID) ([]*history.Entry, error)
}
