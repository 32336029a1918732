// Package ports defines the contracts between the core and its external
// collaborators: the durable record store, the history ledger, the event bus
// publisher side, and the credential authority. These interfaces establish
// dependency inversion and testability; the core relies on the record store
// for atomic single-record conditional updates and never guards order state
// with in-process locks.
package ports

import (
	"context"
	"time"

	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// UpdateWithVersion is the compare-and-swap at the heart of the mutation
// protocol: implementations must perform a single atomic conditional write
// matching both the order's identifier and seq == expectedSeq, persisting the
// aggregate's new state and incrementing seq by exactly one. When no record
// matches, implementations return errs.ErrVersionConflict (wrapped) and must
// not write anything.
type OrderRepository interface {
	// Add persists a new order aggregate. The order must be valid and not
	// already exist; it is stored at seq 0.
	Add(ctx context.Context, aggregate *order.Order) error

	// UpdateWithVersion persists changes to an existing order if and only if
	// its stored seq still equals expectedSeq, incrementing seq by one in the
	// same atomic write.
	UpdateWithVersion(ctx context.Context, aggregate *order.Order, expectedSeq int64) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ErrObjectNotFound (wrapped) when the order is unknown.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetStaleCreated retrieves orders still in Created status whose creation
	// time is before the given instant. Used by the stale-order watchdog.
	GetStaleCreated(ctx context.Context, before time.Time) ([]*order.Order, error)
}
