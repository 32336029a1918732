// Package commands contains the business operations that mutate order state.
// It implements the Command pattern for write operations: every mutation kind
// has a constructor-guarded command and a handler that runs the same
// protocol: authorize the actor's role, validate input, read the current
// order, check transition legality, and issue a single conditional write
// against the record store matching the expected seq. The conditional write
// is the only synchronization point: there is no in-process lock on order
// state, and two racing writers with the same expected seq produce exactly
// one success and one conflict.
//
// After an accepted write, handlers append an audit entry to the history
// ledger and publish an event on the bus. Both side effects are best-effort:
// they never block or fail the caller-visible result, and their failures are
// only logged.
package commands

import (
	"context"
	"errors"
	"log/slog"

	"ordertrack/internal/core/domain/model/history"
	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/domain/model/order"
	"ordertrack/internal/core/ports"
	"ordertrack/internal/pkg/errs"
)

// Provenance carries client connection details recorded in the audit trail.
// It is optional context, never validated.
type Provenance struct {
	IP        string
	UserAgent string
}

// MutationResult reports the state resulting from an accepted mutation.
// Seq is the post-mutation version the caller must present on its next write.
type MutationResult struct {
	OrderID kernel.UUID
	Status  order.Status
	Seq     int64
}

// casWrite issues the conditional write against the record store and, on a
// version miss, re-reads the order to surface a ConflictError carrying the
// current seq and status. If the re-read itself fails the raw version
// conflict is returned so the caller still sees a retryable classification.
func casWrite(
	ctx context.Context,
	orders ports.OrderRepository,
	aggregate *order.Order,
	expectedSeq int64,
) error {
	err := orders.UpdateWithVersion(ctx, aggregate, expectedSeq)
	if err == nil {
		return nil
	}
	if !errors.Is(err, errs.ErrVersionConflict) {
		return err
	}

	current, readErr := orders.Get(ctx, aggregate.ID())
	if readErr != nil {
		return err
	}
	return &ConflictError{
		OrderID: current.ID().String(),
		Seq:     current.Seq(),
		Status:  current.Status(),
	}
}

// postCommit dispatches the best-effort side effects of an accepted
// mutation: the ledger append and the event publish. The append runs on a
// detached context so a cancelled caller or a slow ledger cannot affect the
// committed result; failures are logged and swallowed.
type postCommit struct {
	ledger    ports.HistoryRepository
	publisher ports.EventPublisher
	logger    *slog.Logger
}

func (p postCommit) run(ctx context.Context, entry *history.Entry, topic string, payload any) {
	p.publisher.Publish(topic, payload)

	detached := context.WithoutCancel(ctx)
	go func() {
		if err := p.ledger.Append(detached, entry); err != nil {
			p.logger.ErrorContext(detached, "Failed to write order history",
				"orderId", entry.OrderID().String(),
				"source", entry.Metadata().Source,
				"error", err)
		}
	}()
}
