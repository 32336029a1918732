package commands

import (
	"context"
	"log/slog"

	"ordertrack/internal/core/domain/events"
	"ordertrack/internal/core/domain/model/actor"
	"ordertrack/internal/core/domain/model/history"
	"ordertrack/internal/core/ports"
)

const sourceDriverUpdate = "DRIVER_UPDATE"

// AdvanceStatusCommandHandler handles the driver's workflow moves, including
// a driver-side cancellation. Only drivers may advance; the move must be a
// legal transition from the order's current status.
type AdvanceStatusCommandHandler struct {
	orders ports.OrderRepository
	post   postCommit
}

// NewAdvanceStatusCommandHandler creates a handler for driver workflow moves.
func NewAdvanceStatusCommandHandler(
	orders ports.OrderRepository,
	ledger ports.HistoryRepository,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) AdvanceStatusCommandHandler {
	return AdvanceStatusCommandHandler{
		orders: orders,
		post:   postCommit{ledger: ledger, publisher: publisher, logger: logger},
	}
}

// Handle processes the status advancement command.
func (h AdvanceStatusCommandHandler) Handle(ctx context.Context, cmd AdvanceStatusCommand) (MutationResult, error) {
	if err := cmd.Validate(); err != nil {
		return MutationResult{}, err
	}

	if !cmd.Actor().Is(actor.RoleDriver) {
		return MutationResult{}, ErrForbidden
	}

	aggregate, err := h.orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return MutationResult{}, err
	}

	prevStatus := aggregate.Status()
	if err = aggregate.AdvanceTo(cmd.Next()); err != nil {
		return MutationResult{}, err
	}

	if err = casWrite(ctx, h.orders, aggregate, cmd.ExpectedSeq()); err != nil {
		return MutationResult{}, err
	}
	newSeq := cmd.ExpectedSeq() + 1

	h.dispatchSideEffects(ctx, cmd, prevStatus.String(), newSeq)

	return MutationResult{
		OrderID: aggregate.ID(),
		Status:  aggregate.Status(),
		Seq:     newSeq,
	}, nil
}

func (h AdvanceStatusCommandHandler) dispatchSideEffects(
	ctx context.Context,
	cmd AdvanceStatusCommand,
	prevStatus string,
	seq int64,
) {
	entry, err := history.NewEntry(
		cmd.OrderID(),
		cmd.Next(),
		seq,
		cmd.Actor().ID(),
		cmd.Actor().Role(),
		history.Metadata{
			Source:     sourceDriverUpdate,
			PrevStatus: prevStatus,
			IP:         cmd.Provenance().IP,
			UserAgent:  cmd.Provenance().UserAgent,
		},
	)
	if err != nil {
		h.post.logger.ErrorContext(ctx, "Failed to build order history entry",
			"orderId", cmd.OrderID().String(), "error", err)
		return
	}

	h.post.run(ctx, entry, events.TopicOrderUpdated, events.OrderUpdated{
		OrderID: cmd.OrderID().String(),
		Status:  cmd.Next().String(),
		Seq:     seq,
	})
}
