package commands

import (
	"context"
	"log/slog"

	"ordertrack/internal/core/domain/events"
	"ordertrack/internal/core/domain/model/actor"
	"ordertrack/internal/core/domain/model/history"
	"ordertrack/internal/core/domain/model/order"
	"ordertrack/internal/core/ports"
)

const (
	sourceAdminCancel    = "ADMIN_CANCEL"
	sourceMerchantCancel = "MERCHANT_CANCEL"
	sourceSystemCancel   = "SYSTEM_CANCEL"
)

// CancelOrderCommandHandler handles cancellation. Admins may cancel any
// order, merchants only orders they originated. Drivers cancel through the
// workflow advancement path instead.
type CancelOrderCommandHandler struct {
	orders ports.OrderRepository
	post   postCommit
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	orders ports.OrderRepository,
	ledger ports.HistoryRepository,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		orders: orders,
		post:   postCommit{ledger: ledger, publisher: publisher, logger: logger},
	}
}

// Handle processes the cancellation command.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (MutationResult, error) {
	if err := cmd.Validate(); err != nil {
		return MutationResult{}, err
	}

	if !cmd.Actor().Is(actor.RoleAdmin) && !cmd.Actor().Is(actor.RoleMerchant) {
		return MutationResult{}, ErrForbidden
	}

	aggregate, err := h.orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return MutationResult{}, err
	}

	if cmd.Actor().Is(actor.RoleMerchant) && !aggregate.OriginatorID().IsEqual(cmd.Actor().ID()) {
		return MutationResult{}, ErrForbidden
	}

	prevStatus := aggregate.Status()
	if err = aggregate.Cancel(); err != nil {
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

func (h CancelOrderCommandHandler) source(cmd CancelOrderCommand) string {
	switch {
	case cmd.IsSystem():
		return sourceSystemCancel
	case cmd.Actor().Is(actor.RoleAdmin):
		return sourceAdminCancel
	default:
		return sourceMerchantCancel
	}
}

func (h CancelOrderCommandHandler) dispatchSideEffects(
	ctx context.Context,
	cmd CancelOrderCommand,
	prevStatus string,
	seq int64,
) {
	entry, err := history.NewEntry(
		cmd.OrderID(),
		order.Cancelled,
		seq,
		cmd.Actor().ID(),
		cmd.Actor().Role(),
		history.Metadata{
			Source:     h.source(cmd),
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
		Status:  order.Cancelled.String(),
		Seq:     seq,
	})
}
