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

const sourceAdminUnassign = "ADMIN_UNASSIGN"

// UnassignAgentCommandHandler handles the supervisor reset. Only admins may
// unassign, and only while the order sits in ASSIGNED status; the order
// returns to CREATED with no driver attached.
type UnassignAgentCommandHandler struct {
	orders ports.OrderRepository
	post   postCommit
}

// NewUnassignAgentCommandHandler creates a handler for the supervisor reset.
func NewUnassignAgentCommandHandler(
	orders ports.OrderRepository,
	ledger ports.HistoryRepository,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) UnassignAgentCommandHandler {
	return UnassignAgentCommandHandler{
		orders: orders,
		post:   postCommit{ledger: ledger, publisher: publisher, logger: logger},
	}
}

// Handle processes the driver unassignment command.
func (h UnassignAgentCommandHandler) Handle(ctx context.Context, cmd UnassignAgentCommand) (MutationResult, error) {
	if err := cmd.Validate(); err != nil {
		return MutationResult{}, err
	}

	if !cmd.Actor().Is(actor.RoleAdmin) {
		return MutationResult{}, ErrForbidden
	}

	aggregate, err := h.orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return MutationResult{}, err
	}

	prevStatus := aggregate.Status()
	if err = aggregate.UnassignAgent(); err != nil {
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

func (h UnassignAgentCommandHandler) dispatchSideEffects(
	ctx context.Context,
	cmd UnassignAgentCommand,
	prevStatus string,
	seq int64,
) {
	entry, err := history.NewEntry(
		cmd.OrderID(),
		order.Created,
		seq,
		cmd.Actor().ID(),
		cmd.Actor().Role(),
		history.Metadata{
			Source:     sourceAdminUnassign,
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
		Status:  order.Created.String(),
		Seq:     seq,
	})
}
