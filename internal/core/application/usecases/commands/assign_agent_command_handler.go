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

const sourceAdminAssign = "ADMIN_ASSIGN"

// AssignAgentCommandHandler handles driver assignment. Only admins may
// assign; the order must still be in CREATED status at the expected seq.
type AssignAgentCommandHandler struct {
	orders ports.OrderRepository
	post   postCommit
}

// NewAssignAgentCommandHandler creates a handler for driver assignment.
func NewAssignAgentCommandHandler(
	orders ports.OrderRepository,
	ledger ports.HistoryRepository,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) AssignAgentCommandHandler {
	return AssignAgentCommandHandler{
		orders: orders,
		post:   postCommit{ledger: ledger, publisher: publisher, logger: logger},
	}
}

// Handle processes the driver assignment command.
func (h AssignAgentCommandHandler) Handle(ctx context.Context, cmd AssignAgentCommand) (MutationResult, error) {
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
	if err = aggregate.AssignAgent(cmd.AgentID()); err != nil {
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

func (h AssignAgentCommandHandler) dispatchSideEffects(
	ctx context.Context,
	cmd AssignAgentCommand,
	prevStatus string,
	seq int64,
) {
	entry, err := history.NewEntry(
		cmd.OrderID(),
		order.Assigned,
		seq,
		cmd.Actor().ID(),
		cmd.Actor().Role(),
		history.Metadata{
			Source:        sourceAdminAssign,
			PrevStatus:    prevStatus,
			AssignedAgent: cmd.AgentID().String(),
			IP:            cmd.Provenance().IP,
			UserAgent:     cmd.Provenance().UserAgent,
		},
	)
	if err != nil {
		h.post.logger.ErrorContext(ctx, "Failed to build order history entry",
			"orderId", cmd.OrderID().String(), "error", err)
		return
	}

	h.post.run(ctx, entry, events.TopicOrderUpdated, events.OrderUpdated{
		OrderID:       cmd.OrderID().String(),
		Status:        order.Assigned.String(),
		Seq:           seq,
		AssignedAgent: cmd.AgentID().String(),
	})
}
