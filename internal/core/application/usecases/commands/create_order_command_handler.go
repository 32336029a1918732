package commands

import (
	"context"
	"log/slog"
	"time"

	"ordertrack/internal/core/domain/events"
	"ordertrack/internal/core/domain/model/actor"
	"ordertrack/internal/core/domain/model/history"
	"ordertrack/internal/core/domain/model/order"
	"ordertrack/internal/core/ports"
)

const sourceMerchantCreate = "MERCHANT_CREATE"

// CreateOrderCommandHandler handles order registration. Only merchants may
// create orders; the order is persisted at seq 0 in CREATED status and an
// order.created event is published for attached stream sessions.
type CreateOrderCommandHandler struct {
	orders ports.OrderRepository
	post   postCommit
}

// NewCreateOrderCommandHandler creates a handler for order registration.
func NewCreateOrderCommandHandler(
	orders ports.OrderRepository,
	ledger ports.HistoryRepository,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		orders: orders,
		post:   postCommit{ledger: ledger, publisher: publisher, logger: logger},
	}
}

// Handle processes the order registration command.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (MutationResult, error) {
	if err := cmd.Validate(); err != nil {
		return MutationResult{}, err
	}

	if !cmd.Actor().Is(actor.RoleMerchant) {
		return MutationResult{}, ErrForbidden
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(),
		cmd.Actor().ID(),
		cmd.CustomerName(),
		cmd.Address(),
		cmd.PickupAddress(),
		cmd.Phone(),
		cmd.Cost(),
		cmd.Details(),
	)
	if err != nil {
		return MutationResult{}, err
	}

	if err = h.orders.Add(ctx, aggregate); err != nil {
		return MutationResult{}, err
	}

	h.dispatchSideEffects(ctx, cmd, aggregate)

	return MutationResult{
		OrderID: aggregate.ID(),
		Status:  aggregate.Status(),
		Seq:     aggregate.Seq(),
	}, nil
}

func (h CreateOrderCommandHandler) dispatchSideEffects(ctx context.Context, cmd CreateOrderCommand, aggregate *order.Order) {
	entry, err := history.NewEntry(
		aggregate.ID(),
		aggregate.Status(),
		aggregate.Seq(),
		cmd.Actor().ID(),
		cmd.Actor().Role(),
		history.Metadata{
			Source:    sourceMerchantCreate,
			IP:        cmd.Provenance().IP,
			UserAgent: cmd.Provenance().UserAgent,
		},
	)
	if err != nil {
		h.post.logger.ErrorContext(ctx, "Failed to build order history entry",
			"orderId", aggregate.ID().String(), "error", err)
		return
	}

	h.post.run(ctx, entry, events.TopicOrderCreated, events.OrderCreated{
		OrderID:   aggregate.ID().String(),
		Status:    aggregate.Status().String(),
		Seq:       aggregate.Seq(),
		CreatedAt: aggregate.CreatedAt().Format(time.RFC3339),
	})
}
