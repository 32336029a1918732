package queries

import (
	"errors"
	"time"

	"ordertrack/internal/core/domain/model/actor"
	"ordertrack/internal/core/domain/model/history"
	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/domain/model/order"
	"ordertrack/internal/pkg/guard"
)

var ErrGetHistoryQueryIsNotConstructed = errors.New(
	"GetHistoryQuery must be created via NewGetHistoryQuery constructor",
)

// GetHistoryQuery retrieves the audit trail of one order, oldest entry
// first. Any authenticated subject may read it; the trail carries no data
// beyond what the order's own lifecycle already exposes.
type GetHistoryQuery struct {
	orderID kernel.UUID
	actor   actor.Actor

	guard guard.ConstructorGuard
}

// NewGetHistoryQuery creates a query to read an order's audit trail.
func NewGetHistoryQuery(orderID kernel.UUID, act actor.Actor) (GetHistoryQuery, error) {
	if err := errors.Join(orderID.Validate(), act.Validate()); err != nil {
		return GetHistoryQuery{}, err
	}

	return GetHistoryQuery{
		orderID: orderID,
		actor:   act,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetHistoryQueryIsNotConstructed)
}

// OrderID returns the order whose trail is requested.
func (q GetHistoryQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Actor returns the acting subject.
func (q GetHistoryQuery) Actor() actor.Actor {
	return q.actor
}

// HistoryEntryResponse is the read model of one audit record.
type HistoryEntryResponse struct {
	ID        kernel.UUID
	OrderID   kernel.UUID
	Status    order.Status
	Seq       int64
	UpdatedBy kernel.UUID
	Role      actor.Role
	Metadata  history.Metadata
	CreatedAt time.Time
}
