// Package queries contains read-only operations over the record store.
// Query handlers bypass the domain aggregates and read projections straight
// from the database, returning plain response structs. Reads never touch the
// seq: a caller that intends to mutate takes the seq from the response and
// presents it as the expected version on the write.
package queries

import (
	"errors"
	"time"

	"ordertrack/internal/core/domain/model/actor"
	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/domain/model/order"
	"ordertrack/internal/pkg/guard"
)

// ErrForbidden is returned when the acting subject may not read the
// requested data.
var ErrForbidden = errors.New("read is not permitted for this role")

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves a single order by its identifier. Admins may read
// any order, merchants only orders they originated, drivers only orders
// assigned to them.
type GetOrderQuery struct {
	orderID kernel.UUID
	actor   actor.Actor

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query to read one order on behalf of the acting
// subject.
func NewGetOrderQuery(orderID kernel.UUID, act actor.Actor) (GetOrderQuery, error) {
	if err := errors.Join(orderID.Validate(), act.Validate()); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		actor:   act,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the requested order.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Actor returns the acting subject.
func (q GetOrderQuery) Actor() actor.Actor {
	return q.actor
}

// OrderResponse is the read model of one order. Seq is the version a caller
// must present as the expected version on its next mutation.
type OrderResponse struct {
	ID            kernel.UUID
	OriginatorID  kernel.UUID
	AgentID       *kernel.UUID
	CustomerName  string
	Address       string
	PickupAddress string
	Phone         string
	Cost          *float64
	Details       string
	Status        order.Status
	Seq           int64
	CreatedAt     time.Time
}
