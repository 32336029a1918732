package queries

import (
	"errors"
	"time"

	"ordertrack/internal/core/domain/model/actor"
	"ordertrack/internal/core/domain/model/order"
	"ordertrack/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersFilter narrows a listing. All fields are optional and combine
// with AND.
type ListOrdersFilter struct {
	// Status keeps only orders currently in this status.
	Status *order.Status

	// CustomerName keeps orders whose recipient name contains this fragment,
	// case-insensitively.
	CustomerName string

	// Phone keeps orders with exactly this recipient phone.
	Phone string

	// CreatedFrom and CreatedTo bound the creation time, inclusive from,
	// exclusive to.
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// ListOrdersQuery retrieves orders visible to the acting subject, newest
// first. Admins see every order, merchants the orders they originated,
// drivers the orders assigned to them.
type ListOrdersQuery struct {
	actor  actor.Actor
	filter ListOrdersFilter

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a query to list orders on behalf of the acting
// subject.
func NewListOrdersQuery(act actor.Actor, filter ListOrdersFilter) (ListOrdersQuery, error) {
	if err := act.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}
	if filter.Status != nil {
		if err := filter.Status.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}

	return ListOrdersQuery{
		actor:  act,
		filter: filter,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Actor returns the acting subject.
func (q ListOrdersQuery) Actor() actor.Actor {
	return q.actor
}

// Filter returns the listing filter.
func (q ListOrdersQuery) Filter() ListOrdersFilter {
	return q.filter
}
