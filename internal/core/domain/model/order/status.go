package order

import (
	"fmt"

	"ordertrack/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct delivery workflow.
//
// State transitions:
//
//	Created ──> Assigned ──> PickedUp ──> InTransit ──> Delivered
//	   │            │            │             │
//	   └────────────┴────────────┴─────────────┴──────> Cancelled
//
// Delivered and Cancelled are terminal: no transition leaves them.
// Status is a value object that validates state transitions and provides
// the wire-format string representation used for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status when an order is first registered.
	// Orders in this status are waiting to be assigned to a driver.
	Created

	// Assigned indicates a driver has been assigned to the order.
	Assigned

	// PickedUp indicates the driver has collected the package.
	PickedUp

	// InTransit indicates the package is on its way to the customer.
	InTransit

	// Delivered indicates the package reached the customer.
	// This is a terminal status with no further transitions.
	Delivered

	// Cancelled indicates the order was abandoned before delivery.
	// This is a terminal status with no further transitions.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Created:   "CREATED",
		Assigned:  "ASSIGNED",
		PickedUp:  "PICKED_UP",
		InTransit: "IN_TRANSIT",
		Delivered: "DELIVERED",
		Cancelled: "CANCELLED",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Created:   "CREATED",
		Assigned:  "ASSIGNED",
		PickedUp:  "PICKED_UP",
		InTransit: "IN_TRANSIT",
		Delivered: "DELIVERED",
		Cancelled: "CANCELLED",
	}
}

// getAllowedTransitions returns the fixed adjacency table of the status
// state machine. Every non-terminal status may be abandoned to Cancelled;
// the two terminal states have no outgoing edges at all.
func getAllowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		Created:   {Assigned, Cancelled},
		Assigned:  {PickedUp, Cancelled},
		PickedUp:  {InTransit, Cancelled},
		InTransit: {Delivered, Cancelled},
		Delivered: {},
		Cancelled: {},
	}
}

// Validate checks if the Status value is a member of the fixed status set.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire-format name of the status ("CREATED", "ASSIGNED",
// "PICKED_UP", "IN_TRANSIT", "DELIVERED", "CANCELLED"), or "UNKNOWN" for
// invalid values. Implements fmt.Stringer and is safe on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// StatusFromString parses a wire-format status name into a Status.
// Returns an error for any value outside the fixed status set; "UNKNOWN"
// is not accepted.
func StatusFromString(value string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == value {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid",
		fmt.Errorf("%q is not a valid status", value))
}

// CanTransitionTo reports whether moving from s to the given status is a
// legal edge of the state machine. It is pure and total: invalid statuses on
// either side simply yield false, self-loops are never legal, and terminal
// statuses have no outgoing edges.
func (s Status) CanTransitionTo(to Status) bool {
	if s.Validate() != nil || to.Validate() != nil {
		return false
	}
	for _, next := range getAllowedTransitions()[s] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status has no outgoing transitions.
// Only Delivered and Cancelled are terminal.
func (s Status) IsTerminal() bool {
	next, ok := getAllowedTransitions()[s]
	return ok && len(next) == 0
}

// ValidateCanHaveAgent validates the consistency between order status and
// driver assignment.
//
// Rules:
//   - Created orders must not have a driver assigned
//   - Assigned, PickedUp, InTransit and Delivered orders must have one
//   - Cancelled orders may or may not, depending on when cancellation happened
//
// Parameters:
//   - hasAgent: whether the order has a driver assigned
func (s Status) ValidateCanHaveAgent(hasAgent bool) error {
	if s == Cancelled {
		return nil
	}

	if hasAgent && s == Created {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a driver", s.String()),
		)
	}

	if !hasAgent && s != Created {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no driver", s.String()),
		)
	}

	return nil
}
