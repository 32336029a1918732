package commands

import (
	"errors"
	"fmt"

	"ordertrack/internal/core/domain/model/actor"
	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/domain/model/order"
	"ordertrack/internal/pkg/errs"
	"ordertrack/internal/pkg/guard"
)

var ErrAdvanceStatusCommandIsNotConstructed = errors.New(
	"AdvanceStatusCommand must be created via NewAdvanceStatusCommand constructor",
)

// AdvanceStatusCommand represents a driver's request to move an order one
// step along the delivery workflow.
type AdvanceStatusCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	next        order.Status
	expectedSeq int64
	actor       actor.Actor
	provenance  Provenance

	guard guard.ConstructorGuard
}

// NewAdvanceStatusCommand creates a command to move an order to the next
// workflow status. Whether the move is legal from the order's current status
// is decided by the aggregate at handling time; statuses that only the
// registration and assignment operations may enter are rejected here.
func NewAdvanceStatusCommand(
	orderID kernel.UUID,
	next order.Status,
	expectedSeq int64,
	act actor.Actor,
	provenance Provenance,
) (AdvanceStatusCommand, error) {
	cmd := AdvanceStatusCommand{
		provenance: provenance,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setNext(next),
		cmd.setExpectedSeq(expectedSeq),
		cmd.setActor(act),
	); err != nil {
		return AdvanceStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceStatusCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceStatusCommandIsNotConstructed)
}

// OrderID returns the target order.
func (c AdvanceStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Next returns the requested target status.
func (c AdvanceStatusCommand) Next() order.Status {
	return c.next
}

// ExpectedSeq returns the seq the caller last observed.
func (c AdvanceStatusCommand) ExpectedSeq() int64 {
	return c.expectedSeq
}

// Actor returns the acting subject.
func (c AdvanceStatusCommand) Actor() actor.Actor {
	return c.actor
}

// Provenance returns client connection details for the audit trail.
func (c AdvanceStatusCommand) Provenance() Provenance {
	return c.provenance
}

func (c *AdvanceStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *AdvanceStatusCommand) setNext(next order.Status) error {
	if err := next.Validate(); err != nil {
		return err
	}
	// CREATED and ASSIGNED are entered only through registration and the
	// assign/unassign operations, which manage the agent alongside the
	// status. Advancing into them would commit an order whose status and
	// agent disagree.
	if next == order.Created || next == order.Assigned {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not reachable via status advancement", next))
	}
	c.next = next
	return nil
}

func (c *AdvanceStatusCommand) setExpectedSeq(expectedSeq int64) error {
	if expectedSeq < 0 {
		return errs.NewVersionIsInvalidError("expectedSeq",
			fmt.Errorf("%d is negative", expectedSeq))
	}
	c.expectedSeq = expectedSeq
	return nil
}

func (c *AdvanceStatusCommand) setActor(act actor.Actor) error {
	if err := act.Validate(); err != nil {
		return err
	}
	c.actor = act
	return nil
}
