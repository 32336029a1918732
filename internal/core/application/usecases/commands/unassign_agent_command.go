package commands

import (
	"errors"
	"fmt"

	"ordertrack/internal/core/domain/model/actor"
	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/pkg/errs"
	"ordertrack/internal/pkg/guard"
)

var ErrUnassignAgentCommandIsNotConstructed = errors.New(
	"UnassignAgentCommand must be created via NewUnassignAgentCommand constructor",
)

// UnassignAgentCommand represents a supervisor's request to detach the
// assigned driver and return the order to the unassigned pool.
type UnassignAgentCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	expectedSeq int64
	actor       actor.Actor
	provenance  Provenance

	guard guard.ConstructorGuard
}

// NewUnassignAgentCommand creates a command to detach a driver from an order.
func NewUnassignAgentCommand(
	orderID kernel.UUID,
	expectedSeq int64,
	act actor.Actor,
	provenance Provenance,
) (UnassignAgentCommand, error) {
	cmd := UnassignAgentCommand{
		provenance: provenance,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setExpectedSeq(expectedSeq),
		cmd.setActor(act),
	); err != nil {
		return UnassignAgentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UnassignAgentCommand) Validate() error {
	return c.guard.Validate(ErrUnassignAgentCommandIsNotConstructed)
}

// OrderID returns the target order.
func (c UnassignAgentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ExpectedSeq returns the seq the caller last observed.
func (c UnassignAgentCommand) ExpectedSeq() int64 {
	return c.expectedSeq
}

// Actor returns the acting subject.
func (c UnassignAgentCommand) Actor() actor.Actor {
	return c.actor
}

// Provenance returns client connection details for the audit trail.
func (c UnassignAgentCommand) Provenance() Provenance {
	return c.provenance
}

func (c *UnassignAgentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UnassignAgentCommand) setExpectedSeq(expectedSeq int64) error {
	if expectedSeq < 0 {
		return errs.NewVersionIsInvalidError("expectedSeq",
			fmt.Errorf("%d is negative", expectedSeq))
	}
	c.expectedSeq = expectedSeq
	return nil
}

func (c *UnassignAgentCommand) setActor(act actor.Actor) error {
	if err := act.Validate(); err != nil {
		return err
	}
	c.actor = act
	return nil
}
