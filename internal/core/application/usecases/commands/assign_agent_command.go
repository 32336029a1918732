package commands

import (
	"errors"
	"fmt"

	"ordertrack/internal/core/domain/model/actor"
	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/pkg/errs"
	"ordertrack/internal/pkg/guard"
)

var ErrAssignAgentCommandIsNotConstructed = errors.New(
	"AssignAgentCommand must be created via NewAssignAgentCommand constructor",
)

// AssignAgentCommand represents a supervisor's request to attach a driver to
// an order the supervisor last observed at the given seq.
type AssignAgentCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	agentID     kernel.UUID
	expectedSeq int64
	actor       actor.Actor
	provenance  Provenance

	guard guard.ConstructorGuard
}

// NewAssignAgentCommand creates a command to assign a driver to an order.
// expectedSeq is the optimistic lock token: the seq the caller last read.
func NewAssignAgentCommand(
	orderID kernel.UUID,
	agentID kernel.UUID,
	expectedSeq int64,
	act actor.Actor,
	provenance Provenance,
) (AssignAgentCommand, error) {
	cmd := AssignAgentCommand{
		provenance: provenance,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAgentID(agentID),
		cmd.setExpectedSeq(expectedSeq),
		cmd.setActor(act),
	); err != nil {
		return AssignAgentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignAgentCommand) Validate() error {
	return c.guard.Validate(ErrAssignAgentCommandIsNotConstructed)
}

// OrderID returns the target order.
func (c AssignAgentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// AgentID returns the driver to assign.
func (c AssignAgentCommand) AgentID() kernel.UUID {
	return c.agentID
}

// ExpectedSeq returns the seq the caller last observed.
func (c AssignAgentCommand) ExpectedSeq() int64 {
	return c.expectedSeq
}

// Actor returns the acting subject.
func (c AssignAgentCommand) Actor() actor.Actor {
	return c.actor
}

// Provenance returns client connection details for the audit trail.
func (c AssignAgentCommand) Provenance() Provenance {
	return c.provenance
}

func (c *AssignAgentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *AssignAgentCommand) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}
	c.agentID = agentID
	return nil
}

func (c *AssignAgentCommand) setExpectedSeq(expectedSeq int64) error {
	if expectedSeq < 0 {
		return errs.NewVersionIsInvalidError("expectedSeq",
			fmt.Errorf("%d is negative", expectedSeq))
	}
	c.expectedSeq = expectedSeq
	return nil
}

func (c *AssignAgentCommand) setActor(act actor.Actor) error {
	if err := act.Validate(); err != nil {
		return err
	}
	c.actor = act
	return nil
}
