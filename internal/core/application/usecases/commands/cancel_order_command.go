package commands

import (
	"errors"
	"fmt"

	"ordertrack/internal/core/domain/model/actor"
	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/pkg/errs"
	"ordertrack/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand represents a request to abandon an order. Admins may
// cancel any order, merchants only their own; the stale-order watchdog issues
// the system-initiated variant.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	expectedSeq int64
	actor       actor.Actor
	system      bool
	provenance  Provenance

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a command to cancel an order on behalf of a
// user.
func NewCancelOrderCommand(
	orderID kernel.UUID,
	expectedSeq int64,
	act actor.Actor,
	provenance Provenance,
) (CancelOrderCommand, error) {
	return newCancelOrderCommand(orderID, expectedSeq, act, false, provenance)
}

// NewSystemCancelOrderCommand creates a system-initiated cancellation, used
// by background maintenance acting under the service's own admin identity.
func NewSystemCancelOrderCommand(
	orderID kernel.UUID,
	expectedSeq int64,
	act actor.Actor,
) (CancelOrderCommand, error) {
	return newCancelOrderCommand(orderID, expectedSeq, act, true, Provenance{})
}

func newCancelOrderCommand(
	orderID kernel.UUID,
	expectedSeq int64,
	act actor.Actor,
	system bool,
	provenance Provenance,
) (CancelOrderCommand, error) {
	cmd := CancelOrderCommand{
		system:     system,
		provenance: provenance,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setExpectedSeq(expectedSeq),
		cmd.setActor(act),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderID returns the target order.
func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ExpectedSeq returns the seq the caller last observed.
func (c CancelOrderCommand) ExpectedSeq() int64 {
	return c.expectedSeq
}

// Actor returns the acting subject.
func (c CancelOrderCommand) Actor() actor.Actor {
	return c.actor
}

// IsSystem reports whether the cancellation was initiated by background
// maintenance rather than a user.
func (c CancelOrderCommand) IsSystem() bool {
	return c.system
}

// Provenance returns client connection details for the audit trail.
func (c CancelOrderCommand) Provenance() Provenance {
	return c.provenance
}

func (c *CancelOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CancelOrderCommand) setExpectedSeq(expectedSeq int64) error {
	if expectedSeq < 0 {
		return errs.NewVersionIsInvalidError("expectedSeq",
			fmt.Errorf("%d is negative", expectedSeq))
	}
	c.expectedSeq = expectedSeq
	return nil
}

func (c *CancelOrderCommand) setActor(act actor.Actor) error {
	if err := act.Validate(); err != nil {
		return err
	}
	c.actor = act
	return nil
}
