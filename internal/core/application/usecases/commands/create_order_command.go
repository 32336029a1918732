package commands

import (
	"errors"

	"ordertrack/internal/core/domain/model/actor"
	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to register a new delivery order.
// Creation is the degenerate case of the mutation protocol: there is no
// existing record to version-check, the order starts at seq 0 in CREATED
// status, and the same best-effort ledger append and event publish follow.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	actor         actor.Actor
	customerName  string
	address       string
	pickupAddress string
	phone         string
	cost          *float64
	details       string
	provenance    Provenance

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order on behalf
// of the acting subject. Descriptive field rules (required name, address and
// phone, phone format, non-negative cost) are enforced by the order aggregate
// when the handler constructs it.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	act actor.Actor,
	customerName string,
	address string,
	pickupAddress string,
	phone string,
	cost *float64,
	details string,
	provenance Provenance,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		customerName:  customerName,
		address:       address,
		pickupAddress: pickupAddress,
		phone:         phone,
		cost:          cost,
		details:       details,
		provenance:    provenance,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(act),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier assigned to the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the acting subject.
func (c CreateOrderCommand) Actor() actor.Actor {
	return c.actor
}

// CustomerName returns the recipient's name.
func (c CreateOrderCommand) CustomerName() string {
	return c.customerName
}

// Address returns the delivery address.
func (c CreateOrderCommand) Address() string {
	return c.address
}

// PickupAddress returns the optional pickup address.
func (c CreateOrderCommand) PickupAddress() string {
	return c.pickupAddress
}

// Phone returns the recipient's phone number.
func (c CreateOrderCommand) Phone() string {
	return c.phone
}

// Cost returns the optional delivery cost.
func (c CreateOrderCommand) Cost() *float64 {
	return c.cost
}

// Details returns the optional free-text details.
func (c CreateOrderCommand) Details() string {
	return c.details
}

// Provenance returns client connection details for the audit trail.
func (c CreateOrderCommand) Provenance() Provenance {
	return c.provenance
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setActor(act actor.Actor) error {
	if err := act.Validate(); err != nil {
		return err
	}
	c.actor = act
	return nil
}
