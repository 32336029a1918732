package order

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrIllegalTransition is the sentinel wrapped by every TransitionError.
	// Use errors.Is to classify state machine violations.
	ErrIllegalTransition = errors.New("illegal status transition")
)

// phonePattern accepts an optional leading plus followed by 7 to 15 digits.
var phonePattern = regexp.MustCompile(`^[+\d]?\d{7,15}$`)

// TransitionError reports an attempted status change that is not an edge of
// the order state machine, naming both states so callers can surface them.
type TransitionError struct {
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal status transition from %s to %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// Order represents a delivery order in the system. It is the aggregate root
// that carries the order lifecycle from creation through driver assignment to
// delivery or cancellation.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and originator
//   - Customer name, delivery address and phone are required; phone must be well-formed
//   - Status transitions follow the state machine defined in Status
//   - A driver is attached exactly while the order is past Created and not yet released
//   - Can only be created through NewOrder or RestoreOrder
//
// The seq field is the optimistic lock version. The domain never increments
// it: the record store bumps it by exactly one on every accepted conditional
// write, so the value observed here is the version as of the last read.
type Order struct {
	// id is the unique external handle for the order, immutable after creation
	id kernel.UUID

	// originatorID references the merchant that created the order
	originatorID kernel.UUID

	// agentID is the assigned driver's ID (nil if unassigned)
	agentID *kernel.UUID

	// descriptive payload, not subject to transition logic
	customerName  string
	address       string
	pickupAddress string
	phone         string
	cost          *float64
	details       string

	// status represents the current state in the order lifecycle
	status Status

	// seq is the per-order monotonic version counter, starting at 0
	seq int64

	createdAt time.Time

	// isConstructed ensures the order was created via a factory method
	isConstructed bool
}

// NewOrder creates a new Order with validation. The order starts at Created
// status with seq 0 and no driver assigned.
//
// Parameters:
//   - id: Unique identifier for the order (must be a valid UUID)
//   - originatorID: The merchant creating the order
//   - customerName, address, phone: required descriptive fields
//   - pickupAddress, cost, details: optional descriptive fields
//
// Returns the created order, or a validation error joining every failed field.
func NewOrder(
	id kernel.UUID,
	originatorID kernel.UUID,
	customerName string,
	address string,
	pickupAddress string,
	phone string,
	cost *float64,
	details string,
) (*Order, error) {
	order := &Order{
		pickupAddress: pickupAddress,
		details:       details,
		status:        Created,
		seq:           0,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setOriginatorID(originatorID),
		order.setCustomerName(customerName),
		order.setAddress(address),
		order.setPhone(phone),
		order.setCost(cost),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order from persisted state. Descriptive fields
// are taken as-is (historical records may predate current validation rules),
// but identity, status, seq and the status/driver consistency rule are still
// enforced.
func RestoreOrder(
	id kernel.UUID,
	originatorID kernel.UUID,
	agentID *kernel.UUID,
	customerName string,
	address string,
	pickupAddress string,
	phone string,
	cost *float64,
	details string,
	status Status,
	seq int64,
	createdAt time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		originatorID.Validate(),
		status.Validate(),
		status.ValidateCanHaveAgent(agentID != nil),
	); err != nil {
		return nil, err
	}

	if agentID != nil {
		if err := agentID.Validate(); err != nil {
			return nil, err
		}
	}

	if seq < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("seq is invalid",
			fmt.Errorf("%d is negative", seq))
	}

	return &Order{
		id:            id,
		originatorID:  originatorID,
		agentID:       agentID,
		customerName:  customerName,
		address:       address,
		pickupAddress: pickupAddress,
		phone:         phone,
		cost:          cost,
		details:       details,
		status:        status,
		seq:           seq,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Order instance was properly constructed through one of
// the factory methods. This prevents bypassing validation by directly
// instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OriginatorID returns the ID of the merchant that created the order.
func (o *Order) OriginatorID() kernel.UUID {
	return o.originatorID
}

// AgentID returns the assigned driver's ID, or nil if no driver is assigned.
func (o *Order) AgentID() *kernel.UUID {
	return o.agentID
}

// CustomerName returns the recipient's name.
func (o *Order) CustomerName() string {
	return o.customerName
}

// Address returns the delivery address.
func (o *Order) Address() string {
	return o.address
}

// PickupAddress returns the pickup address, empty if not provided.
func (o *Order) PickupAddress() string {
	return o.pickupAddress
}

// Phone returns the recipient's phone number.
func (o *Order) Phone() string {
	return o.phone
}

// Cost returns the delivery cost, or nil if not provided.
func (o *Order) Cost() *float64 {
	return o.cost
}

// Details returns free-text order details, empty if not provided.
func (o *Order) Details() string {
	return o.details
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Seq returns the optimistic lock version as of the last read from the store.
func (o *Order) Seq() int64 {
	return o.seq
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// AssignAgent attaches a driver to the order and moves it to Assigned.
// Only orders in Created status accept an assignment; reassigning requires an
// explicit UnassignAgent first.
func (o *Order) AssignAgent(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	if !o.status.CanTransitionTo(Assigned) {
		return &TransitionError{From: o.status, To: Assigned}
	}

	o.status = Assigned
	o.agentID = &agentID
	return nil
}

// UnassignAgent releases the assigned driver and returns the order to
// Created. This is the supervisor reset: it is the one move outside the
// forward state machine, and it is only allowed while the order is still in
// Assigned status (a driver that already picked the package up cannot be
// silently detached from it).
func (o *Order) UnassignAgent() error {
	if o.status != Assigned {
		return &TransitionError{From: o.status, To: Created}
	}

	o.status = Created
	o.agentID = nil
	return nil
}

// AdvanceTo moves the order to the next workflow status. The target must be
// a valid status and a legal transition from the current one.
func (o *Order) AdvanceTo(next Status) error {
	if err := next.Validate(); err != nil {
		return err
	}

	if !o.status.CanTransitionTo(next) {
		return &TransitionError{From: o.status, To: next}
	}

	o.status = next
	return nil
}

// Cancel abandons the order. Cancellation is legal from every non-terminal
// status; an assigned driver stays on the record for auditability.
func (o *Order) Cancel() error {
	if !o.status.CanTransitionTo(Cancelled) {
		return &TransitionError{From: o.status, To: Cancelled}
	}

	o.status = Cancelled
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOriginatorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.originatorID = id
	return nil
}

func (o *Order) setCustomerName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("customerName")
	}
	o.customerName = name
	return nil
}

func (o *Order) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	o.address = address
	return nil
}

func (o *Order) setPhone(phone string) error {
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	if !phonePattern.MatchString(phone) {
		return errs.NewValueIsInvalidErrorWithCause("phone is invalid",
			fmt.Errorf("%q does not match the expected phone format", phone))
	}
	o.phone = phone
	return nil
}

func (o *Order) setCost(cost *float64) error {
	if cost != nil && *cost < 0 {
		return errs.NewValueIsInvalidErrorWithCause("cost is invalid",
			fmt.Errorf("%v is negative", *cost))
	}
	o.cost = cost
	return nil
}
