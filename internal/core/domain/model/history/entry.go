// Package history provides the append-only audit trail of accepted order
// mutations. Every accepted write produces exactly one Entry; entries are
// immutable, ordered by creation time, and never updated or deleted. The
// ledger owns its entries: orders reference them only through the orderId
// lookup key.
package history

import (
	"errors"
	"time"

	"ordertrack/internal/core/domain/model/actor"
	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/domain/model/order"
)

// ErrEntryIsNotConstructed is returned when an Entry instance was not created
// through the NewEntry or RestoreEntry factory methods.
var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry or RestoreEntry constructor")

// Metadata carries the provenance of an accepted mutation: where the action
// came from, which status it replaced, and client details. It is free-form
// audit context and never participates in transition logic.
type Metadata struct {
	// Source names the operation that produced the entry, e.g. MERCHANT_CREATE,
	// ADMIN_ASSIGN, ADMIN_UNASSIGN, DRIVER_UPDATE, MERCHANT_CANCEL, SYSTEM_CANCEL.
	Source string `json:"source"`

	// PrevStatus is the wire-format status the mutation replaced; empty for creation.
	PrevStatus string `json:"prevStatus,omitempty"`

	// AssignedAgent is the driver attached by an assignment, if any.
	AssignedAgent string `json:"assignedAgent,omitempty"`

	// IP and UserAgent identify the client connection, "unknown" when absent.
	IP        string `json:"ip,omitempty"`
	UserAgent string `json:"userAgent,omitempty"`
}

// Entry is one immutable audit record: which order changed, the status and
// seq that resulted, who acted and in which role, plus provenance metadata.
type Entry struct {
	id        kernel.UUID
	orderID   kernel.UUID
	status    order.Status
	seq       int64
	updatedBy kernel.UUID
	role      actor.Role
	metadata  Metadata
	createdAt time.Time

	isConstructed bool
}

// NewEntry creates an audit record for an accepted mutation. The seq is the
// order's version resulting from that mutation, so the ledger reproduces the
// total order of accepted writes per order.
func NewEntry(
	orderID kernel.UUID,
	status order.Status,
	seq int64,
	updatedBy kernel.UUID,
	role actor.Role,
	metadata Metadata,
) (*Entry, error) {
	if err := errors.Join(
		orderID.Validate(),
		status.Validate(),
		updatedBy.Validate(),
		role.Validate(),
	); err != nil {
		return nil, err
	}

	return &Entry{
		id:            kernel.NewUUID(),
		orderID:       orderID,
		status:        status,
		seq:           seq,
		updatedBy:     updatedBy,
		role:          role,
		metadata:      metadata,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// RestoreEntry reconstructs an Entry from persisted state.
func RestoreEntry(
	id kernel.UUID,
	orderID kernel.UUID,
	status order.Status,
	seq int64,
	updatedBy kernel.UUID,
	role actor.Role,
	metadata Metadata,
	createdAt time.Time,
) (*Entry, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		status.Validate(),
		updatedBy.Validate(),
		role.Validate(),
	); err != nil {
		return nil, err
	}

	return &Entry{
		id:            id,
		orderID:       orderID,
		status:        status,
		seq:           seq,
		updatedBy:     updatedBy,
		role:          role,
		metadata:      metadata,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Entry was constructed through a factory method.
func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

// ID returns the entry's unique identifier.
func (e *Entry) ID() kernel.UUID {
	return e.id
}

// OrderID returns the order the entry belongs to.
func (e *Entry) OrderID() kernel.UUID {
	return e.orderID
}

// Status returns the order status that resulted from the mutation.
func (e *Entry) Status() order.Status {
	return e.status
}

// Seq returns the order's version at the time of this status.
func (e *Entry) Seq() int64 {
	return e.seq
}

// UpdatedBy returns the acting subject's identifier.
func (e *Entry) UpdatedBy() kernel.UUID {
	return e.updatedBy
}

// Role returns the role the subject acted in.
func (e *Entry) Role() actor.Role {
	return e.role
}

// Metadata returns the provenance metadata of the mutation.
func (e *Entry) Metadata() Metadata {
	return e.metadata
}

// CreatedAt returns when the entry was recorded.
func (e *Entry) CreatedAt() time.Time {
	return e.createdAt
}
