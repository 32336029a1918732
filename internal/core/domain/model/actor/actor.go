// Package actor provides the identity of the subject performing an operation
// on an order: who they are and which role they act in. Actors are resolved
// by the credential authority adapter before a request reaches the core; the
// core never issues or stores credentials.
package actor

import (
	"errors"

	"ordertrack/internal/core/domain/model/kernel"
)

// ErrActorIsNotConstructed is returned when an Actor instance was not created
// through the NewActor constructor.
var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Actor is the resolved (subjectId, role) pair attached to every request.
// It is a value object: immutable after construction and safe to copy.
type Actor struct {
	id   kernel.UUID
	role Role

	isConstructed bool
}

// NewActor creates an Actor from a subject identifier and role.
// Both must be valid; the zero Actor fails Validate.
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}

	return Actor{
		id:            id,
		role:          role,
		isConstructed: true,
	}, nil
}

// Validate ensures the Actor was constructed through NewActor.
func (a Actor) Validate() error {
	if !a.isConstructed {
		return ErrActorIsNotConstructed
	}
	return nil
}

// ID returns the subject identifier.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// Role returns the role the subject acts in.
func (a Actor) Role() Role {
	return a.role
}

// Is reports whether the actor holds the given role.
func (a Actor) Is(role Role) bool {
	return a.role == role
}
