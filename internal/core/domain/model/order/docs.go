// Package order provides domain entities and business logic for order
// lifecycle management in the order tracking system. It implements the Order
// aggregate root with state transitions and optimistic-lock versioning.
//
// The package includes:
//   - Order: The aggregate root carrying identity, descriptive payload, status and seq
//   - Status: A state machine that enforces valid order status transitions
//   - TransitionError: The error reported for illegal transitions, naming both states
//
// Key business rules:
//   - Orders must have a valid unique identifier, originator, recipient and phone
//   - Status follows the workflow CREATED -> ASSIGNED -> PICKED_UP -> IN_TRANSIT -> DELIVERED,
//     with CANCELLED reachable from every non-terminal status
//   - DELIVERED and CANCELLED are terminal; nothing leaves them
//   - Unassigning a driver returns an ASSIGNED order to CREATED (supervisor reset)
//   - seq is the per-order optimistic lock version, incremented only by the
//     record store's conditional write, never by the domain
package order
