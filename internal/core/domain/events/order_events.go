// Package events defines the topics and payloads published on the in-process
// event bus when order mutations are accepted. Events are ephemeral: they are
// delivered at most once to subscribers attached at publish time, with no
// replay or durability guarantee. The record store and the history ledger
// remain the source of truth for state as of any point in time.
package events

// Topics for order lifecycle events. Subscribers may attach to each
// independently.
const (
	TopicOrderCreated = "order.created"
	TopicOrderUpdated = "order.updated"
)

// OrderCreated is published after an order is successfully registered.
type OrderCreated struct {
	OrderID   string `json:"orderId"`
	Status    string `json:"status"`
	Seq       int64  `json:"seq"`
	CreatedAt string `json:"createdAt"`
}

// OrderUpdated is published after an accepted mutation on an existing order.
// AssignedAgent is set only for assignment operations.
type OrderUpdated struct {
	OrderID       string `json:"orderId"`
	Status        string `json:"status"`
	Seq           int64  `json:"seq"`
	AssignedAgent string `json:"assignedAgent,omitempty"`
}
