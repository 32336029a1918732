package ports

// EventPublisher is the publish side of the in-process event bus.
//
// Publish is fire-and-forget: delivery happens at most once per currently
// attached subscriber, never blocks the caller, and produces no error. Events
// published while a subscriber is detached are lost by design.
type EventPublisher interface {
	Publish(topic string, payload any)
}
