// Package bus provides a topic-keyed in-process event bus with live
// subscriber fan-out. It is process-wide state with an explicit lifecycle:
// constructed once in the composition root, passed by reference to every
// component that needs it, and closed at process stop.
//
// Delivery is at most once per attached subscriber: Publish never blocks, a
// subscriber whose channel is full loses the event, and events published
// before a subscription are not replayed. The durable store stays the source
// of truth; the bus only carries near-real-time notice.
package bus

import "sync"

// Event is a (topic, payload) pair describing a state change.
type Event struct {
	Topic   string
	Payload any
}

// Subscription is the token returned by Subscribe. Events for all of the
// subscription's topics arrive on the single C channel, which is closed on
// Unsubscribe or bus Close.
type Subscription struct {
	id     int64
	topics []string

	// C receives events for every subscribed topic.
	C <-chan Event

	ch chan Event
}

// Bus fans events out to the subscribers attached per topic. Safe for
// concurrent publish, subscribe and unsubscribe from multiple goroutines.
type Bus struct {
	mu     sync.Mutex
	nextID int64
	closed bool
	subs   map[string]map[int64]*Subscription
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{
		subs: make(map[string]map[int64]*Subscription),
	}
}

// Subscribe attaches a subscriber to the given topics and returns its
// subscription token. The buffer bounds how many undelivered events may be
// pending before further ones are dropped for this subscriber.
//
// Subscribing on a closed bus returns a subscription whose channel is already
// closed, so consumers observe a normal end of stream.
func (b *Bus) Subscribe(buffer int, topics ...string) *Subscription {
	ch := make(chan Event, buffer)
	sub := &Subscription{
		topics: topics,
		C:      ch,
		ch:     ch,
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		close(ch)
		return sub
	}

	b.nextID++
	sub.id = b.nextID
	for _, topic := range topics {
		if b.subs[topic] == nil {
			b.subs[topic] = make(map[int64]*Subscription)
		}
		b.subs[topic][sub.id] = sub
	}
	return sub
}

// Unsubscribe detaches the subscription from every topic it was registered
// for and closes its channel. It is safe to call more than once.
func (b *Bus) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	detached := false
	for _, topic := range sub.topics {
		if set, ok := b.subs[topic]; ok {
			if _, attached := set[sub.id]; attached {
				delete(set, sub.id)
				detached = true
			}
			if len(set) == 0 {
				delete(b.subs, topic)
			}
		}
	}
	if detached {
		close(sub.ch)
	}
}

// Publish delivers the event to every subscriber currently attached to the
// topic. It never blocks: subscribers with a full buffer miss the event.
func (b *Bus) Publish(topic string, payload any) {
	event := Event{Topic: topic, Payload: payload}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	for _, sub := range b.subs[topic] {
		select {
		case sub.ch <- event:
		default:
		}
	}
}

// Close detaches every subscriber and closes their channels. Publishing or
// subscribing afterwards is a no-op (new subscriptions arrive pre-closed).
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	closed := make(map[int64]bool)
	for _, set := range b.subs {
		for id, sub := range set {
			if !closed[id] {
				close(sub.ch)
				closed[id] = true
			}
		}
	}
	b.subs = nil
}
