package bus_test

import (
	"sync"
	"testing"
	"time"

	"ordertrack/internal/pkg/bus"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receiveOne(t *testing.T, sub *bus.Subscription) bus.Event {
	t.Helper()
	select {
	case ev, ok := <-sub.C:
		require.True(t, ok, "channel closed before event arrived")
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return bus.Event{}
	}
}

func assertNoEvent(t *testing.T, sub *bus.Subscription) {
	t.Helper()
	select {
	case ev, ok := <-sub.C:
		if ok {
			t.Fatalf("unexpected event on topic %s", ev.Topic)
		}
	default:
	}
}

func TestBus_PublishReachesAttachedSubscriber(t *testing.T) {
	b := bus.New()
	defer b.Close()

	sub := b.Subscribe(4, "order.updated")
	b.Publish("order.updated", "payload")

	ev := receiveOne(t, sub)
	assert.Equal(t, "order.updated", ev.Topic)
	assert.Equal(t, "payload", ev.Payload)
}

func TestBus_TopicsAreIndependent(t *testing.T) {
	b := bus.New()
	defer b.Close()

	created := b.Subscribe(4, "order.created")
	updated := b.Subscribe(4, "order.updated")

	b.Publish("order.created", 1)

	ev := receiveOne(t, created)
	assert.Equal(t, "order.created", ev.Topic)
	assertNoEvent(t, updated)
}

func TestBus_SubscriptionSpansMultipleTopics(t *testing.T) {
	b := bus.New()
	defer b.Close()

	sub := b.Subscribe(4, "order.created", "order.updated")
	b.Publish("order.created", 1)
	b.Publish("order.updated", 2)

	first := receiveOne(t, sub)
	second := receiveOne(t, sub)
	assert.Equal(t, "order.created", first.Topic)
	assert.Equal(t, "order.updated", second.Topic)
}

func TestBus_DetachedSubscriberReceivesNothing(t *testing.T) {
	b := bus.New()
	defer b.Close()

	sub := b.Subscribe(4, "order.updated")
	b.Unsubscribe(sub)
	b.Publish("order.updated", "missed")

	_, ok := <-sub.C
	assert.False(t, ok, "channel should be closed after unsubscribe")
}

func TestBus_UnsubscribeIsIdempotent(t *testing.T) {
	b := bus.New()
	defer b.Close()

	sub := b.Subscribe(1, "order.updated")
	b.Unsubscribe(sub)
	b.Unsubscribe(sub)
	b.Unsubscribe(nil)
}

func TestBus_EventsBeforeSubscriptionAreLost(t *testing.T) {
	b := bus.New()
	defer b.Close()

	b.Publish("order.updated", "early")
	sub := b.Subscribe(4, "order.updated")

	assertNoEvent(t, sub)
}

func TestBus_SlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	b := bus.New()
	defer b.Close()

	sub := b.Subscribe(1, "order.updated")
	b.Publish("order.updated", 1)
	b.Publish("order.updated", 2) // buffer full, dropped

	ev := receiveOne(t, sub)
	assert.Equal(t, 1, ev.Payload)
	assertNoEvent(t, sub)
}

func TestBus_CloseEndsAllSubscriptions(t *testing.T) {
	b := bus.New()

	sub := b.Subscribe(4, "order.created", "order.updated")
	b.Close()

	_, ok := <-sub.C
	assert.False(t, ok)

	// post-close operations are no-ops
	b.Publish("order.updated", 1)
	late := b.Subscribe(4, "order.updated")
	_, ok = <-late.C
	assert.False(t, ok)
	b.Close()
}

func TestBus_ConcurrentAttachDetachAndPublish(t *testing.T) {
	b := bus.New()
	defer b.Close()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				sub := b.Subscribe(1, "order.updated")
				b.Unsubscribe(sub)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				b.Publish("order.updated", j)
			}
		}()
	}
	wg.Wait()
}
