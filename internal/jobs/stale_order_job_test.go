package jobs_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"ordertrack/internal/core/application/usecases/commands"
	"ordertrack/internal/core/domain/model/actor"
	"ordertrack/internal/core/domain/model/history"
	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/domain/model/order"
	"ordertrack/internal/jobs"
	"ordertrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderStore struct {
	mu     sync.Mutex
	orders map[string]*order.Order
	stale  []*order.Order
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: make(map[string]*order.Order)}
}

func (s *fakeOrderStore) snapshot(o *order.Order, seq int64) *order.Order {
	copied, err := order.RestoreOrder(
		o.ID(), o.OriginatorID(), o.AgentID(),
		o.CustomerName(), o.Address(), o.PickupAddress(), o.Phone(), o.Cost(), o.Details(),
		o.Status(), seq, o.CreatedAt(),
	)
	if err != nil {
		panic(err)
	}
	return copied
}

func (s *fakeOrderStore) Add(_ context.Context, o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID().String()] = s.snapshot(o, o.Seq())
	return nil
}

func (s *fakeOrderStore) UpdateWithVersion(_ context.Context, o *order.Order, expectedSeq int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.orders[o.ID().String()]
	if !ok {
		return errs.NewObjectNotFoundError("orderId", o.ID().String())
	}
	if stored.Seq() != expectedSeq {
		return errs.NewVersionConflictError("order", o.ID().String())
	}
	s.orders[o.ID().String()] = s.snapshot(o, expectedSeq+1)
	return nil
}

func (s *fakeOrderStore) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.orders[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("orderId", id.String())
	}
	return s.snapshot(stored, stored.Seq()), nil
}

// GetStaleCreated returns the snapshots staged by the test, which lets a
// test hand the sweep a view that is already out of date.
func (s *fakeOrderStore) GetStaleCreated(_ context.Context, _ time.Time) ([]*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stale, nil
}

func (s *fakeOrderStore) status(id kernel.UUID) order.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders[id.String()].Status()
}

type recordingLedger struct {
	mu      sync.Mutex
	entries []*history.Entry
}

func (l *recordingLedger) Append(_ context.Context, entry *history.Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
	return nil
}

func (l *recordingLedger) ListByOrderID(_ context.Context, orderID kernel.UUID) ([]*history.Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []*history.Entry
	for _, entry := range l.entries {
		if entry.OrderID().IsEqual(orderID) {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (l *recordingLedger) sources() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []string
	for _, entry := range l.entries {
		out = append(out, entry.Metadata().Source)
	}
	return out
}

type nopPublisher struct{}

func (nopPublisher) Publish(string, any) {}

func createdOrder(t *testing.T, age time.Duration) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(
		kernel.NewUUID(), kernel.NewUUID(), nil,
		"Jane Doe", "1 Main St", "", "+12025550123", nil, "",
		order.Created, 0, time.Now().Add(-age),
	)
	require.NoError(t, err)
	return o
}

func newJobUnderTest(t *testing.T, store *fakeOrderStore, ledger *recordingLedger) *jobs.StaleOrderJob {
	t.Helper()

	systemActor, err := actor.NewActor(kernel.NewUUID(), actor.RoleAdmin)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := commands.NewCancelOrderCommandHandler(store, ledger, nopPublisher{}, logger)
	return jobs.NewStaleOrderJob(store, handler, systemActor, 10*time.Minute, logger)
}

func TestStaleOrderJob_CancelsStaleOrders(t *testing.T) {
	// Arrange
	store := newFakeOrderStore()
	ledger := &recordingLedger{}

	first := createdOrder(t, time.Hour)
	second := createdOrder(t, 2*time.Hour)
	require.NoError(t, store.Add(context.Background(), first))
	require.NoError(t, store.Add(context.Background(), second))
	store.stale = []*order.Order{store.snapshot(first, 0), store.snapshot(second, 0)}

	job := newJobUnderTest(t, store, ledger)

	// Act
	job.Sweep(context.Background())

	// Assert
	assert.Equal(t, order.Cancelled, store.status(first.ID()))
	assert.Equal(t, order.Cancelled, store.status(second.ID()))

	assert.Eventually(t, func() bool {
		sources := ledger.sources()
		if len(sources) != 2 {
			return false
		}
		return sources[0] == "SYSTEM_CANCEL" && sources[1] == "SYSTEM_CANCEL"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestStaleOrderJob_SkipsOrdersChangedSinceLookup(t *testing.T) {
	// Arrange
	store := newFakeOrderStore()
	ledger := &recordingLedger{}

	contested := createdOrder(t, time.Hour)
	untouched := createdOrder(t, time.Hour)
	require.NoError(t, store.Add(context.Background(), contested))
	require.NoError(t, store.Add(context.Background(), untouched))

	store.stale = []*order.Order{store.snapshot(contested, 0), store.snapshot(untouched, 0)}

	// Another writer assigns the contested order between lookup and cancel.
	require.NoError(t, contested.AssignAgent(kernel.NewUUID()))
	require.NoError(t, store.UpdateWithVersion(context.Background(), contested, 0))

	job := newJobUnderTest(t, store, ledger)

	// Act
	job.Sweep(context.Background())

	// Assert
	assert.Equal(t, order.Assigned, store.status(contested.ID()))
	assert.Equal(t, order.Cancelled, store.status(untouched.ID()))
}
