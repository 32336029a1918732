package commands_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"ordertrack/internal/core/domain/model/actor"
	"ordertrack/internal/core/domain/model/history"
	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateWithVersion(ctx context.Context, o *order.Order, expectedSeq int64) error {
	args := m.Called(ctx, o, expectedSeq)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetStaleCreated(ctx context.Context, before time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

// MockHistoryRepository records appended entries and signals appended after
// each call, so tests can wait out the detached side-effect goroutine.
type MockHistoryRepository struct {
	mock.Mock
	appended chan *history.Entry
}

func NewMockHistoryRepository() *MockHistoryRepository {
	return &MockHistoryRepository{appended: make(chan *history.Entry, 8)}
}

func (m *MockHistoryRepository) Append(ctx context.Context, entry *history.Entry) error {
	args := m.Called(ctx, entry)
	m.appended <- entry
	return args.Error(0)
}

func (m *MockHistoryRepository) ListByOrderID(ctx context.Context, orderID kernel.UUID) ([]*history.Entry, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*history.Entry), args.Error(1)
}

// WaitForEntry blocks until the detached ledger append lands or the timeout
// elapses.
func (m *MockHistoryRepository) WaitForEntry() *history.Entry {
	select {
	case entry := <-m.appended:
		return entry
	case <-time.After(2 * time.Second):
		return nil
	}
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(topic string, payload any) {
	m.Called(topic, payload)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testActor(role actor.Role) actor.Actor {
	act, err := actor.NewActor(kernel.NewUUID(), role)
	if err != nil {
		panic(err)
	}
	return act
}

func restoredOrder(originatorID kernel.UUID, agentID *kernel.UUID, status order.Status, seq int64) *order.Order {
	o, err := order.RestoreOrder(
		kernel.NewUUID(),
		originatorID,
		agentID,
		"Jane Doe",
		"1 Main St",
		"7 Depot Rd",
		"+12025550123",
		nil,
		"",
		status,
		seq,
		time.Now().UTC(),
	)
	if err != nil {
		panic(err)
	}
	return o
}
