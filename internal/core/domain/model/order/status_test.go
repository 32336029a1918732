package order_test

import (
	"testing"

	"ordertrack/internal/core/domain/model/order"
	"ordertrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allStatuses() []order.Status {
	return []order.Status{
		order.Created,
		order.Assigned,
		order.PickedUp,
		order.InTransit,
		order.Delivered,
		order.Cancelled,
	}
}

func TestStatus_Validate(t *testing.T) {
	t.Run("all named statuses are valid", func(t *testing.T) {
		for _, s := range allStatuses() {
			require.NoError(t, s.Validate(), s.String())
		}
	})

	t.Run("unknown and out of range are invalid", func(t *testing.T) {
		for _, s := range []order.Status{order.Unknown, order.Status(-1), order.Status(99)} {
			err := s.Validate()
			require.Error(t, err)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status order.Status
		want   string
	}{
		{order.Unknown, "UNKNOWN"},
		{order.Created, "CREATED"},
		{order.Assigned, "ASSIGNED"},
		{order.PickedUp, "PICKED_UP"},
		{order.InTransit, "IN_TRANSIT"},
		{order.Delivered, "DELIVERED"},
		{order.Cancelled, "CANCELLED"},
		{order.Status(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.status.String())
	}
}

func TestStatusFromString(t *testing.T) {
	t.Run("round trips every valid status", func(t *testing.T) {
		for _, s := range allStatuses() {
			parsed, err := order.StatusFromString(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("rejects unknown values", func(t *testing.T) {
		for _, v := range []string{"UNKNOWN", "created", "SHIPPED", ""} {
			_, err := order.StatusFromString(v)
			require.Error(t, err, v)
		}
	})
}

// TestStatus_CanTransitionTo_Exhaustive walks every ordered pair among the six
// statuses, including self-loops, and checks the transition table against the
// eight legal edges of the workflow.
func TestStatus_CanTransitionTo_Exhaustive(t *testing.T) {
	legal := map[order.Status][]order.Status{
		order.Created:   {order.Assigned, order.Cancelled},
		order.Assigned:  {order.PickedUp, order.Cancelled},
		order.PickedUp:  {order.InTransit, order.Cancelled},
		order.InTransit: {order.Delivered, order.Cancelled},
	}

	edges := 0
	for _, from := range allStatuses() {
		for _, to := range allStatuses() {
			want := false
			for _, next := range legal[from] {
				if next == to {
					want = true
				}
			}
			got := from.CanTransitionTo(to)
			assert.Equal(t, want, got, "%s -> %s", from, to)
			if got {
				edges++
			}
		}
	}
	assert.Equal(t, 8, edges)
}

func TestStatus_CanTransitionTo_InvalidInput(t *testing.T) {
	assert.False(t, order.Unknown.CanTransitionTo(order.Assigned))
	assert.False(t, order.Created.CanTransitionTo(order.Unknown))
	assert.False(t, order.Status(99).CanTransitionTo(order.Cancelled))
	assert.False(t, order.Created.CanTransitionTo(order.Status(99)))
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())

	for _, s := range []order.Status{order.Created, order.Assigned, order.PickedUp, order.InTransit} {
		assert.False(t, s.IsTerminal(), s.String())
	}

	// not part of the table at all
	assert.False(t, order.Unknown.IsTerminal())
}

func TestStatus_ValidateCanHaveAgent(t *testing.T) {
	tests := []struct {
		name     string
		status   order.Status
		hasAgent bool
		wantErr  bool
	}{
		{"created without driver", order.Created, false, false},
		{"created with driver", order.Created, true, true},
		{"assigned with driver", order.Assigned, true, false},
		{"assigned without driver", order.Assigned, false, true},
		{"picked up with driver", order.PickedUp, true, false},
		{"in transit without driver", order.InTransit, false, true},
		{"delivered with driver", order.Delivered, true, false},
		{"cancelled with driver", order.Cancelled, true, false},
		{"cancelled without driver", order.Cancelled, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.status.ValidateCanHaveAgent(tt.hasAgent)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
