package guard_test

import (
	"errors"
	"testing"

	"ordertrack/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("thing must be created via NewThing")

	t.Run("constructed guard validates", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero value returns the supplied error", func(t *testing.T) {
		var g guard.ConstructorGuard

		assert.Equal(t, errNotConstructed, g.Validate(errNotConstructed))
	})

	t.Run("zero value falls back to the default error", func(t *testing.T) {
		var g guard.ConstructorGuard

		assert.Equal(t, guard.ErrDefaultConstructorGuard, g.Validate(nil))
	})

	t.Run("copies keep the constructed state", func(t *testing.T) {
		g := guard.NewConstructorGuard()
		copied := g

		require.NoError(t, copied.Validate(errNotConstructed))
	})
}

func TestConstructorGuard_InEmbeddingStruct(t *testing.T) {
	type money struct {
		amount int
		guard  guard.ConstructorGuard
	}
	errMoneyNotConstructed := errors.New("money must be created via newMoney")
	newMoney := func(amount int) money {
		return money{amount: amount, guard: guard.NewConstructorGuard()}
	}

	constructed := newMoney(100)
	require.NoError(t, constructed.guard.Validate(errMoneyNotConstructed))

	var zero money
	assert.Equal(t, errMoneyNotConstructed, zero.guard.Validate(errMoneyNotConstructed))
}
