package queries_test

import (
	"testing"

	"ordertrack/internal/core/application/usecases/queries"
	"ordertrack/internal/core/domain/model/actor"
	"ordertrack/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/require"
)

func newQueryActor(t *testing.T, role actor.Role) actor.Actor {
	t.Helper()
	act, err := actor.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return act
}

func TestNewGetOrderQuery_Success(t *testing.T) {
	// Act
	query, err := queries.NewGetOrderQuery(kernel.NewUUID(), newQueryActor(t, actor.RoleAdmin))

	// Assert
	require.NoError(t, err)
	require.NoError(t, query.Validate())
}

func TestNewGetOrderQuery_EmptyOrderID(t *testing.T) {
	// Act
	_, err := queries.NewGetOrderQuery(kernel.UUID{}, newQueryActor(t, actor.RoleAdmin))

	// Assert
	require.Error(t, err)
}

func TestGetOrderQuery_Validate_ZeroValue(t *testing.T) {
	// Arrange
	var query queries.GetOrderQuery // zero value, not constructed via constructor

	// Act
	err := query.Validate()

	// Assert
	require.ErrorIs(t, err, queries.ErrGetOrderQueryIsNotConstructed)
}
