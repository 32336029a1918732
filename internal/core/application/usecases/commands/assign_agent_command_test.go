package commands_test

import (
	"testing"

	"ordertrack/internal/core/application/usecases/commands"
	"ordertrack/internal/core/domain/model/actor"
	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssignAgentCommand_Success(t *testing.T) {
	// Act
	cmd, err := commands.NewAssignAgentCommand(
		kernel.NewUUID(), kernel.NewUUID(), 3, testActor(actor.RoleAdmin), commands.Provenance{})

	// Assert
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, int64(3), cmd.ExpectedSeq())
}

func TestNewAssignAgentCommand_NegativeExpectedSeq(t *testing.T) {
	// Act
	_, err := commands.NewAssignAgentCommand(
		kernel.NewUUID(), kernel.NewUUID(), -1, testActor(actor.RoleAdmin), commands.Provenance{})

	// Assert
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
}

func TestNewAssignAgentCommand_EmptyAgentID(t *testing.T) {
	// Act
	_, err := commands.NewAssignAgentCommand(
		kernel.NewUUID(), kernel.UUID{}, 0, testActor(actor.RoleAdmin), commands.Provenance{})

	// Assert
	require.Error(t, err)
}

func TestAssignAgentCommand_Validate_ZeroValue(t *testing.T) {
	// Arrange
	var cmd commands.AssignAgentCommand // zero value, not constructed via constructor

	// Act
	err := cmd.Validate()

	// Assert
	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrAssignAgentCommandIsNotConstructed)
}
