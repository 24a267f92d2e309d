package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReassignParcelCommand_ValidInput(t *testing.T) {
	parcelID := kernel.NewUUID()
	employeeID := kernel.NewUUID()

	cmd, err := commands.NewReassignParcelCommand(parcelID, employeeID)
	require.NoError(t, err)
	assert.Equal(t, parcelID, cmd.ParcelID())
	assert.Equal(t, employeeID, cmd.EmployeeID())
}

func TestNewReassignParcelCommand_InvalidIDs(t *testing.T) {
	_, err := commands.NewReassignParcelCommand(kernel.UUID{}, kernel.NewUUID())
	require.Error(t, err)

	_, err = commands.NewReassignParcelCommand(kernel.NewUUID(), kernel.UUID{})
	require.Error(t, err)
}
