package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/pipeline"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBulkPrepareCommand_ValidInput(t *testing.T) {
	cmd, err := commands.NewBulkPrepareCommand(pipeline.Regional, "thermo-mug-450")
	require.NoError(t, err)
	assert.Equal(t, pipeline.Regional, cmd.Variant())
	assert.Equal(t, "thermo-mug-450", cmd.ProductRef())
}

func TestNewBulkPrepareCommand_EmptyProduct(t *testing.T) {
	_, err := commands.NewBulkPrepareCommand(pipeline.Default, "  ")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewBulkPrepareCommand_UnknownVariant(t *testing.T) {
	_, err := commands.NewBulkPrepareCommand(pipeline.UnknownVariant, "thermo-mug-450")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrUnknownPipeline)
}
