package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/item"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBulkTransitionCommand_ValidInput(t *testing.T) {
	refs := []commands.BulkItemRef{
		{OrderID: kernel.NewUUID(), ItemID: kernel.NewUUID()},
		{OrderID: kernel.NewUUID(), ItemID: kernel.NewUUID()},
	}

	cmd, err := commands.NewBulkTransitionCommand(refs, item.StatusInTransit, item.SystemActor(), "batch dispatch")
	require.NoError(t, err)
	assert.Equal(t, refs, cmd.Refs())
	assert.Equal(t, item.StatusInTransit, cmd.Target())
}

func TestNewBulkTransitionCommand_EmptyBatch(t *testing.T) {
	_, err := commands.NewBulkTransitionCommand(nil, item.StatusInTransit, item.SystemActor(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewBulkTransitionCommand_InvalidRef(t *testing.T) {
	refs := []commands.BulkItemRef{{OrderID: kernel.NewUUID(), ItemID: kernel.UUID{}}}
	_, err := commands.NewBulkTransitionCommand(refs, item.StatusInTransit, item.SystemActor(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}
