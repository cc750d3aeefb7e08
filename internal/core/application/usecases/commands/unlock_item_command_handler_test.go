package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/item"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUnlockItemCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate, itemID := testLockedOrder(t, item.StatusDelivered, "customer confirmed by phone")
	cmd, _ := commands.NewUnlockItemCommand(aggregate.ID(), itemID, item.SystemActor())

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUnlockItemCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	unlocked, err := aggregate.Item(itemID)
	require.NoError(t, err)
	assert.False(t, unlocked.IsLocked())
	assert.Equal(t, item.StatusDelivered, unlocked.Status(), "unlock keeps the pinned status")
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}
