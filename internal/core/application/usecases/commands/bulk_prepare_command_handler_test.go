package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/parcel"
	"fulfillment/internal/core/domain/model/pipeline"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBulkPrepareCommandHandler_Handle_PreparesAllConfirmed(t *testing.T) {
	ctx := t.Context()
	first := restoredParcel(t, pipeline.Confirmed, nil)
	second := restoredParcel(t, pipeline.Confirmed, nil)
	cmd, _ := commands.NewBulkPrepareCommand(pipeline.Default, first.ProductRef())

	repo := new(MockParcelRepository)
	repo.On("GetAllInStageByProduct", mock.Anything, pipeline.Default, pipeline.Confirmed, first.ProductRef()).
		Return([]*parcel.Parcel{first, second}, nil).Once()
	repo.On("Get", mock.Anything, first.ID()).Return(first, nil).Once()
	repo.On("Get", mock.Anything, second.ID()).Return(second, nil).Once()
	repo.On("Update", mock.Anything, first).Return(nil).Once()
	repo.On("Update", mock.Anything, second).Return(nil).Once()

	uow := new(MockParcelUoW)
	uow.On("Begin", ctx).Return(nil).Times(2)
	uow.On("ParcelRepository").Return(repo)
	uow.On("Commit", ctx).Return(nil).Times(2)
	uow.On("Rollback", ctx).Return(nil).Times(2)

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewBulkPrepareCommandHandler(factory)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Prepared)
	require.Len(t, result.Results, 2)
	for _, item := range result.Results {
		assert.NoError(t, item.Err)
	}
	assert.Equal(t, pipeline.Packaging, first.Stage())
	assert.Len(t, first.PackagingLines(), first.UnitCount())
	repo.AssertExpectations(t)
}

func TestBulkPrepareCommandHandler_Handle_OneFailureDoesNotBlockOthers(t *testing.T) {
	ctx := t.Context()
	healthy := restoredParcel(t, pipeline.Confirmed, nil)
	// listed as a candidate but already moved on by the time it is re-read
	stale := restoredParcel(t, pipeline.Packaging, nil)
	cmd, _ := commands.NewBulkPrepareCommand(pipeline.Default, healthy.ProductRef())

	repo := new(MockParcelRepository)
	repo.On("GetAllInStageByProduct", mock.Anything, pipeline.Default, pipeline.Confirmed, healthy.ProductRef()).
		Return([]*parcel.Parcel{stale, healthy}, nil).Once()
	repo.On("Get", mock.Anything, stale.ID()).Return(stale, nil).Once()
	repo.On("Get", mock.Anything, healthy.ID()).Return(healthy, nil).Once()
	repo.On("Update", mock.Anything, healthy).Return(nil).Once()

	uow := new(MockParcelUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("ParcelRepository").Return(repo)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewBulkPrepareCommandHandler(factory)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Prepared)
	require.Len(t, result.Results, 2)
	assert.ErrorIs(t, result.Results[0].Err, errs.ErrIllegalTransition)
	assert.NoError(t, result.Results[1].Err)
	repo.AssertNotCalled(t, "Update", mock.Anything, stale)
}

func TestBulkPrepareCommandHandler_Handle_NoCandidates(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewBulkPrepareCommand(pipeline.Default, "thermo-mug-450")

	repo := new(MockParcelRepository)
	repo.On("GetAllInStageByProduct", mock.Anything, pipeline.Default, pipeline.Confirmed, "thermo-mug-450").
		Return([]*parcel.Parcel{}, nil).Once()

	uow := new(MockParcelUoW)
	uow.On("ParcelRepository").Return(repo)

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewBulkPrepareCommandHandler(factory)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Zero(t, result.Prepared)
	assert.Empty(t, result.Results)
	uow.AssertNotCalled(t, "Begin", mock.Anything)
}
