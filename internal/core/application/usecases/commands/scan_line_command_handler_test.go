package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/parcel"
	"fulfillment/internal/core/domain/model/pipeline"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func packagingParcel(t *testing.T) *parcel.Parcel {
	t.Helper()
	p := restoredParcel(t, pipeline.Confirmed, nil)
	require.NoError(t, p.BeginPackaging())
	return p
}

func TestScanLineCommandHandler_Handle_MatchedScanIsPersisted(t *testing.T) {
	ctx := t.Context()
	p := packagingParcel(t)
	cmd, _ := commands.NewScanLineCommand(p.ID(), p.SKU())

	repo := new(MockParcelRepository)
	uow := new(MockParcelUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, p.ID()).Return(p, nil).Once(),
		repo.On("Update", mock.Anything, p).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewScanLineCommandHandler(factory)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, parcel.ScanMatched, result.Result)
	assert.False(t, result.ReadyForDispatch) // one of two units still unscanned
	uow.AssertExpectations(t)
}

func TestScanLineCommandHandler_Handle_LastScanReportsReady(t *testing.T) {
	ctx := t.Context()
	p := packagingParcel(t)
	require.Equal(t, parcel.ScanMatched, p.ScanLine(p.SKU()))
	cmd, _ := commands.NewScanLineCommand(p.ID(), p.SKU())

	repo := new(MockParcelRepository)
	uow := new(MockParcelUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ParcelRepository").Return(repo).Once()
	repo.On("Get", mock.Anything, p.ID()).Return(p, nil).Once()
	repo.On("Update", mock.Anything, p).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewScanLineCommandHandler(factory)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, parcel.ScanMatched, result.Result)
	assert.True(t, result.ReadyForDispatch)
}

func TestScanLineCommandHandler_Handle_MismatchIsNotPersisted(t *testing.T) {
	ctx := t.Context()
	p := packagingParcel(t)
	cmd, _ := commands.NewScanLineCommand(p.ID(), "WRONG-SKU")

	repo := new(MockParcelRepository)
	uow := new(MockParcelUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ParcelRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, p.ID()).Return(p, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockParcelUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewScanLineCommandHandler(factory)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, parcel.ScanMismatch, result.Result)
	assert.False(t, result.ReadyForDispatch)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
