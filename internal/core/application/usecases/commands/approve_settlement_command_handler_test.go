package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/settlement"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func pendingRecord(t *testing.T, driverID kernel.UUID) *settlement.Record {
	t.Helper()
	record := toSettleRecord(t, driverID, "150")
	require.NoError(t, record.RequestApproval(time.Now().UTC()))
	return record
}

func TestNewApproveSettlementCommand_ValidInput(t *testing.T) {
	ids := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID()}
	cmd, err := commands.NewApproveSettlementCommand(ids)
	require.NoError(t, err)
	assert.Equal(t, ids, cmd.RecordIDs())
}

func TestNewApproveSettlementCommand_EmptyBatch(t *testing.T) {
	_, err := commands.NewApproveSettlementCommand(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestApproveSettlementCommandHandler_Handle_MixedBatch(t *testing.T) {
	ctx := t.Context()
	driverID := kernel.NewUUID()

	approvable := pendingRecord(t, driverID)
	alreadySettled := pendingRecord(t, driverID)
	require.NoError(t, alreadySettled.Approve(time.Now().UTC()))
	missingID := kernel.NewUUID()

	cmd, _ := commands.NewApproveSettlementCommand(
		[]kernel.UUID{approvable.ID(), alreadySettled.ID(), missingID},
	)

	repo := new(MockSettlementRepository)
	repo.On("Get", mock.Anything, approvable.ID()).Return(approvable, nil).Once()
	repo.On("Get", mock.Anything, alreadySettled.ID()).Return(alreadySettled, nil).Once()
	repo.On("Get", mock.Anything, missingID).
		Return(nil, errs.NewObjectNotFoundError("recordID", missingID)).Once()
	repo.On("Update", mock.Anything, approvable).Return(nil).Once()

	uow := new(MockSettlementUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SettlementRepository").Return(repo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockSettlementUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewApproveSettlementCommandHandler(factory)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.Len(t, result.Approved, 1)
	assert.Equal(t, approvable.ID(), result.Approved[0])
	assert.Equal(t, settlement.Settled, approvable.Status())
	require.NotNil(t, approvable.ApprovedAt())

	require.Len(t, result.Rejected, 2)
	assert.Equal(t, alreadySettled.ID(), result.Rejected[0].RecordID)
	assert.ErrorIs(t, result.Rejected[0].Err, errs.ErrNotPending)
	assert.Equal(t, missingID, result.Rejected[1].RecordID)
	assert.ErrorIs(t, result.Rejected[1].Err, errs.ErrObjectNotFound)
	repo.AssertExpectations(t)
}

func TestApproveSettlementCommandHandler_Handle_SecondApprovalIsRejected(t *testing.T) {
	ctx := t.Context()
	record := pendingRecord(t, kernel.NewUUID())
	cmd, _ := commands.NewApproveSettlementCommand([]kernel.UUID{record.ID()})

	repo := new(MockSettlementRepository)
	repo.On("Get", mock.Anything, record.ID()).Return(record, nil).Twice()
	repo.On("Update", mock.Anything, record).Return(nil).Once()

	uow := new(MockSettlementUoW)
	uow.On("Begin", ctx).Return(nil).Twice()
	uow.On("SettlementRepository").Return(repo).Twice()
	uow.On("Commit", ctx).Return(nil).Twice()
	uow.On("Rollback", ctx).Return(nil).Twice()

	factory := new(MockSettlementUoWFactory)
	factory.On("Create").Return(uow).Twice()

	h := commands.NewApproveSettlementCommandHandler(factory)

	first, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Len(t, first.Approved, 1)

	second, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Empty(t, second.Approved)
	require.Len(t, second.Rejected, 1)
	assert.ErrorIs(t, second.Rejected[0].Err, errs.ErrNotPending)
}
