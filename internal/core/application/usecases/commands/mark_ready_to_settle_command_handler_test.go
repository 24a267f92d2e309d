package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/parcel"
	"fulfillment/internal/core/domain/model/pipeline"
	"fulfillment/internal/core/domain/model/settlement"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func inTransitRecord(t *testing.T, p *parcel.Parcel, driverID kernel.UUID) *settlement.Record {
	t.Helper()
	record, err := settlement.NewRecord(
		kernel.NewUUID(), p.ID(), driverID, p.Price(),
		testCommissionPolicy().RateFor(p.Variant()), time.Now().UTC(),
	)
	require.NoError(t, err)
	return record
}

func TestMarkReadyToSettleCommandHandler_Handle_AdvancesDeliveredOnly(t *testing.T) {
	ctx := t.Context()
	driverID := kernel.NewUUID()

	delivered := restoredParcel(t, pipeline.Delivered, &driverID)
	onTheRoad := restoredParcel(t, pipeline.Dispatched, &driverID)
	deliveredRecord := inTransitRecord(t, delivered, driverID)
	roadRecord := inTransitRecord(t, onTheRoad, driverID)

	cmd, _ := commands.NewMarkReadyToSettleCommand(driverID)

	parcelRepo := new(MockParcelRepository)
	parcelRepo.On("Get", mock.Anything, delivered.ID()).Return(delivered, nil).Once()
	parcelRepo.On("Get", mock.Anything, onTheRoad.ID()).Return(onTheRoad, nil).Once()

	settlementRepo := new(MockSettlementRepository)
	settlementRepo.On("GetAllByDriverInStatus", mock.Anything, driverID, settlement.InTransit).
		Return([]*settlement.Record{deliveredRecord, roadRecord}, nil).Once()
	settlementRepo.On("Update", mock.Anything, deliveredRecord).Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SettlementRepository").Return(settlementRepo).Once()
	uow.On("ParcelRepository").Return(parcelRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewMarkReadyToSettleCommandHandler(factory)
	advanced, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 1, advanced)
	assert.Equal(t, settlement.ToSettle, deliveredRecord.Status())
	assert.Equal(t, settlement.InTransit, roadRecord.Status())
	settlementRepo.AssertNotCalled(t, "Update", mock.Anything, roadRecord)
}

func TestMarkReadyToSettleCommandHandler_Handle_NothingInTransit(t *testing.T) {
	ctx := t.Context()
	driverID := kernel.NewUUID()
	cmd, _ := commands.NewMarkReadyToSettleCommand(driverID)

	settlementRepo := new(MockSettlementRepository)
	settlementRepo.On("GetAllByDriverInStatus", mock.Anything, driverID, settlement.InTransit).
		Return([]*settlement.Record{}, nil).Once()

	parcelRepo := new(MockParcelRepository)

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SettlementRepository").Return(settlementRepo).Once()
	uow.On("ParcelRepository").Return(parcelRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewMarkReadyToSettleCommandHandler(factory)
	advanced, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Zero(t, advanced)
}
