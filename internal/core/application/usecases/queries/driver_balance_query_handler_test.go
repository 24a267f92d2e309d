package queries_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/settlementrepo"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/settlement"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type DriverBalanceQueryHandlerTestSuite struct {
	suite.Suite
	container      *postgres.PostgresContainer
	db             *gorm.DB
	handler        queries.DriverBalanceQueryHandler
	settlementRepo *settlementrepo.GormSettlementRepository
}

func (suite *DriverBalanceQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&settlementrepo.RecordDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewDriverBalanceQueryHandler(db)
	suite.settlementRepo = settlementrepo.NewGormSettlementRepository(db, &mockAggregateTracker{})
}

func (suite *DriverBalanceQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *DriverBalanceQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE settlement_records CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *DriverBalanceQueryHandlerTestSuite) seedRecord(
	driverID kernel.UUID, cash string, advanceTo settlement.Status,
) *settlement.Record {
	amount, err := kernel.NewMoneyFromString(cash)
	suite.Require().NoError(err)
	commission, err := kernel.NewMoneyFromString("20")
	suite.Require().NoError(err)

	record, err := settlement.NewRecord(
		kernel.NewUUID(), kernel.NewUUID(), driverID, amount, commission, time.Now().UTC(),
	)
	suite.Require().NoError(err)

	if advanceTo >= settlement.ToSettle {
		suite.Require().NoError(record.MarkToSettle())
	}
	if advanceTo >= settlement.PendingApproval {
		suite.Require().NoError(record.RequestApproval(time.Now().UTC()))
	}
	if advanceTo >= settlement.Settled {
		suite.Require().NoError(record.Approve(time.Now().UTC()))
	}

	suite.Require().NoError(suite.settlementRepo.Add(context.Background(), record))
	return record
}

func (suite *DriverBalanceQueryHandlerTestSuite) TestHandle_OutstandingBalance() {
	driverID := kernel.NewUUID()
	suite.seedRecord(driverID, "150", settlement.InTransit)
	suite.seedRecord(driverID, "99.50", settlement.ToSettle)
	suite.seedRecord(driverID, "500", settlement.Settled)          // already settled, excluded
	suite.seedRecord(kernel.NewUUID(), "70", settlement.InTransit) // another driver

	query, err := queries.NewDriverBalanceQuery(
		driverID, []settlement.Status{settlement.InTransit, settlement.ToSettle},
	)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(driverID, result.DriverID)
	suite.Equal(2, result.RecordCount)

	wantCash, _ := kernel.NewMoneyFromString("249.50")
	wantCommission, _ := kernel.NewMoneyFromString("40")
	wantNet, _ := kernel.NewMoneyFromString("209.50")
	suite.True(result.CashTotal.IsEqual(wantCash))
	suite.True(result.CommissionTotal.IsEqual(wantCommission))
	suite.True(result.Net().IsEqual(wantNet))
}

func (suite *DriverBalanceQueryHandlerTestSuite) TestHandle_NoRecords_ZeroBalance() {
	query, err := queries.NewDriverBalanceQuery(
		kernel.NewUUID(), []settlement.Status{settlement.ToSettle},
	)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Zero(result.RecordCount)
	suite.True(result.CashTotal.IsZero())
	suite.True(result.Net().IsZero())
}

func TestDriverBalanceQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(DriverBalanceQueryHandlerTestSuite))
}
