package queries_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/parcelrepo"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/parcel"
	"fulfillment/internal/core/domain/model/pipeline"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type ParcelByIDQueryHandlerTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	handler    queries.ParcelByIDQueryHandler
	parcelRepo *parcelrepo.GormParcelRepository
}

func (suite *ParcelByIDQueryHandlerTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&parcelrepo.ParcelDTO{}, &parcelrepo.PackagingLineDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewParcelByIDQueryHandler(db)
	suite.parcelRepo = parcelrepo.NewGormParcelRepository(db, &mockAggregateTracker{})
}

func (suite *ParcelByIDQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *ParcelByIDQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE parcels CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *ParcelByIDQueryHandlerTestSuite) packagingParcel(unitCount int) *parcel.Parcel {
	price, err := kernel.NewMoneyFromString("149.90")
	suite.Require().NoError(err)

	draft := parcel.Draft{
		ClientName: "Detail Client",
		Phone:      "+62-812-555-0202",
		City:       "Bandung",
		District:   "Coblong",
		ProductRef: "thermo-mug-450",
		SKU:        "TM450-BLK",
		UnitCount:  unitCount,
		Price:      price,
	}

	p, err := parcel.RestoreParcel(
		kernel.NewUUID(), pipeline.Default, pipeline.Confirmed, draft, nil, nil,
		time.Now().UTC(), nil,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(p.BeginPackaging())
	suite.Require().NoError(suite.parcelRepo.Add(context.Background(), p))
	return p
}

func (suite *ParcelByIDQueryHandlerTestSuite) TestHandle_ParcelWithLines() {
	p := suite.packagingParcel(2)
	suite.Equal(parcel.ScanMatched, p.ScanLine("TM450-BLK"))
	suite.Require().NoError(suite.parcelRepo.Update(context.Background(), p))

	query, err := queries.NewParcelByIDQuery(p.ID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(p.ID(), result.ID)
	suite.Equal("Packaging", result.StageName)
	suite.Equal("Detail Client", result.ClientName)
	suite.Equal(2, result.UnitCount)
	suite.Require().Len(result.Lines, 2)
	suite.True(result.Lines[0].Scanned)
	suite.False(result.Lines[1].Scanned)
	suite.False(result.ReadyForDispatch)
}

func (suite *ParcelByIDQueryHandlerTestSuite) TestHandle_ReadyOnceAllLinesScanned() {
	p := suite.packagingParcel(2)
	suite.Equal(parcel.ScanMatched, p.ScanLine("TM450-BLK"))
	suite.Equal(parcel.ScanMatched, p.ScanLine("TM450-BLK"))
	suite.Require().NoError(suite.parcelRepo.Update(context.Background(), p))

	query, err := queries.NewParcelByIDQuery(p.ID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.True(result.ReadyForDispatch)
}

func (suite *ParcelByIDQueryHandlerTestSuite) TestHandle_MissingParcel() {
	query, err := queries.NewParcelByIDQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func TestParcelByIDQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ParcelByIDQueryHandlerTestSuite))
}
