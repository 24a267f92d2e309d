package cmd

import (
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/pipeline"
	"fulfillment/internal/core/domain/services"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB           *gorm.DB
	uowFactory       postgres.GormUnitOfWorkFactory
	commissionPolicy services.CommissionPolicy
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) (CompositionRoot, error) {
	defaultRate, err := kernel.NewMoneyFromString(config.CommissionRateDefault)
	if err != nil {
		return CompositionRoot{}, err
	}

	regionalRate, err := kernel.NewMoneyFromString(config.CommissionRateRegional)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		commissionPolicy: services.NewCommissionPolicy(defaultRate, map[pipeline.Variant]kernel.Money{
			pipeline.Default:  defaultRate,
			pipeline.Regional: regionalRate,
		}),
	}, nil
}

func (c *CompositionRoot) CreateCreateParcelCommandHandler() commands.CreateParcelCommandHandler {
	var f commands.ParcelUoWFactory = FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateParcelCommandHandler(f)
}

func (c *CompositionRoot) CreateTransitionParcelCommandHandler() commands.TransitionParcelCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionParcelCommandHandler(f, c.commissionPolicy)
}

func (c *CompositionRoot) CreateReassignParcelCommandHandler() commands.ReassignParcelCommandHandler {
	var f commands.ParcelUoWFactory = FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReassignParcelCommandHandler(f)
}

func (c *CompositionRoot) CreateBulkPrepareCommandHandler() commands.BulkPrepareCommandHandler {
	var f commands.ParcelUoWFactory = FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
	return commands.NewBulkPrepareCommandHandler(f)
}

func (c *CompositionRoot) CreateScanLineCommandHandler() commands.ScanLineCommandHandler {
	var f commands.ParcelUoWFactory = FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
	return commands.NewScanLineCommandHandler(f)
}

func (c *CompositionRoot) CreateMarkReadyToSettleCommandHandler() commands.MarkReadyToSettleCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkReadyToSettleCommandHandler(f)
}

func (c *CompositionRoot) CreateRequestSettlementCommandHandler() commands.RequestSettlementCommandHandler {
	var f commands.SettlementUoWFactory = FuncSettlementUoWFactory(func() commands.SettlementUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRequestSettlementCommandHandler(f, services.NewSettlementCalculator())
}

func (c *CompositionRoot) CreateApproveSettlementCommandHandler() commands.ApproveSettlementCommandHandler {
	var f commands.SettlementUoWFactory = FuncSettlementUoWFactory(func() commands.SettlementUoW {
		return c.uowFactory.Create()
	})
	return commands.NewApproveSettlementCommandHandler(f)
}

func (c *CompositionRoot) CreateParcelByIDQueryHandler() queries.ParcelByIDQueryHandler {
	return queries.NewParcelByIDQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreatePackagingGroupsQueryHandler() queries.PackagingGroupsQueryHandler {
	return queries.NewPackagingGroupsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateParcelsByStageQueryHandler() queries.ParcelsByStageQueryHandler {
	return queries.NewParcelsByStageQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateDriverBalanceQueryHandler() queries.DriverBalanceQueryHandler {
	return queries.NewDriverBalanceQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateDueRemindersQueryHandler() queries.DueRemindersQueryHandler {
	return queries.NewDueRemindersQueryHandler(c.gormDB)
}

type FuncParcelUoWFactory func() commands.ParcelUoW

func (f FuncParcelUoWFactory) Create() commands.ParcelUoW {
	return f()
}

type FuncSettlementUoWFactory func() commands.SettlementUoW

func (f FuncSettlementUoWFactory) Create() commands.SettlementUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
