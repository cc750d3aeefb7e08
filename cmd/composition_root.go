package cmd

import (
	"fmt"
	"strconv"
	"time"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	policy     services.MinimumOrderPolicy
	scorer     services.UrgencyScorer
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB) (CompositionRoot, error) {
	policy, scorer, err := buildDomainServices(configs)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		policy:     policy,
		scorer:     scorer,
	}, nil
}

func buildDomainServices(configs Config) (services.MinimumOrderPolicy, services.UrgencyScorer, error) {
	minAmount, err := decimal.NewFromString(configs.MinOrderAmount)
	if err != nil {
		return services.MinimumOrderPolicy{}, services.UrgencyScorer{},
			fmt.Errorf("invalid MIN_ORDER_AMOUNT %q: %w", configs.MinOrderAmount, err)
	}

	minItems, err := strconv.Atoi(configs.MinOrderItems)
	if err != nil {
		return services.MinimumOrderPolicy{}, services.UrgencyScorer{},
			fmt.Errorf("invalid MIN_ORDER_ITEMS %q: %w", configs.MinOrderItems, err)
	}

	stalenessDays, err := strconv.Atoi(configs.StalenessDays)
	if err != nil {
		return services.MinimumOrderPolicy{}, services.UrgencyScorer{},
			fmt.Errorf("invalid STALENESS_DAYS %q: %w", configs.StalenessDays, err)
	}

	policy, err := services.NewMinimumOrderPolicy(minAmount, minItems)
	if err != nil {
		return services.MinimumOrderPolicy{}, services.UrgencyScorer{}, err
	}

	scorer, err := services.NewUrgencyScorer(time.Duration(stalenessDays)*24*time.Hour, minItems)
	if err != nil {
		return services.MinimumOrderPolicy{}, services.UrgencyScorer{}, err
	}

	return policy, scorer, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

// readOnlyOrderRepository restores aggregates outside a unit of work for the
// query side.
func (c *CompositionRoot) readOnlyOrderRepository() *orderrepo.GormOrderRepository {
	return orderrepo.NewGormOrderRepository(c.gormDB, orderrepo.NopTracker{})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateTransitionItemCommandHandler() commands.TransitionItemCommandHandler {
	return commands.NewTransitionItemCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateLockItemCommandHandler() commands.LockItemCommandHandler {
	return commands.NewLockItemCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateUnlockItemCommandHandler() commands.UnlockItemCommandHandler {
	return commands.NewUnlockItemCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateForceSetItemCommandHandler() commands.ForceSetItemCommandHandler {
	return commands.NewForceSetItemCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCancelItemCommandHandler() commands.CancelItemCommandHandler {
	return commands.NewCancelItemCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateBulkTransitionCommandHandler() commands.BulkTransitionCommandHandler {
	return commands.NewBulkTransitionCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateEscalateStaleOrdersCommandHandler() commands.EscalateStaleOrdersCommandHandler {
	return commands.NewEscalateStaleOrdersCommandHandler(c.orderUoWFactory(), c.scorer)
}

func (c *CompositionRoot) CreateGetOrderSummaryQueryHandler() queries.GetOrderSummaryQueryHandler {
	return queries.NewGetOrderSummaryQueryHandler(c.readOnlyOrderRepository(), c.policy, c.scorer)
}

func (c *CompositionRoot) CreateGetAttentionOrdersQueryHandler() queries.GetAttentionOrdersQueryHandler {
	return queries.NewGetAttentionOrdersQueryHandler(c.readOnlyOrderRepository(), c.scorer)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
