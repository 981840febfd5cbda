package cmd

import (
	"log/slog"

	"kitchen/internal/adapters/out/postgres"
	"kitchen/internal/core/application/usecases/commands"
	"kitchen/internal/core/application/usecases/queries"
	"kitchen/internal/core/domain/services"
	"kitchen/internal/core/ports"
	"kitchen/internal/jobs"
	"kitchen/internal/pkg/locks"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use case handlers. The lock registries
// are shared by every handler it creates; handlers over the same store must
// never get separate registries.
type CompositionRoot struct {
	gormDB      *gorm.DB
	uowFactory  postgres.GormUnitOfWorkFactory
	publisher   ports.EventPublisher
	itemLocks   *locks.KeyedMutex
	ticketLocks *locks.KeyedRWMutex
	logger      *slog.Logger
}

func NewCompositionRoot(
	_ Config, gormDB *gorm.DB, publisher ports.EventPublisher, logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		gormDB:      gormDB,
		uowFactory:  *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:   publisher,
		itemLocks:   locks.NewKeyedMutex(),
		ticketLocks: locks.NewKeyedRWMutex(),
		logger:      logger,
	}
}

func (c *CompositionRoot) commandUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateOpenTicketCommandHandler() commands.OpenTicketCommandHandler {
	return commands.NewOpenTicketCommandHandler(c.commandUoWFactory())
}

func (c *CompositionRoot) CreateTransitionItemCommandHandler() commands.TransitionItemCommandHandler {
	return commands.NewTransitionItemCommandHandler(
		c.commandUoWFactory(), c.publisher, c.itemLocks, c.ticketLocks, c.logger)
}

func (c *CompositionRoot) CreateTransitionItemsCommandHandler(
	itemHandler *commands.TransitionItemCommandHandler,
) commands.TransitionItemsCommandHandler {
	return commands.NewTransitionItemsCommandHandler(itemHandler)
}

func (c *CompositionRoot) CreateBumpTicketCommandHandler() commands.BumpTicketCommandHandler {
	return commands.NewBumpTicketCommandHandler(
		c.commandUoWFactory(), c.publisher, c.ticketLocks, c.logger)
}

func (c *CompositionRoot) CreateGetOpenTicketsQueryHandler() queries.GetOpenTicketsQueryHandler {
	return queries.NewGetOpenTicketsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetTicketViewQueryHandler() queries.GetTicketViewQueryHandler {
	return queries.NewGetTicketViewQueryHandler(c.gormDB, services.NewTicketAggregator())
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(&c.uowFactory, c.publisher, c.logger)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
