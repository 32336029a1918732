package cmd

import (
	"fmt"
	"log/slog"

	httpadapter "ordertrack/internal/adapters/in/http"
	"ordertrack/internal/adapters/out/jwtauth"
	"ordertrack/internal/adapters/out/postgres/historyrepo"
	"ordertrack/internal/adapters/out/postgres/orderrepo"
	"ordertrack/internal/core/application/usecases/commands"
	"ordertrack/internal/core/application/usecases/queries"
	"ordertrack/internal/core/domain/model/actor"
	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/ports"
	"ordertrack/internal/jobs"
	"ordertrack/internal/pkg/bus"

	"gorm.io/gorm"
)

// CompositionRoot wires repositories, the event bus, and handlers together.
// The bus it creates is owned by the root: call Close on shutdown to detach
// any remaining stream subscribers.
type CompositionRoot struct {
	config      Config
	gormDB      *gorm.DB
	eventBus    *bus.Bus
	orders      ports.OrderRepository
	ledger      ports.HistoryRepository
	logger      *slog.Logger
	systemActor actor.Actor
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	// The maintenance sweep acts under a per-process admin identity so its
	// cancellations are attributed in the history ledger.
	systemActor, err := actor.NewActor(kernel.NewUUID(), actor.RoleAdmin)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("create system actor: %w", err)
	}

	return CompositionRoot{
		config:      config,
		gormDB:      gormDB,
		eventBus:    bus.New(),
		orders:      orderrepo.NewGormOrderRepository(gormDB),
		ledger:      historyrepo.NewGormHistoryRepository(gormDB),
		logger:      logger,
		systemActor: systemActor,
	}, nil
}

// Close releases resources owned by the root. Safe to call once after the
// HTTP server and jobs have stopped.
func (c *CompositionRoot) Close() {
	c.eventBus.Close()
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orders, c.ledger, c.eventBus, c.logger)
}

func (c *CompositionRoot) CreateAssignAgentCommandHandler() commands.AssignAgentCommandHandler {
	return commands.NewAssignAgentCommandHandler(c.orders, c.ledger, c.eventBus, c.logger)
}

func (c *CompositionRoot) CreateUnassignAgentCommandHandler() commands.UnassignAgentCommandHandler {
	return commands.NewUnassignAgentCommandHandler(c.orders, c.ledger, c.eventBus, c.logger)
}

func (c *CompositionRoot) CreateAdvanceStatusCommandHandler() commands.AdvanceStatusCommandHandler {
	return commands.NewAdvanceStatusCommandHandler(c.orders, c.ledger, c.eventBus, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orders, c.ledger, c.eventBus, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetHistoryQueryHandler() queries.GetHistoryQueryHandler {
	return queries.NewGetHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateTokenVerifier() (ports.CredentialVerifier, error) {
	return jwtauth.NewVerifier(c.config.JWTSecret)
}

func (c *CompositionRoot) CreateStreamGateway() *httpadapter.StreamGateway {
	return httpadapter.NewStreamGateway(c.eventBus, c.config.StreamHeartbeat, c.logger)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateAssignAgentCommandHandler(),
		c.CreateUnassignAgentCommandHandler(),
		c.CreateAdvanceStatusCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateListOrdersQueryHandler(),
		c.CreateGetHistoryQueryHandler(),
		c.CreateStreamGateway(),
	)
}

func (c *CompositionRoot) CreateStaleOrderJob() *jobs.StaleOrderJob {
	return jobs.NewStaleOrderJob(
		c.orders,
		c.CreateCancelOrderCommandHandler(),
		c.systemActor,
		c.config.StaleOrderTTL,
		c.logger,
	)
}
