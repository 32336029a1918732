package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"ordertrack/internal/core/application/usecases/commands"
	"ordertrack/internal/core/domain/model/actor"
	"ordertrack/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// StaleOrderJob cancels orders that sat in CREATED longer than the configured
// TTL without being assigned. Runs once a minute under the service's own
// admin identity.
type StaleOrderJob struct {
	orders      ports.OrderRepository
	handler     commands.CancelOrderCommandHandler
	systemActor actor.Actor
	ttl         time.Duration
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewStaleOrderJob creates a job that sweeps unassigned orders older than ttl.
func NewStaleOrderJob(
	orders ports.OrderRepository,
	handler commands.CancelOrderCommandHandler,
	systemActor actor.Actor,
	ttl time.Duration,
	logger *slog.Logger,
) *StaleOrderJob {
	return &StaleOrderJob{
		orders:      orders,
		handler:     handler,
		systemActor: systemActor,
		ttl:         ttl,
		cron:        cron.New(cron.WithSeconds()),
		logger:      logger.With("component", "stale_order_job"),
	}
}

// Start begins the stale order sweep, running at the top of every minute.
func (j *StaleOrderJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		j.Sweep(context.Background())
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale order job started (running every minute)", "ttl", j.ttl)
	return nil
}

// Sweep cancels every order that has been waiting in CREATED longer than the
// TTL. A conflict on an individual order means a concurrent writer already
// moved it, which is not an error for the sweep.
func (j *StaleOrderJob) Sweep(ctx context.Context) {
	stale, err := j.orders.GetStaleCreated(ctx, time.Now().Add(-j.ttl))
	if err != nil {
		j.logger.ErrorContext(ctx, "Stale order lookup failed", "error", err)
		return
	}

	for _, aggregate := range stale {
		cmd, err := commands.NewSystemCancelOrderCommand(aggregate.ID(), aggregate.Seq(), j.systemActor)
		if err != nil {
			j.logger.ErrorContext(ctx, "Stale order cancellation command invalid",
				"orderId", aggregate.ID().String(), "error", err)
			continue
		}

		if _, err := j.handler.Handle(ctx, cmd); err != nil {
			var conflict *commands.ConflictError
			if errors.As(err, &conflict) {
				j.logger.DebugContext(ctx, "Stale order changed before sweep reached it",
					"orderId", aggregate.ID().String(), "seq", conflict.Seq, "status", conflict.Status.String())
				continue
			}
			j.logger.ErrorContext(ctx, "Stale order cancellation failed",
				"orderId", aggregate.ID().String(), "error", err)
			continue
		}

		j.logger.InfoContext(ctx, "Stale order cancelled",
			"orderId", aggregate.ID().String(), "age", time.Since(aggregate.CreatedAt()).Round(time.Second))
	}
}

// Stop stops the stale order job.
func (j *StaleOrderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale order job stopped")
}
