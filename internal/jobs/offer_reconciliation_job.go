package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultReconciliationSchedule runs the sweep once a minute.
const DefaultReconciliationSchedule = "0 * * * * *"

// OfferReconciler is satisfied by commands.ReconcileOffersCommandHandler.
type OfferReconciler interface {
	Handle(ctx context.Context, cmd commands.ReconcileOffersCommand) (int64, error)
}

// OfferReconciliationJob supersedes live offers whose Original was assigned
// elsewhere but whose sibling sweep never ran (for example the process died
// between committing an accept and superseding the rest).
type OfferReconciliationJob struct {
	handler  OfferReconciler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOfferReconciliationJob uses a six-field (seconds first) cron schedule.
// An empty schedule falls back to DefaultReconciliationSchedule.
func NewOfferReconciliationJob(handler OfferReconciler, schedule string, logger *slog.Logger) *OfferReconciliationJob {
	if schedule == "" {
		schedule = DefaultReconciliationSchedule
	}
	return &OfferReconciliationJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "offer_reconciliation_job"),
	}
}

func (j *OfferReconciliationJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.RunOnce(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("offer reconciliation job started", "schedule", j.schedule)
	return nil
}

// RunOnce performs a single sweep and reports how many offers it superseded.
func (j *OfferReconciliationJob) RunOnce(ctx context.Context) int64 {
	n, err := j.handler.Handle(ctx, commands.NewReconcileOffersCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "offer reconciliation failed", "error", err)
		return 0
	}
	if n > 0 {
		j.logger.InfoContext(ctx, "superseded stale offers", "count", n)
	}
	return n
}

// Stop waits for a running sweep to finish.
func (j *OfferReconciliationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("offer reconciliation job stopped")
}
