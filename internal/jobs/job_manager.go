package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates the scheduled jobs of the service.
type JobManager struct {
	reconciliationJob *OfferReconciliationJob
}

func NewJobManager(reconciler OfferReconciler, reconciliationSchedule string, logger *slog.Logger) *JobManager {
	return &JobManager{
		reconciliationJob: NewOfferReconciliationJob(reconciler, reconciliationSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.reconciliationJob.Start(); err != nil {
		return fmt.Errorf("failed to start offer reconciliation job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.reconciliationJob.Stop()
}
