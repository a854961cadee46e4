// Package jobs provides scheduled background tasks for the dispatch service.
//
// Jobs are built on github.com/robfig/cron/v3 with second-level schedules.
//
// # Available Jobs
//
// OfferReconciliationJob runs the reconcile-offers command. Accepting an offer
// commits the Original's assignment first and supersedes the sibling offers
// afterwards; if that second step fails, the siblings stay live until this
// sweep marks them Superseded.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(reconcileHandler, cfg.Reconciliation.Schedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Sweep failures are logged and retried on the next tick.
package jobs
