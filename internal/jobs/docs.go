// Package jobs runs the scheduled background work of the storefront.
//
// Jobs use github.com/robfig/cron/v3 with second precision. There is one job today:
//
//   - ReconciliationJob drains the refund reconciliation outbox, by default every second.
//
// JobManager starts and stops them together:
//
//	jobManager, err := jobs.NewJobManager(reconcileHandler, metrics, jobs.Config{}, logger)
//	if err != nil {
//		log.Fatal("Invalid job config:", err)
//	}
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// A batch that is still running when the next tick fires is not started twice; the
// tick is skipped. Task failures are logged one by one and counted, never retried
// inside the same batch.
package jobs
