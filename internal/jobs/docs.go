// Package jobs provides scheduled background tasks for the fulfillment
// service, built on github.com/robfig/cron/v3 with a seconds field.
//
// # Available Jobs
//
// QrTokenPurgeJob deletes QR tokens whose expiry lies further in the past
// than the configured retention. It is storage hygiene only: token validity
// is always decided when a token is presented.
//
// # Usage
//
//	purge := jobs.NewQrTokenPurgeJob(handler, "0 0 * * * *", 24*time.Hour, logger)
//	jobManager := jobs.NewJobManager(purge)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Job runs log failures and wait for the next tick; nothing is retried in
// between.
package jobs
