// Package jobs provides scheduled background tasks for the kitchen service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. ReadyTicketReminderJob - Periodically scans unbumped tickets and publishes
// a TicketReady reminder for every ticket whose items are all resolved, so the
// expo station notices tickets waiting to be bumped.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(uowFactory, publisher, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The reminder job logs infrastructure errors and skips tickets it cannot
// read; a reminder is advisory and the next scan retries.
package jobs
