// Package jobs provides scheduled background tasks for the order lifecycle service.
//
// Jobs use github.com/robfig/cron/v3 with second-resolution specs.
//
// # Available Jobs
//
//  1. NotificationFlushJob - drains the in-memory e-mail queue through SMTP
//
// # Usage
//
//	jobManager := jobs.NewJobManager(logger, jobs.NewNotificationFlushJob(emailNotifier, "*/5 * * * * *", logger))
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Delivery failures are logged per run and never stop the schedule.
// A job that fails to start stops every job started before it.
package jobs
