package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	DefaultFlushSpec = "*/5 * * * * *"
	flushTimeout     = 30 * time.Second
)

// Flusher drains queued notifications.
type Flusher interface {
	Flush(ctx context.Context) (int, error)
	Pending() int
}

// NotificationFlushJob periodically sends queued customer e-mails.
type NotificationFlushJob struct {
	flusher Flusher
	spec    string
	cron    *cron.Cron
	logger  *slog.Logger
}

func NewNotificationFlushJob(flusher Flusher, spec string, logger *slog.Logger) *NotificationFlushJob {
	if spec == "" {
		spec = DefaultFlushSpec
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &NotificationFlushJob{
		flusher: flusher,
		spec:    spec,
		cron:    cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:  logger.With("component", "notification_flush_job"),
	}
}

func (j *NotificationFlushJob) Name() string {
	return "notification flush"
}

func (j *NotificationFlushJob) Start() error {
	if _, err := j.cron.AddFunc(j.spec, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification flush job started", "schedule", j.spec)
	return nil
}

// Run performs one flush. Exposed for the scheduler and for shutdown draining.
func (j *NotificationFlushJob) Run() {
	if j.flusher.Pending() == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	sent, err := j.flusher.Flush(ctx)
	if err != nil {
		j.logger.WarnContext(ctx, "Notification flush finished with failures", "sent", sent, "error", err)
		return
	}
	j.logger.DebugContext(ctx, "Notification flush finished", "sent", sent)
}

// Stop waits for a running flush, then sends what is still queued.
func (j *NotificationFlushJob) Stop() {
	<-j.cron.Stop().Done()
	j.Run()
	j.logger.InfoContext(context.Background(), "Notification flush job stopped")
}
