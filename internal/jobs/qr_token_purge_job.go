package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultQrTokenPurgeSchedule runs at the top of every hour.
const DefaultQrTokenPurgeSchedule = "0 0 * * * *"

type purgeQrTokensHandler interface {
	Handle(ctx context.Context, command commands.PurgeExpiredQrTokensCommand) (int64, error)
}

// QrTokenPurgeJob deletes QR tokens that expired more than the retention
// period ago.
type QrTokenPurgeJob struct {
	handler   purgeQrTokensHandler
	schedule  string
	retention time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewQrTokenPurgeJob(
	handler purgeQrTokensHandler,
	schedule string,
	retention time.Duration,
	logger *slog.Logger,
) *QrTokenPurgeJob {
	if schedule == "" {
		schedule = DefaultQrTokenPurgeSchedule
	}
	return &QrTokenPurgeJob{
		handler:   handler,
		schedule:  schedule,
		retention: retention,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "qr_token_purge_job"),
	}
}

// Start schedules the purge. An invalid cron expression is returned as is.
func (j *QrTokenPurgeJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "QR token purge job started",
		"schedule", j.schedule, "retention", j.retention.String())
	return nil
}

// Run performs one purge.
func (j *QrTokenPurgeJob) Run() {
	ctx := context.Background()
	cmd, err := commands.NewPurgeExpiredQrTokensCommand(j.retention)
	if err != nil {
		j.logger.ErrorContext(ctx, "QR token purge job misconfigured", "error", err)
		return
	}

	purged, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "QR token purge job failed", "error", err)
		return
	}
	if purged > 0 {
		j.logger.InfoContext(ctx, "Expired QR tokens purged", "count", purged)
	}
}

// Stop waits for a running purge to finish.
func (j *QrTokenPurgeJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "QR token purge job stopped")
}
