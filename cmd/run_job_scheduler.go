package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/adsradar/adsradar-backend/jobs"
)

// RunJobScheduler blocks and runs incremental tracking on the configured
// cron schedule until interrupted.
func RunJobScheduler() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx, uc, pool, config, err := setupTracker(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	jobs.RunScheduler(ctx, uc, jobs.SchedulerConfig{
		CronExpr:    config.cronExpr,
		Timezone:    config.timezone,
		WindowHours: config.windowHours,
	})
	return nil
}
