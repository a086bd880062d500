package jobs

import (
	"context"

	"github.com/adhocore/gronx/pkg/tasker"

	"github.com/adsradar/adsradar-backend/models"
	"github.com/adsradar/adsradar-backend/usecases/tracking"
	"github.com/adsradar/adsradar-backend/utils"
)

func errToReturnCode(err error) int {
	if err != nil {
		return 1
	}
	return 0
}

type SchedulerConfig struct {
	// CronExpr is the incremental run schedule.
	CronExpr string
	// Timezone interprets CronExpr. Defaults to UTC.
	Timezone string
	// WindowHours is the requested lookback; the incremental planner may
	// widen it from the store watermark.
	WindowHours int
}

// RunScheduler blocks and runs incremental tracking runs on the configured
// cron schedule. Runs are not concurrent: a run still in flight makes the
// next tick wait.
func RunScheduler(ctx context.Context, uc *tracking.TrackerUsecase, config SchedulerConfig) {
	if config.Timezone == "" {
		config.Timezone = "UTC"
	}

	taskr := tasker.New(tasker.Option{
		Verbose: true,
		Tz:      config.Timezone,
	}).WithContext(ctx)

	notConcurrent := false
	taskr.Task(config.CronExpr, func(ctx context.Context) (int, error) {
		logger := utils.LoggerFromContext(ctx).With("job", "run_tracking")
		ctx = utils.StoreLoggerInContext(ctx, logger)
		err := RunTracking(ctx, uc, config.WindowHours, models.RunModeAppend)
		return errToReturnCode(err), err
	}, notConcurrent)

	taskr.Run()
}
