package cmd

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/adsradar/adsradar-backend/jobs"
	"github.com/adsradar/adsradar-backend/models"
)

// RunTrackingOnce executes a single tracking run and exits. mode is
// "replace" or "append"; hours overrides the configured window when
// positive.
func RunTrackingOnce(mode string, hours int) error {
	runMode := models.RunMode(mode)
	if runMode != models.RunModeReplace && runMode != models.RunModeAppend {
		return errors.Wrap(models.BadParameterError,
			"mode must be \"replace\" or \"append\"")
	}

	ctx, uc, pool, config, err := setupTracker(context.Background())
	if err != nil {
		return err
	}
	defer pool.Close()

	if hours <= 0 {
		hours = config.windowHours
	}
	return jobs.RunTracking(ctx, uc, hours, runMode)
}
