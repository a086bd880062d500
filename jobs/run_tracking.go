package jobs

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/adsradar/adsradar-backend/models"
	"github.com/adsradar/adsradar-backend/usecases/tracking"
	"github.com/adsradar/adsradar-backend/utils"
)

// RunTracking executes one tracking run and logs its report.
func RunTracking(ctx context.Context, uc *tracking.TrackerUsecase, hours int, mode models.RunMode) error {
	logger := utils.LoggerFromContext(ctx)
	logger.InfoContext(ctx, "Start tracking run", "mode", string(mode))

	report, err := uc.Run(ctx, hours, mode)
	if err != nil {
		return errors.Wrap(err, fmt.Sprintf("error executing %s tracking run", mode))
	}

	logger.InfoContext(ctx, "Done tracking run",
		"run_id", report.RunId.String(),
		"rows", report.RowCount,
		"new_rows", report.NewRowCount,
	)
	return nil
}
