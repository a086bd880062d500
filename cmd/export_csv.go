package cmd

import (
	"context"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/adsradar/adsradar-backend/repositories"
	"github.com/adsradar/adsradar-backend/utils"
)

// RunCsvExport dumps the persisted rows as CSV to path, or to stdout when
// path is "-".
func RunCsvExport(path string) error {
	ctx, _, pool, _, err := setupTracker(context.Background())
	if err != nil {
		return err
	}
	defer pool.Close()

	rows, err := repositories.NewActivityRowRepository(pool).ListAllRows(ctx)
	if err != nil {
		return errors.Wrap(err, "reading persisted rows")
	}

	out := os.Stdout
	if path != "-" {
		out, err = os.Create(path)
		if err != nil {
			return errors.Wrap(err, "creating export file")
		}
		defer out.Close()
	}
	if err := repositories.ExportRowsCsv(out, rows); err != nil {
		return errors.Wrap(err, "writing csv export")
	}

	utils.LoggerFromContext(ctx).InfoContext(ctx, "exported rows", "rows", len(rows), "path", path)
	return nil
}
