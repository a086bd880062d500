package repositories

import (
	"encoding/csv"
	"io"

	"github.com/cockroachdb/errors"

	"github.com/adsradar/adsradar-backend/models"
)

// ExportRowsCsv writes the row set verbatim as CSV, header first.
func ExportRowsCsv(w io.Writer, rows []models.TrackedRow) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(models.TrackedRowHeader()); err != nil {
		return errors.Wrap(err, "writing csv header")
	}
	for _, row := range rows {
		if err := writer.Write(row.Record()); err != nil {
			return errors.Wrap(err, "writing csv row")
		}
	}

	writer.Flush()
	return errors.Wrap(writer.Error(), "flushing csv")
}
