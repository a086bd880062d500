package dbmodels

import (
	"time"

	"github.com/google/uuid"

	"github.com/adsradar/adsradar-backend/models"
)

const TABLE_RUN_AUDIT = "run_audit"

type DBRunAudit struct {
	Id               uuid.UUID `db:"id"`
	Mode             string    `db:"mode"`
	WindowHours      int       `db:"window_hours"`
	AccountCount     int       `db:"account_count"`
	ActivityCount    int       `db:"activity_count"`
	RowCount         int       `db:"row_count"`
	NewRowCount      int       `db:"new_row_count"`
	SkippedObjects   int       `db:"skipped_objects"`
	CacheMisses      int       `db:"cache_misses"`
	AccountErrors    int       `db:"account_errors"`
	ChunkErrors      int       `db:"chunk_errors"`
	ResolutionErrors int       `db:"resolution_errors"`
	UnmatchedBrands  int       `db:"unmatched_brands"`
	StartedAt        time.Time `db:"started_at"`
	FinishedAt       time.Time `db:"finished_at"`
}

var InsertRunAuditColumns = []string{
	"id", "mode", "window_hours", "account_count", "activity_count",
	"row_count", "new_row_count", "skipped_objects", "cache_misses",
	"account_errors", "chunk_errors", "resolution_errors", "unmatched_brands",
	"started_at", "finished_at",
}

func InsertRunAuditValues(report models.RunReport) []any {
	return []any{
		report.RunId, string(report.Mode), report.WindowHours,
		report.AccountCount, report.ActivityCount,
		report.RowCount, report.NewRowCount,
		len(report.SkippedObjectIds), report.TotalCacheMisses(),
		report.AccountErrors, report.ChunkErrors, report.ResolutionErrors,
		report.UnmatchedBrands,
		report.StartedAt, report.FinishedAt,
	}
}
