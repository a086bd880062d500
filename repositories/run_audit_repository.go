package repositories

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adsradar/adsradar-backend/models"
	"github.com/adsradar/adsradar-backend/repositories/dbmodels"
)

const runAuditSchema = `
create table if not exists run_audit (
	id uuid primary key,
	mode text not null,
	window_hours int not null,
	account_count int not null default 0,
	activity_count int not null default 0,
	row_count int not null default 0,
	new_row_count int not null default 0,
	skipped_objects int not null default 0,
	cache_misses int not null default 0,
	account_errors int not null default 0,
	chunk_errors int not null default 0,
	resolution_errors int not null default 0,
	unmatched_brands int not null default 0,
	started_at timestamptz not null,
	finished_at timestamptz not null
);
`

// RunAuditRepository appends one summary row per run, the only durable
// trace of a run besides the row store itself.
type RunAuditRepository struct {
	pool *pgxpool.Pool
}

func NewRunAuditRepository(pool *pgxpool.Pool) *RunAuditRepository {
	return &RunAuditRepository{pool: pool}
}

func (repo *RunAuditRepository) EnsureSchema(ctx context.Context) error {
	_, err := repo.pool.Exec(ctx, runAuditSchema)
	return errors.Wrap(err, "creating run_audit schema")
}

func (repo *RunAuditRepository) InsertRunReport(ctx context.Context, report models.RunReport) error {
	builder := NewQueryBuilder().
		Insert(dbmodels.TABLE_RUN_AUDIT).
		Columns(dbmodels.InsertRunAuditColumns...).
		Values(dbmodels.InsertRunAuditValues(report)...)

	return ExecBuilder(ctx, repo.pool, builder)
}
