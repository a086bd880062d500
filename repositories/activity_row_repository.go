package repositories

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adsradar/adsradar-backend/models"
	"github.com/adsradar/adsradar-backend/repositories/dbmodels"
)

// Rows inserted per statement when rewriting the store.
const insertRowChunkSize = 200

const trackedActivitiesSchema = `
create table if not exists tracked_activities (
	id uuid primary key default gen_random_uuid(),
	brand text not null,
	matched_brand text not null default '',
	fb_manager text not null default '',
	brand_manager text not null default '',
	team text not null default '',
	actor text not null default '',
	action text not null default '',
	hierarchy_level text not null default '',
	timestamp_raw text not null default '',
	event_time timestamptz,
	campaign_name text not null default '',
	campaign_status text not null default '',
	campaign_objective text not null default '',
	campaign_budget_type text not null default '',
	campaign_budget text not null default '',
	campaign_bid_strategy text not null default '',
	ad_set_name text not null default '',
	ad_set_status text not null default '',
	ad_set_optimization_goal text not null default '',
	ad_set_billing_event text not null default '',
	age_targeting text not null default '',
	gender_targeting text not null default '',
	location_targeting text not null default '',
	ad_name text not null default '',
	ad_status text not null default '',
	ad_preview_link text not null default '',
	changed_from text not null default '',
	changed_to text not null default '',
	account_id text not null default '',
	account_name text not null default '',
	object_name text not null default '',
	object_id text not null default '',
	object_type_raw text not null default '',
	raw_event_type text not null default '',
	fetched_at timestamptz not null default now()
);
create index if not exists idx_tracked_activities_event_time
	on tracked_activities (event_time desc);
`

// ActivityRowRepository is the persisted row store. Rows are only ever
// added, never individually mutated: a run either appends the deduplicated
// union or replaces the whole set.
type ActivityRowRepository struct {
	pool *pgxpool.Pool
}

func NewActivityRowRepository(pool *pgxpool.Pool) *ActivityRowRepository {
	return &ActivityRowRepository{pool: pool}
}

func (repo *ActivityRowRepository) EnsureSchema(ctx context.Context) error {
	_, err := repo.pool.Exec(ctx, trackedActivitiesSchema)
	return errors.Wrap(err, "creating tracked_activities schema")
}

// ListAllRows reads the store wholesale.
func (repo *ActivityRowRepository) ListAllRows(ctx context.Context) ([]models.TrackedRow, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectTrackedRowColumns...).
		From(dbmodels.TABLE_TRACKED_ACTIVITIES).
		OrderBy("timestamp_raw desc")

	return SqlToListOfModels(ctx, repo.pool, query, dbmodels.AdaptTrackedRow)
}

// LatestEventTime returns the most recent parseable activity timestamp in
// the store, or nil when the store holds none. This is the watermark the
// incremental fetch window is planned from.
func (repo *ActivityRowRepository) LatestEventTime(ctx context.Context) (*time.Time, error) {
	query := NewQueryBuilder().
		Select("max(event_time)").
		From(dbmodels.TABLE_TRACKED_ACTIVITIES)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "can't build sql query")
	}

	var latest *time.Time
	if err := repo.pool.QueryRow(ctx, sql, args...).Scan(&latest); err != nil {
		return nil, errors.Wrap(err, "reading latest event time")
	}
	return latest, nil
}

// ReplaceAll atomically rewrites the store with the given row set.
func (repo *ActivityRowRepository) ReplaceAll(ctx context.Context, rows []models.TrackedRow) error {
	return pgx.BeginFunc(ctx, repo.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "delete from "+dbmodels.TABLE_TRACKED_ACTIVITIES); err != nil {
			return errors.Wrap(err, "clearing tracked activities")
		}
		return insertRows(ctx, tx, rows)
	})
}

func insertRows(ctx context.Context, exec Executor, rows []models.TrackedRow) error {
	for start := 0; start < len(rows); start += insertRowChunkSize {
		end := min(start+insertRowChunkSize, len(rows))

		builder := NewQueryBuilder().
			Insert(dbmodels.TABLE_TRACKED_ACTIVITIES).
			Columns(append([]string{"id"}, dbmodels.InsertTrackedRowColumns...)...)
		for _, row := range rows[start:end] {
			builder = builder.Values(append([]any{uuid.New()}, dbmodels.InsertTrackedRowValues(row)...)...)
		}

		if err := ExecBuilder(ctx, exec, builder); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return errors.Wrap(err, "duplicate row in tracked activities")
			}
			return err
		}
	}
	return nil
}
