package tracking

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/adsradar/adsradar-backend/models"
	"github.com/adsradar/adsradar-backend/repositories/clock"
	"github.com/adsradar/adsradar-backend/utils"
)

// ActivitySource is the advertising platform: account listing, per-account
// activity feeds and multiplexed object enrichment. Batch methods take at
// most the platform's multiplex limit of ids and report unresolvable ids
// in their second return value.
type ActivitySource interface {
	ListAdAccounts(ctx context.Context) ([]models.AdAccount, error)
	ListActivities(ctx context.Context, accountId string, since time.Time) ([]models.Activity, error)
	BatchGetAds(ctx context.Context, ids []string) (map[string]models.AdDetails, []string, error)
	BatchGetAdSets(ctx context.Context, ids []string) (map[string]models.AdSetDetails, []string, error)
	BatchGetCampaigns(ctx context.Context, ids []string) (map[string]models.CampaignDetails, []string, error)
}

// BrandSource is the external brand→owner reference table.
type BrandSource interface {
	ListBrandRecords(ctx context.Context) ([]models.BrandMapping, error)
}

// RowStore is the persisted row sink.
type RowStore interface {
	ListAllRows(ctx context.Context) ([]models.TrackedRow, error)
	ReplaceAll(ctx context.Context, rows []models.TrackedRow) error
	LatestEventTime(ctx context.Context) (*time.Time, error)
}

// RunAuditStore records one summary per run.
type RunAuditStore interface {
	InsertRunReport(ctx context.Context, report models.RunReport) error
}

const (
	DefaultWindowHours = 12
	DefaultWorkers     = 5
)

type TrackerUsecase struct {
	activitySource ActivitySource
	brandSource    BrandSource
	rowStore       RowStore
	auditStore     RunAuditStore
	clock          clock.Clock

	workers            int
	defaultWindowHours int
}

type TrackerOptions struct {
	// Workers bounds the collection worker pool. Defaults to DefaultWorkers.
	Workers int
	// DefaultWindowHours is the first-run lookback. Defaults to
	// DefaultWindowHours.
	DefaultWindowHours int
	// AuditStore is optional; runs are not audited when nil.
	AuditStore RunAuditStore
	// Clock is optional and defaults to the wall clock.
	Clock clock.Clock
}

func NewTrackerUsecase(activitySource ActivitySource, brandSource BrandSource,
	rowStore RowStore, opts TrackerOptions,
) (*TrackerUsecase, error) {
	if activitySource == nil || brandSource == nil || rowStore == nil {
		return nil, errors.Wrap(models.ConfigurationError, "tracker requires all three collaborators")
	}
	if opts.Workers == 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.DefaultWindowHours == 0 {
		opts.DefaultWindowHours = DefaultWindowHours
	}
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	return &TrackerUsecase{
		activitySource:     activitySource,
		brandSource:        brandSource,
		rowStore:           rowStore,
		auditStore:         opts.AuditStore,
		clock:              opts.Clock,
		workers:            opts.Workers,
		defaultWindowHours: opts.DefaultWindowHours,
	}, nil
}

// Run executes one tracking run and rewrites the row store. hours is the
// requested lookback; in append mode it is widened or narrowed from the
// store's watermark. The returned report carries the run's best-effort
// counters; partial upstream data degrades to sentinels and counters, it
// never fails the run.
func (uc *TrackerUsecase) Run(ctx context.Context, hours int, mode models.RunMode) (models.RunReport, error) {
	logger := utils.LoggerFromContext(ctx)
	now := uc.clock.Now()
	report := models.NewRunReport(mode, now)

	if hours <= 0 {
		hours = uc.defaultWindowHours
	}
	if mode == models.RunModeAppend {
		lastEventTime, err := uc.rowStore.LatestEventTime(ctx)
		if err != nil {
			return *report, errors.Wrap(err, "reading row store watermark")
		}
		hours = PlanFetchWindow(now, lastEventTime, hours)
		logger.InfoContext(ctx, "planned incremental fetch window",
			"hours", hours, "has_watermark", lastEventTime != nil)
	}
	report.WindowHours = hours
	since := now.Add(-time.Duration(hours) * time.Hour)

	// The reference table is loaded up front; without it all rows carry the
	// Unknown identity, which is still a valid run.
	mappings, err := uc.brandSource.ListBrandRecords(ctx)
	if err != nil {
		logger.WarnContext(ctx, "brand reference table unavailable", "error", err.Error())
	}
	matcher := NewBrandMatcher(mappings)

	accounts, err := uc.activitySource.ListAdAccounts(ctx)
	if err != nil {
		return *report, errors.Wrap(err, "listing ad accounts")
	}
	report.AccountCount = len(accounts)

	collected := uc.collectActivities(ctx, accounts, since, report)
	for _, account := range collected {
		report.ActivityCount += len(account.Activities)
	}
	logger.InfoContext(ctx, "collected activities",
		"accounts", len(accounts), "activities", report.ActivityCount)

	// The worker pool is gone by now: enrichment and everything after it is
	// single-threaded, so the tier caches need no locking.
	ids := extractObjectRefs(collected, report)
	caches := uc.fetchEnrichment(ctx, ids, report)

	fetchedAt := uc.clock.Now()
	var fresh []models.TrackedRow
	for _, account := range collected {
		for _, activity := range account.Activities {
			if !hierarchyResolved(activity, caches) {
				report.ResolutionErrors++
			}
			row := resolveHierarchy(activity, caches)
			row.Brand = account.Account.Brand()
			row.AccountId = account.Account.Id
			row.AccountName = account.Account.Name

			match := matcher.Match(row.Brand)
			if match.MatchedBrand == "" {
				report.UnmatchedBrands++
			}
			fresh = append(fresh, models.TrackedRow{
				ActivityRow: row,
				Match:       match,
				FetchedAt:   fetchedAt,
			})
		}
	}
	sortRowsByTimestampDesc(fresh)

	final := fresh
	report.NewRowCount = len(fresh)
	if mode == models.RunModeAppend {
		persisted, err := uc.rowStore.ListAllRows(ctx)
		if err != nil {
			return *report, errors.Wrap(err, "reading persisted rows")
		}
		final, report.NewRowCount = mergeRows(persisted, fresh)
	}
	report.RowCount = len(final)

	if err := uc.rowStore.ReplaceAll(ctx, final); err != nil {
		return *report, errors.Wrap(err, "writing row store")
	}

	report.FinishedAt = uc.clock.Now()
	logger.InfoContext(ctx, "tracking run finished",
		"run_id", report.RunId.String(),
		"mode", string(mode),
		"window_hours", report.WindowHours,
		"rows", report.RowCount,
		"new_rows", report.NewRowCount,
		"skipped_objects", len(report.SkippedObjectIds),
		"cache_misses", report.TotalCacheMisses(),
		"account_errors", report.AccountErrors,
		"resolution_errors", report.ResolutionErrors)

	if uc.auditStore != nil {
		if err := uc.auditStore.InsertRunReport(ctx, *report); err != nil {
			logger.WarnContext(ctx, "could not persist run audit", "error", err.Error())
		}
	}
	return *report, nil
}
