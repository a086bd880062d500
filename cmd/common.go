package cmd

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adsradar/adsradar-backend/infra"
	"github.com/adsradar/adsradar-backend/repositories"
	"github.com/adsradar/adsradar-backend/usecases/tracking"
	"github.com/adsradar/adsradar-backend/utils"
)

// setupTracker assembles the full dependency graph from the environment:
// connection pool, repositories and the tracker usecase. The returned
// context carries the configured logger; the caller owns the pool.
func setupTracker(ctx context.Context) (context.Context, *tracking.TrackerUsecase, *pgxpool.Pool, trackerConfig, error) {
	config := loadTrackerConfig()

	logger := utils.NewLogger(config.loggingFormat)
	ctx = utils.StoreLoggerInContext(ctx, logger)

	if err := config.validate(); err != nil {
		return ctx, nil, nil, config, errors.Wrap(err, "invalid configuration")
	}

	pool, err := infra.NewPostgresConnectionPool(ctx, config.pg.GetConnectionString())
	if err != nil {
		return ctx, nil, nil, config, errors.Wrap(err, "creating postgres connection pool")
	}

	rowRepository := repositories.NewActivityRowRepository(pool)
	if err := rowRepository.EnsureSchema(ctx); err != nil {
		pool.Close()
		return ctx, nil, nil, config, errors.Wrap(err, "preparing tracked activities schema")
	}
	auditRepository := repositories.NewRunAuditRepository(pool)
	if err := auditRepository.EnsureSchema(ctx); err != nil {
		pool.Close()
		return ctx, nil, nil, config, errors.Wrap(err, "preparing run audit schema")
	}

	uc, err := tracking.NewTrackerUsecase(
		repositories.NewGraphApiRepository(config.graph),
		repositories.NewAirtableRepository(config.airtable),
		rowRepository,
		tracking.TrackerOptions{
			Workers:            config.workers,
			DefaultWindowHours: config.windowHours,
			AuditStore:         auditRepository,
		},
	)
	if err != nil {
		pool.Close()
		return ctx, nil, nil, config, err
	}
	return ctx, uc, pool, config, nil
}
