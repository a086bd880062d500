package cmd

import (
	"errors"

	"github.com/adsradar/adsradar-backend/infra"
	"github.com/adsradar/adsradar-backend/repositories"
	"github.com/adsradar/adsradar-backend/utils"
)

type trackerConfig struct {
	loggingFormat string

	graph    repositories.GraphConfig
	airtable repositories.AirtableConfig
	pg       infra.PgConfig

	workers     int
	windowHours int
	cronExpr    string
	timezone    string
}

func loadTrackerConfig() trackerConfig {
	return trackerConfig{
		loggingFormat: utils.GetEnv("LOGGING_FORMAT", "text"),
		graph: repositories.GraphConfig{
			BaseUrl:     utils.GetEnv("GRAPH_API_URL", "https://graph.facebook.com/v21.0"),
			AccessToken: utils.GetRequiredEnv[string]("GRAPH_ACCESS_TOKEN"),
		},
		airtable: repositories.AirtableConfig{
			BaseUrl:   utils.GetEnv("AIRTABLE_API_URL", "https://api.airtable.com/v0"),
			Token:     utils.GetEnv("AIRTABLE_TOKEN", ""),
			BaseId:    utils.GetEnv("AIRTABLE_BASE_ID", ""),
			TableName: utils.GetEnv("AIRTABLE_TABLE_NAME", "Brands"),
		},
		pg: infra.PgConfig{
			ConnectionString: utils.GetEnv("PG_CONNECTION_STRING", ""),
			Hostname:         utils.GetEnv("PG_HOSTNAME", ""),
			Port:             utils.GetEnv("PG_PORT", "5432"),
			User:             utils.GetEnv("PG_USER", ""),
			Password:         utils.GetEnv("PG_PASSWORD", ""),
			Database:         utils.GetEnv("PG_DATABASE", "adsradar"),
		},
		workers:     utils.GetEnv("COLLECT_WORKERS", 5),
		windowHours: utils.GetEnv("WINDOW_HOURS", 12),
		cronExpr:    utils.GetEnv("TRACKING_CRON", "0 */12 * * *"),
		timezone:    utils.GetEnv("TRACKING_TZ", "UTC"),
	}
}

func (config trackerConfig) validate() error {
	if config.pg.ConnectionString == "" && (config.pg.Hostname == "" || config.pg.User == "") {
		return errors.New("postgres configuration requires PG_CONNECTION_STRING or PG_HOSTNAME and PG_USER")
	}
	if config.workers <= 0 {
		return errors.New("COLLECT_WORKERS must be positive")
	}
	if config.windowHours <= 0 {
		return errors.New("WINDOW_HOURS must be positive")
	}
	return nil
}
