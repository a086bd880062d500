package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/cockroachdb/errors"

	"github.com/adsradar/adsradar-backend/models"
	"github.com/adsradar/adsradar-backend/repositories/httpmodels"
)

const (
	airtableDefaultTimeout = 10 * time.Second
	airtableRetryAttempts  = 3
	airtableRetryDelay     = 500 * time.Millisecond
)

type AirtableConfig struct {
	BaseUrl   string
	Token     string
	BaseId    string
	TableName string
	Timeout   time.Duration
}

// AirtableRepository reads the brand→owner reference table.
type AirtableRepository struct {
	config AirtableConfig
	client *http.Client
}

func NewAirtableRepository(config AirtableConfig) *AirtableRepository {
	if config.Timeout == 0 {
		config.Timeout = airtableDefaultTimeout
	}
	return &AirtableRepository{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}
}

func (repo *AirtableRepository) tableUrl(offset string) string {
	base := fmt.Sprintf("%s/%s/%s", repo.config.BaseUrl, repo.config.BaseId,
		url.PathEscape(repo.config.TableName))
	if offset == "" {
		return base
	}
	params := url.Values{}
	params.Set("offset", offset)
	return base + "?" + params.Encode()
}

func (repo *AirtableRepository) getPage(ctx context.Context, pageUrl string) (httpmodels.HTTPBrandRecordPage, error) {
	var page httpmodels.HTTPBrandRecordPage
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageUrl, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			req.Header.Set("Authorization", "Bearer "+repo.config.Token)

			resp, err := repo.client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode >= 400 {
				statusErr := upstreamStatusError{code: resp.StatusCode}
				if !isRetryableUpstream(statusErr) {
					return retry.Unrecoverable(statusErr)
				}
				return statusErr
			}

			page = httpmodels.HTTPBrandRecordPage{}
			return json.NewDecoder(resp.Body).Decode(&page)
		},
		retry.Context(ctx),
		retry.Attempts(airtableRetryAttempts),
		retry.Delay(airtableRetryDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return page, errors.Wrapf(models.TransientUpstreamError, "GET %s: %v", pageUrl, err)
	}
	return page, nil
}

// ListBrandRecords walks the offset-paginated table and returns every
// usable mapping record.
func (repo *AirtableRepository) ListBrandRecords(ctx context.Context) ([]models.BrandMapping, error) {
	var mappings []models.BrandMapping

	offset := ""
	for {
		page, err := repo.getPage(ctx, repo.tableUrl(offset))
		if err != nil {
			return mappings, err
		}
		for _, record := range page.Records {
			if mapping, ok := httpmodels.AdaptBrandRecord(record); ok {
				mappings = append(mappings, mapping)
			}
		}
		if page.Offset == "" {
			return mappings, nil
		}
		offset = page.Offset
	}
}
