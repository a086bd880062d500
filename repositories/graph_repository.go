package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/cockroachdb/errors"

	"github.com/adsradar/adsradar-backend/models"
	"github.com/adsradar/adsradar-backend/pure_utils"
	"github.com/adsradar/adsradar-backend/repositories/httpmodels"
)

const (
	// GraphBatchLimit is the maximum number of sub-requests accepted by the
	// multiplexed batch endpoint.
	GraphBatchLimit = 50

	graphDefaultTimeout   = 10 * time.Second
	graphRetryAttempts    = 3
	graphRetryDelay       = 500 * time.Millisecond
	graphAccountPageSize  = 100
	graphActivityPageSize = 500

	// The "since" filter accepted by the activity feed.
	graphSinceLayout = "2006-01-02T15:04:05"
)

const (
	accountFields  = "id,name,account_status,business_name,currency,timezone_name"
	activityFields = "event_type,event_time,actor_name,object_name,object_type,object_id,translated_event_type,extra_data"
	campaignFields = "id,name,status,effective_status,objective,daily_budget,lifetime_budget,bid_strategy"
	adSetFields    = "id,name,status,effective_status,campaign_id,optimization_goal,billing_event,targeting"
	adFields       = "id,name,status,effective_status,adset_id,preview_shareable_link"
)

type GraphConfig struct {
	BaseUrl     string
	AccessToken string
	Timeout     time.Duration
}

// GraphApiRepository talks to the advertising platform's activity and
// object endpoints.
type GraphApiRepository struct {
	config GraphConfig
	client *http.Client
}

func NewGraphApiRepository(config GraphConfig) *GraphApiRepository {
	if config.Timeout == 0 {
		config.Timeout = graphDefaultTimeout
	}
	return &GraphApiRepository{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}
}

// upstreamStatusError is an HTTP-level failure from the platform.
type upstreamStatusError struct {
	code int
}

func (e upstreamStatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.code)
}

func isRetryableUpstream(err error) bool {
	var statusErr upstreamStatusError
	if errors.As(err, &statusErr) {
		return statusErr.code == http.StatusTooManyRequests || statusErr.code >= 500
	}
	// Timeouts and transport failures are retryable.
	return true
}

func (repo *GraphApiRepository) doGet(ctx context.Context, fullUrl string) ([]byte, error) {
	var body []byte
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullUrl, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
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

			body, err = io.ReadAll(resp.Body)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(graphRetryAttempts),
		retry.Delay(graphRetryDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		var statusErr upstreamStatusError
		if errors.As(err, &statusErr) && statusErr.code < 500 &&
			statusErr.code != http.StatusTooManyRequests {
			return nil, errors.Wrapf(models.NotFoundError, "GET %s: status %d", fullUrl, statusErr.code)
		}
		return nil, errors.Wrapf(models.TransientUpstreamError, "GET %s: %v", fullUrl, err)
	}
	return body, nil
}

// ListAdAccounts walks the paginated account listing.
func (repo *GraphApiRepository) ListAdAccounts(ctx context.Context) ([]models.AdAccount, error) {
	params := url.Values{}
	params.Set("access_token", repo.config.AccessToken)
	params.Set("fields", accountFields)
	params.Set("limit", strconv.Itoa(graphAccountPageSize))
	pageUrl := fmt.Sprintf("%s/me/adaccounts?%s", repo.config.BaseUrl, params.Encode())

	var accounts []models.AdAccount
	for pageUrl != "" {
		body, err := repo.doGet(ctx, pageUrl)
		if err != nil {
			return accounts, err
		}

		var page httpmodels.HTTPAdAccountPage
		if err := json.Unmarshal(body, &page); err != nil {
			return accounts, errors.Wrap(err, "decoding ad account page")
		}
		accounts = append(accounts, pure_utils.Map(page.Data, httpmodels.AdaptAdAccount)...)
		pageUrl = page.Paging.Next
	}
	return accounts, nil
}

// ListActivities walks the cursor-paginated activity feed of one account,
// from `since` until now. On a page failure the activities collected so far
// are returned alongside the error, so a caller can keep partial data.
func (repo *GraphApiRepository) ListActivities(ctx context.Context, accountId string, since time.Time) ([]models.Activity, error) {
	params := url.Values{}
	params.Set("access_token", repo.config.AccessToken)
	params.Set("fields", activityFields)
	params.Set("since", since.Format(graphSinceLayout))
	params.Set("limit", strconv.Itoa(graphActivityPageSize))
	pageUrl := fmt.Sprintf("%s/%s/activities?%s", repo.config.BaseUrl, accountId, params.Encode())

	var activities []models.Activity
	for pageUrl != "" {
		body, err := repo.doGet(ctx, pageUrl)
		if err != nil {
			return activities, err
		}

		var page httpmodels.HTTPActivityPage
		if err := json.Unmarshal(body, &page); err != nil {
			return activities, errors.Wrap(err, "decoding activity page")
		}
		activities = append(activities, pure_utils.Map(page.Data, httpmodels.AdaptActivity)...)
		pageUrl = page.Paging.Next
	}
	return activities, nil
}

// batchFetch issues one multiplexed call carrying up to GraphBatchLimit
// sub-requests and returns the ordered per-item responses.
func (repo *GraphApiRepository) batchFetch(ctx context.Context, relativeUrls []string) ([]httpmodels.HTTPBatchSubResponse, error) {
	if len(relativeUrls) > GraphBatchLimit {
		return nil, errors.Wrapf(models.BadParameterError,
			"batch of %d exceeds the %d sub-request limit", len(relativeUrls), GraphBatchLimit)
	}

	subRequests := make([]httpmodels.HTTPBatchSubRequest, len(relativeUrls))
	for i, relativeUrl := range relativeUrls {
		subRequests[i] = httpmodels.HTTPBatchSubRequest{
			Method:      http.MethodGet,
			RelativeUrl: relativeUrl,
		}
	}
	encoded, err := json.Marshal(subRequests)
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("access_token", repo.config.AccessToken)
	form.Set("batch", string(encoded))

	var responses []httpmodels.HTTPBatchSubResponse
	err = retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodPost,
				repo.config.BaseUrl, strings.NewReader(form.Encode()))
			if err != nil {
				return retry.Unrecoverable(err)
			}
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

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

			return json.NewDecoder(resp.Body).Decode(&responses)
		},
		retry.Context(ctx),
		retry.Attempts(graphRetryAttempts),
		retry.Delay(graphRetryDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, errors.Wrapf(models.TransientUpstreamError, "batch call: %v", err)
	}
	return responses, nil
}

// decodeBatchItems maps batch sub-responses back to their ids: the endpoint
// guarantees response order matches request order. Items whose synthetic
// status is not 200 (or that failed to decode) land in missing.
func decodeBatchItems[Wire, Model any](ids []string, responses []httpmodels.HTTPBatchSubResponse,
	adapt func(Wire) Model,
) (found map[string]Model, missing []string) {
	found = make(map[string]Model, len(ids))
	for i, id := range ids {
		if i >= len(responses) || responses[i].Code != http.StatusOK {
			missing = append(missing, id)
			continue
		}
		var wire Wire
		if err := json.Unmarshal([]byte(responses[i].Body), &wire); err != nil {
			missing = append(missing, id)
			continue
		}
		found[id] = adapt(wire)
	}
	return found, missing
}

func batchRelativeUrls(ids []string, fields string) []string {
	urls := make([]string, len(ids))
	for i, id := range ids {
		urls[i] = fmt.Sprintf("%s?fields=%s", id, fields)
	}
	return urls
}

// BatchGetAds enriches up to GraphBatchLimit leaf-tier ids in one call.
func (repo *GraphApiRepository) BatchGetAds(ctx context.Context, ids []string) (map[string]models.AdDetails, []string, error) {
	responses, err := repo.batchFetch(ctx, batchRelativeUrls(ids, adFields))
	if err != nil {
		return nil, ids, err
	}
	found, missing := decodeBatchItems(ids, responses, httpmodels.AdaptAdDetails)
	return found, missing, nil
}

// BatchGetAdSets enriches up to GraphBatchLimit mid-tier ids in one call.
func (repo *GraphApiRepository) BatchGetAdSets(ctx context.Context, ids []string) (map[string]models.AdSetDetails, []string, error) {
	responses, err := repo.batchFetch(ctx, batchRelativeUrls(ids, adSetFields))
	if err != nil {
		return nil, ids, err
	}
	found, missing := decodeBatchItems(ids, responses, httpmodels.AdaptAdSetDetails)
	return found, missing, nil
}

// BatchGetCampaigns enriches up to GraphBatchLimit root-tier ids in one call.
func (repo *GraphApiRepository) BatchGetCampaigns(ctx context.Context, ids []string) (map[string]models.CampaignDetails, []string, error) {
	responses, err := repo.batchFetch(ctx, batchRelativeUrls(ids, campaignFields))
	if err != nil {
		return nil, ids, err
	}
	found, missing := decodeBatchItems(ids, responses, httpmodels.AdaptCampaignDetails)
	return found, missing, nil
}
