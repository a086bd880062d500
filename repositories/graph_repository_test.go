package repositories

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/h2non/gock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adsradar/adsradar-backend/models"
)

func newTestGraphRepository() *GraphApiRepository {
	return NewGraphApiRepository(GraphConfig{
		BaseUrl:     "https://graph.test/v21.0",
		AccessToken: "token",
	})
}

func TestListAdAccountsFollowsPagination(t *testing.T) {
	defer gock.Off()

	gock.New("https://graph.test").
		Get("/v21.0/me/adaccounts").
		Reply(http.StatusOK).
		JSON(map[string]any{
			"data": []map[string]any{
				{"id": "act_1", "name": "One", "business_name": "Acme Retail"},
			},
			"paging": map[string]any{
				"next": "https://graph.test/v21.0/me/adaccounts?after=cursor2",
			},
		})
	gock.New("https://graph.test").
		Get("/v21.0/me/adaccounts").
		MatchParam("after", "cursor2").
		Reply(http.StatusOK).
		JSON(map[string]any{
			"data": []map[string]any{
				{"id": "act_2", "name": "Two"},
			},
		})

	accounts, err := newTestGraphRepository().ListAdAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "act_1", accounts[0].Id)
	assert.Equal(t, "Acme Retail", accounts[0].Brand())
	assert.Equal(t, "Two", accounts[1].Brand())
	assert.False(t, gock.HasUnmatchedRequest())
}

func TestListActivitiesReturnsPartialOnPageFailure(t *testing.T) {
	defer gock.Off()

	gock.New("https://graph.test").
		Get("/v21.0/act_1/activities").
		Reply(http.StatusOK).
		JSON(map[string]any{
			"data": []map[string]any{
				{
					"event_type":  "update_ad_creative",
					"event_time":  "2026-08-30T14:05:00+0000",
					"actor_name":  "Jane Doe",
					"object_id":   "1000000001",
					"object_type": "adgroup",
				},
			},
			"paging": map[string]any{
				"next": "https://graph.test/v21.0/act_1/activities?after=cursor2",
			},
		})
	// The second page keeps failing past the retry budget.
	gock.New("https://graph.test").Persist().
		Get("/v21.0/act_1/activities").
		MatchParam("after", "cursor2").
		Reply(http.StatusInternalServerError)

	activities, err := newTestGraphRepository().ListActivities(
		context.Background(), "act_1", time.Now().Add(-12*time.Hour))

	require.ErrorIs(t, err, models.TransientUpstreamError)
	require.Len(t, activities, 1, "pages fetched before the failure are kept")
	assert.Equal(t, "Jane Doe", activities[0].ActorName)
	assert.Equal(t, time.Date(2026, 8, 30, 14, 5, 0, 0, time.UTC), activities[0].EventTime)
}

func TestDoGetRetriesServerErrors(t *testing.T) {
	defer gock.Off()

	gock.New("https://graph.test").
		Get("/v21.0/me/adaccounts").
		Reply(http.StatusServiceUnavailable)
	gock.New("https://graph.test").
		Get("/v21.0/me/adaccounts").
		Reply(http.StatusOK).
		JSON(map[string]any{
			"data": []map[string]any{{"id": "act_1", "name": "One"}},
		})

	accounts, err := newTestGraphRepository().ListAdAccounts(context.Background())
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
}

func TestDoGetDoesNotRetryClientErrors(t *testing.T) {
	defer gock.Off()

	gock.New("https://graph.test").
		Get("/v21.0/me/adaccounts").
		Reply(http.StatusForbidden)

	_, err := newTestGraphRepository().ListAdAccounts(context.Background())
	require.ErrorIs(t, err, models.NotFoundError)
	assert.False(t, gock.HasUnmatchedRequest(), "a 403 must not be retried")
}

func TestBatchGetAdsShapeAndMisses(t *testing.T) {
	defer gock.Off()

	gock.New("https://graph.test").
		Post("/v21.0").
		Reply(http.StatusOK).
		JSON([]map[string]any{
			{
				"code": 200,
				"body": `{"id":"1000000001","name":"Carousel v2","adset_id":"2000000001"}`,
			},
			{"code": 404, "body": `{"error":{"message":"not found"}}`},
		})

	found, missing, err := newTestGraphRepository().BatchGetAds(
		context.Background(), []string{"1000000001", "1000000002"})
	require.NoError(t, err)

	require.Len(t, found, 1)
	assert.Equal(t, "Carousel v2", found["1000000001"].Name)
	assert.Equal(t, "2000000001", found["1000000001"].AdSetId)
	assert.Equal(t, []string{"1000000002"}, missing)
}

func TestBatchGetAdsRejectsOversizedBatch(t *testing.T) {
	ids := make([]string, GraphBatchLimit+1)
	for i := range ids {
		ids[i] = "1000000001"
	}
	_, _, err := newTestGraphRepository().BatchGetAds(context.Background(), ids)
	assert.ErrorIs(t, err, models.BadParameterError)
}

func TestBatchGetAdSetsDecodesTargeting(t *testing.T) {
	defer gock.Off()

	gock.New("https://graph.test").
		Post("/v21.0").
		Reply(http.StatusOK).
		JSON([]map[string]any{
			{
				"code": 200,
				"body": `{
					"id":"2000000001","name":"Lookalike IN","campaign_id":"3000000001",
					"targeting":{
						"age_min":25,"age_max":44,"genders":[2],
						"geo_locations":{"countries":["IN","AE"],"cities":[{"key":"1"},{"key":"2"}]}
					}
				}`,
			},
		})

	found, missing, err := newTestGraphRepository().BatchGetAdSets(
		context.Background(), []string{"2000000001"})
	require.NoError(t, err)
	require.Empty(t, missing)

	adSet := found["2000000001"]
	require.NotNil(t, adSet.Targeting)
	assert.Equal(t, 25, adSet.Targeting.AgeMin)
	assert.Equal(t, []int{2}, adSet.Targeting.Genders)
	assert.Equal(t, []string{"IN", "AE"}, adSet.Targeting.Countries)
	assert.Equal(t, 2, adSet.Targeting.CityCount)
}
