package repositories

import (
	"context"
	"net/http"
	"testing"

	"github.com/h2non/gock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adsradar/adsradar-backend/models"
)

func newTestAirtableRepository() *AirtableRepository {
	return NewAirtableRepository(AirtableConfig{
		BaseUrl:   "https://airtable.test/v0",
		Token:     "secret",
		BaseId:    "appXYZ",
		TableName: "Brands",
	})
}

func TestListBrandRecordsFollowsOffsetPagination(t *testing.T) {
	defer gock.Off()

	gock.New("https://airtable.test").
		Get("/v0/appXYZ/Brands").
		MatchHeader("Authorization", "Bearer secret").
		Reply(http.StatusOK).
		JSON(map[string]any{
			"records": []map[string]any{
				{"id": "rec1", "fields": map[string]any{
					"Brand": "Glow Beauty", "FB Manager": "Priya", "Current Team": "Beauty",
				}},
			},
			"offset": "itrNext",
		})
	gock.New("https://airtable.test").
		Get("/v0/appXYZ/Brands").
		MatchParam("offset", "itrNext").
		Reply(http.StatusOK).
		JSON(map[string]any{
			"records": []map[string]any{
				{"id": "rec2", "fields": map[string]any{"Brands": "Acme Retail"}},
				{"id": "rec3", "fields": map[string]any{"Notes": "no brand column"}},
			},
		})

	mappings, err := newTestAirtableRepository().ListBrandRecords(context.Background())
	require.NoError(t, err)

	require.Len(t, mappings, 2, "records without a brand column are dropped")
	assert.Equal(t, models.BrandMapping{
		Brand: "Glow Beauty", FBManager: "Priya", Team: "Beauty",
	}, mappings[0])
	assert.Equal(t, "Acme Retail", mappings[1].Brand)
	assert.False(t, gock.HasUnmatchedRequest())
}

func TestListBrandRecordsUpstreamFailure(t *testing.T) {
	defer gock.Off()

	gock.New("https://airtable.test").Persist().
		Get("/v0/appXYZ/Brands").
		Reply(http.StatusBadGateway)

	_, err := newTestAirtableRepository().ListBrandRecords(context.Background())
	assert.ErrorIs(t, err, models.TransientUpstreamError)
}
