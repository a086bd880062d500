package tracking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adsradar/adsradar-backend/models"
)

func newEnrichmentUsecase(t *testing.T, source *fakeActivitySource) *TrackerUsecase {
	t.Helper()
	uc, err := NewTrackerUsecase(source, &fakeBrandSource{}, &fakeRowStore{}, TrackerOptions{})
	require.NoError(t, err)
	return uc
}

func TestFetchEnrichmentChunking(t *testing.T) {
	source := newFakeActivitySource()
	ids := newTierIdSets()
	for i := 0; i < 120; i++ {
		id := fmt.Sprintf("1000000%04d", i)
		ids.ads.Insert(id)
		source.ads[id] = models.AdDetails{Id: id}
	}

	uc := newEnrichmentUsecase(t, source)
	report := models.NewRunReport(models.RunModeReplace, time.Now())
	caches := uc.fetchEnrichment(context.Background(), ids, report)

	require.Len(t, source.adChunks, 3)
	assert.Len(t, source.adChunks[0], 50)
	assert.Len(t, source.adChunks[1], 50)
	assert.Len(t, source.adChunks[2], 20)
	// Chunks are sorted, so the fetch plan is reproducible.
	assert.Equal(t, "10000000000", source.adChunks[0][0])
	assert.Equal(t, "10000000119", source.adChunks[2][19])

	assert.Len(t, caches.Ads, 120)
	assert.Equal(t, 0, report.TotalCacheMisses())
}

func TestFetchEnrichmentNoIdsNoCalls(t *testing.T) {
	source := newFakeActivitySource()
	uc := newEnrichmentUsecase(t, source)

	report := models.NewRunReport(models.RunModeReplace, time.Now())
	caches := uc.fetchEnrichment(context.Background(), newTierIdSets(), report)

	assert.Empty(t, source.adChunks)
	assert.Empty(t, source.adSetChunks)
	assert.Empty(t, source.campaignChunks)
	assert.Empty(t, caches.Ads)
}

func TestFetchEnrichmentDiscoversParentCampaigns(t *testing.T) {
	source := newFakeActivitySource()
	source.adSets["2000000001"] = models.AdSetDetails{Id: "2000000001", CampaignId: "3000000001"}
	source.adSets["2000000002"] = models.AdSetDetails{Id: "2000000002", CampaignId: "3000000001"}
	source.campaigns["3000000001"] = models.CampaignDetails{Id: "3000000001", Name: "Summer"}
	source.campaigns["3000000002"] = models.CampaignDetails{Id: "3000000002", Name: "Winter"}

	ids := newTierIdSets()
	ids.adSets.Insert("2000000001")
	ids.adSets.Insert("2000000002")
	ids.campaigns.Insert("3000000002")

	uc := newEnrichmentUsecase(t, source)
	report := models.NewRunReport(models.RunModeReplace, time.Now())
	caches := uc.fetchEnrichment(context.Background(), ids, report)

	// The shared parent is fetched once, alongside the directly referenced
	// campaign.
	require.Len(t, source.campaignChunks, 1)
	assert.ElementsMatch(t, []string{"3000000001", "3000000002"}, source.campaignChunks[0])
	assert.Len(t, caches.Campaigns, 2)
}

func TestFetchEnrichmentDiscoversParentAdSets(t *testing.T) {
	source := newFakeActivitySource()
	source.ads["1000000001"] = models.AdDetails{
		Id: "1000000001", Name: "Carousel v2", AdSetId: "2000000001",
	}
	source.adSets["2000000001"] = models.AdSetDetails{
		Id: "2000000001", Name: "Lookalike IN", CampaignId: "3000000001",
	}
	source.campaigns["3000000001"] = models.CampaignDetails{Id: "3000000001", Name: "Summer"}

	// Only the leaf is referenced by an event; its ancestors must still be
	// fetched through the parent links.
	ids := newTierIdSets()
	ids.ads.Insert("1000000001")

	uc := newEnrichmentUsecase(t, source)
	report := models.NewRunReport(models.RunModeReplace, time.Now())
	caches := uc.fetchEnrichment(context.Background(), ids, report)

	require.Len(t, source.adSetChunks, 1)
	assert.Equal(t, []string{"2000000001"}, source.adSetChunks[0])
	assert.Equal(t, "Lookalike IN", caches.AdSets["2000000001"].Name)
	assert.Equal(t, "Summer", caches.Campaigns["3000000001"].Name)
	assert.Equal(t, 0, report.TotalCacheMisses())
}

func TestFetchEnrichmentFailedChunkDegradesToMisses(t *testing.T) {
	source := newFakeActivitySource()
	source.adErr = errUpstream

	ids := newTierIdSets()
	ids.ads.Insert("1000000001")
	ids.ads.Insert("1000000002")

	uc := newEnrichmentUsecase(t, source)
	report := models.NewRunReport(models.RunModeReplace, time.Now())
	caches := uc.fetchEnrichment(context.Background(), ids, report)

	assert.Empty(t, caches.Ads)
	assert.Equal(t, 1, report.ChunkErrors)
	assert.Equal(t, 2, report.CacheMisses[models.TierAd])
}

func TestFetchEnrichmentCountsMissingObjects(t *testing.T) {
	source := newFakeActivitySource()
	source.ads["1000000001"] = models.AdDetails{Id: "1000000001"}

	ids := newTierIdSets()
	ids.ads.Insert("1000000001")
	ids.ads.Insert("1000000009")

	uc := newEnrichmentUsecase(t, source)
	report := models.NewRunReport(models.RunModeReplace, time.Now())
	caches := uc.fetchEnrichment(context.Background(), ids, report)

	assert.Len(t, caches.Ads, 1)
	assert.Equal(t, 1, report.CacheMisses[models.TierAd])
}
