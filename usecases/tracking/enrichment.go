package tracking

import (
	"context"
	"slices"

	"github.com/hashicorp/go-set/v2"

	"github.com/adsradar/adsradar-backend/models"
	"github.com/adsradar/adsradar-backend/utils"
)

// batchChunkSize is the multiplex limit of the platform's batch endpoint.
const batchChunkSize = 50

// sortedChunks turns a set into deterministic fetch chunks of at most
// batchChunkSize ids each, excluding ids already cached. Repeated fetch
// passes therefore issue no call for an id that already resolved.
func sortedChunks(ids *set.Set[string], cached func(string) bool) [][]string {
	all := make([]string, 0, ids.Size())
	for _, id := range ids.Slice() {
		if !cached(id) {
			all = append(all, id)
		}
	}
	slices.Sort(all)

	var chunks [][]string
	for start := 0; start < len(all); start += batchChunkSize {
		end := min(start+batchChunkSize, len(all))
		chunks = append(chunks, all[start:end])
	}
	return chunks
}

// fetchEnrichment populates the three tier caches with the minimum number
// of multiplexed calls. Order is fixed by the data dependency between
// tiers: ads reveal their parent ad set ids, ad sets reveal their parent
// campaign ids, so each pass fetches the union of directly referenced and
// discovered ids. The returned caches are owned by this stage; every later
// stage borrows them read-only. Failed chunks degrade to cache misses.
func (uc *TrackerUsecase) fetchEnrichment(ctx context.Context, ids tierIdSets,
	report *models.RunReport,
) models.TierCaches {
	logger := utils.LoggerFromContext(ctx)
	caches := models.NewTierCaches()

	adCached := func(id string) bool { _, ok := caches.Ads[id]; return ok }
	for _, chunk := range sortedChunks(ids.ads, adCached) {
		found, missing, err := uc.activitySource.BatchGetAds(ctx, chunk)
		if err != nil {
			logger.WarnContext(ctx, "ad enrichment chunk failed", "size", len(chunk), "error", err.Error())
			report.ChunkErrors++
			report.RecordCacheMisses(models.TierAd, len(chunk))
			continue
		}
		for id, details := range found {
			caches.Ads[id] = details
		}
		report.RecordCacheMisses(models.TierAd, len(missing))
	}

	// Ad set ids discovered transitively through ad parents.
	adSetIds := set.New[string](ids.adSets.Size())
	adSetIds.InsertSet(ids.adSets)
	for _, ad := range caches.Ads {
		if models.IsValidObjectId(ad.AdSetId) {
			adSetIds.Insert(ad.AdSetId)
		}
	}

	adSetCached := func(id string) bool { _, ok := caches.AdSets[id]; return ok }
	for _, chunk := range sortedChunks(adSetIds, adSetCached) {
		found, missing, err := uc.activitySource.BatchGetAdSets(ctx, chunk)
		if err != nil {
			logger.WarnContext(ctx, "ad set enrichment chunk failed", "size", len(chunk), "error", err.Error())
			report.ChunkErrors++
			report.RecordCacheMisses(models.TierAdSet, len(chunk))
			continue
		}
		for id, details := range found {
			caches.AdSets[id] = details
		}
		report.RecordCacheMisses(models.TierAdSet, len(missing))
	}

	// Campaign ids discovered transitively through ad set parents.
	campaignIds := set.New[string](ids.campaigns.Size())
	campaignIds.InsertSet(ids.campaigns)
	for _, adSet := range caches.AdSets {
		if models.IsValidObjectId(adSet.CampaignId) {
			campaignIds.Insert(adSet.CampaignId)
		}
	}

	campaignCached := func(id string) bool { _, ok := caches.Campaigns[id]; return ok }
	for _, chunk := range sortedChunks(campaignIds, campaignCached) {
		found, missing, err := uc.activitySource.BatchGetCampaigns(ctx, chunk)
		if err != nil {
			logger.WarnContext(ctx, "campaign enrichment chunk failed", "size", len(chunk), "error", err.Error())
			report.ChunkErrors++
			report.RecordCacheMisses(models.TierCampaign, len(chunk))
			continue
		}
		for id, details := range found {
			caches.Campaigns[id] = details
		}
		report.RecordCacheMisses(models.TierCampaign, len(missing))
	}

	return caches
}
