package tracking

import (
	"github.com/hashicorp/go-set/v2"

	"github.com/adsradar/adsradar-backend/models"
)

// tierIdSets partitions the distinct object ids referenced by the collected
// activities by hierarchy tier.
type tierIdSets struct {
	ads       *set.Set[string]
	adSets    *set.Set[string]
	campaigns *set.Set[string]
}

func newTierIdSets() tierIdSets {
	return tierIdSets{
		ads:       set.New[string](0),
		adSets:    set.New[string](0),
		campaigns: set.New[string](0),
	}
}

// extractObjectRefs scans the collected activities and partitions their
// object ids by tier. Ids that fail the shape check are recorded as skipped
// and never promoted to a fetchable reference. Pure: no network, no side
// effects beyond the report counters.
func extractObjectRefs(collected []models.AccountActivities, report *models.RunReport) tierIdSets {
	ids := newTierIdSets()

	for _, account := range collected {
		for _, activity := range account.Activities {
			tier := models.TierFromObjectType(activity.ObjectType)
			if tier == models.TierUnknown {
				continue
			}
			if !models.IsValidObjectId(activity.ObjectId) {
				report.RecordSkippedObject(tier, activity.ObjectId)
				continue
			}

			switch tier {
			case models.TierAd:
				ids.ads.Insert(activity.ObjectId)
			case models.TierAdSet:
				ids.adSets.Insert(activity.ObjectId)
			case models.TierCampaign:
				ids.campaigns.Insert(activity.ObjectId)
			}
		}
	}
	return ids
}
