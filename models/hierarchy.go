package models

import "fmt"

// ObjectTier is the position of a platform object in the ownership
// hierarchy. The activity feed tags objects with legacy type names:
// "adgroup" is an ad (leaf), "campaign" is an ad set (mid) and
// "campaign_group" is a campaign (root).
type ObjectTier int

const (
	TierUnknown ObjectTier = iota
	TierAd
	TierAdSet
	TierCampaign
)

const (
	rawObjectTypeAd       = "adgroup"
	rawObjectTypeAdSet    = "campaign"
	rawObjectTypeCampaign = "campaign_group"
)

func TierFromObjectType(raw string) ObjectTier {
	switch raw {
	case rawObjectTypeAd:
		return TierAd
	case rawObjectTypeAdSet:
		return TierAdSet
	case rawObjectTypeCampaign:
		return TierCampaign
	default:
		return TierUnknown
	}
}

func (t ObjectTier) String() string {
	switch t {
	case TierAd:
		return "ad"
	case TierAdSet:
		return "ad_set"
	case TierCampaign:
		return "campaign"
	default:
		return "unknown"
	}
}

// IsValidObjectId reports whether id looks like a platform object id:
// all digits, 10 to 25 characters.
func IsValidObjectId(id string) bool {
	if len(id) < 10 || len(id) > 25 {
		return false
	}
	for _, c := range id {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// CampaignDetails are the enrichment attributes of a root-tier object.
// String fields are empty when the platform did not return them.
type CampaignDetails struct {
	Id              string
	Name            string
	Status          string
	EffectiveStatus string
	Objective       string
	BidStrategy     string
	// DailyBudget and LifetimeBudget are mutually exclusive, expressed in
	// minor currency units (cents). Empty when unset.
	DailyBudget    string
	LifetimeBudget string
}

// DisplayStatus prefers the effective status over the configured one.
func (c CampaignDetails) DisplayStatus() string {
	if c.EffectiveStatus != "" {
		return c.EffectiveStatus
	}
	return c.Status
}

// AdSetTargeting is the subset of targeting settings surfaced on rows.
type AdSetTargeting struct {
	AgeMin      int
	AgeMax      int
	Genders     []int
	Countries   []string
	CityCount   int
	RegionCount int
}

// AdSetDetails are the enrichment attributes of a mid-tier object,
// including its declared parent campaign.
type AdSetDetails struct {
	Id               string
	Name             string
	Status           string
	EffectiveStatus  string
	CampaignId       string
	OptimizationGoal string
	BillingEvent     string
	Targeting        *AdSetTargeting
}

func (s AdSetDetails) DisplayStatus() string {
	if s.EffectiveStatus != "" {
		return s.EffectiveStatus
	}
	return s.Status
}

// AdDetails are the enrichment attributes of a leaf-tier object, including
// its declared parent ad set.
type AdDetails struct {
	Id              string
	Name            string
	Status          string
	EffectiveStatus string
	AdSetId         string
	PreviewLink     string
}

func (a AdDetails) DisplayStatus() string {
	if a.EffectiveStatus != "" {
		return a.EffectiveStatus
	}
	return a.Status
}

// TierCaches memoizes enrichment attributes for one run. Entries are
// write-once: the batch enrichment stage populates the caches sequentially
// and every later stage borrows them read-only, so no locking is needed.
type TierCaches struct {
	Ads       map[string]AdDetails
	AdSets    map[string]AdSetDetails
	Campaigns map[string]CampaignDetails
}

func NewTierCaches() TierCaches {
	return TierCaches{
		Ads:       make(map[string]AdDetails),
		AdSets:    make(map[string]AdSetDetails),
		Campaigns: make(map[string]CampaignDetails),
	}
}

// HierarchyLevelUnknown formats the level tag for an unrecognized raw
// object type.
func HierarchyLevelUnknown(rawObjectType string) string {
	return fmt.Sprintf("%s:%s", HierarchyLevelOther, rawObjectType)
}

const (
	HierarchyLevelCampaign = "CAMPAIGN"
	HierarchyLevelAdSet    = "ADSET"
	HierarchyLevelAd       = "AD"
	HierarchyLevelOther    = "OTHER"
	// HierarchyLevelUndetermined is the initial value before resolution.
	HierarchyLevelUndetermined = "UNKNOWN"
)
