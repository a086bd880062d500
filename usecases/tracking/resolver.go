package tracking

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/adsradar/adsradar-backend/models"
)

// resolveHierarchy materializes the flattened row for one activity by
// walking the warm tier caches bottom-up. Pure: no network access. Any
// attribute absent at any step keeps its sentinel default; a missing cache
// entry only stops the upward walk.
func resolveHierarchy(activity models.Activity, caches models.TierCaches) models.ActivityRow {
	row := models.NewActivityRow()
	row.Actor = activity.ActorName
	if row.Actor == "" {
		row.Actor = models.UnknownOwner
	}
	row.Action = activity.Action()
	row.Timestamp = formatEventTime(activity)
	row.ObjectName = activity.ObjectName
	row.ObjectId = activity.ObjectId
	row.ObjectTypeRaw = activity.ObjectType
	row.RawEventType = activity.EventType
	row.ChangedFrom, row.ChangedTo = changedValues(activity.ExtraData)

	switch models.TierFromObjectType(activity.ObjectType) {
	case models.TierCampaign:
		row.HierarchyLevel = models.HierarchyLevelCampaign
		if campaign, ok := caches.Campaigns[activity.ObjectId]; ok {
			applyCampaign(&row, campaign)
		} else {
			row.CampaignName = fallbackName(activity.ObjectName)
		}

	case models.TierAdSet:
		row.HierarchyLevel = models.HierarchyLevelAdSet
		adSet, ok := caches.AdSets[activity.ObjectId]
		if !ok {
			row.AdSetName = fallbackName(activity.ObjectName)
			break
		}
		applyAdSet(&row, adSet)
		if campaign, ok := caches.Campaigns[adSet.CampaignId]; ok {
			applyCampaign(&row, campaign)
		}

	case models.TierAd:
		row.HierarchyLevel = models.HierarchyLevelAd
		ad, ok := caches.Ads[activity.ObjectId]
		if !ok {
			row.AdName = fallbackName(activity.ObjectName)
			break
		}
		applyAd(&row, ad)
		adSet, ok := caches.AdSets[ad.AdSetId]
		if !ok {
			break
		}
		applyAdSet(&row, adSet)
		if campaign, ok := caches.Campaigns[adSet.CampaignId]; ok {
			applyCampaign(&row, campaign)
		}

	default:
		row.HierarchyLevel = models.HierarchyLevelUnknown(activity.ObjectType)
	}

	return row
}

// hierarchyResolved reports whether the activity's own object made it into
// its tier cache. Always true for unknown tiers and invalid ids, which are
// counted elsewhere.
func hierarchyResolved(activity models.Activity, caches models.TierCaches) bool {
	if !models.IsValidObjectId(activity.ObjectId) {
		return true
	}
	switch models.TierFromObjectType(activity.ObjectType) {
	case models.TierCampaign:
		_, ok := caches.Campaigns[activity.ObjectId]
		return ok
	case models.TierAdSet:
		_, ok := caches.AdSets[activity.ObjectId]
		return ok
	case models.TierAd:
		_, ok := caches.Ads[activity.ObjectId]
		return ok
	default:
		return true
	}
}

func formatEventTime(activity models.Activity) string {
	if activity.EventTime.IsZero() {
		return ""
	}
	return activity.EventTime.Format(models.RowTimestampLayout)
}

func fallbackName(objectName string) string {
	if objectName == "" {
		return models.NotAvailable
	}
	return objectName
}

func nonEmptyOrSentinel(value string) string {
	if value == "" {
		return models.NotAvailable
	}
	return value
}

func applyCampaign(row *models.ActivityRow, campaign models.CampaignDetails) {
	row.CampaignName = nonEmptyOrSentinel(campaign.Name)
	row.CampaignStatus = nonEmptyOrSentinel(campaign.DisplayStatus())
	row.CampaignObjective = nonEmptyOrSentinel(campaign.Objective)
	row.CampaignBidStrategy = nonEmptyOrSentinel(campaign.BidStrategy)
	row.CampaignBudgetType, row.CampaignBudget = formatBudget(campaign)
}

func applyAdSet(row *models.ActivityRow, adSet models.AdSetDetails) {
	row.AdSetName = nonEmptyOrSentinel(adSet.Name)
	row.AdSetStatus = nonEmptyOrSentinel(adSet.DisplayStatus())
	row.AdSetOptimizationGoal = nonEmptyOrSentinel(adSet.OptimizationGoal)
	row.AdSetBillingEvent = nonEmptyOrSentinel(adSet.BillingEvent)
	row.AgeTargeting, row.GenderTargeting, row.LocationTargeting = formatTargeting(adSet.Targeting)
}

func applyAd(row *models.ActivityRow, ad models.AdDetails) {
	row.AdName = nonEmptyOrSentinel(ad.Name)
	row.AdStatus = nonEmptyOrSentinel(ad.DisplayStatus())
	row.AdPreviewLink = nonEmptyOrSentinel(ad.PreviewLink)
}

// formatBudget derives the budget type and amount from whichever of the
// two mutually exclusive budget fields is present. Amounts arrive in minor
// currency units.
func formatBudget(campaign models.CampaignDetails) (budgetType, amount string) {
	raw, budgetType := campaign.DailyBudget, "Daily"
	if raw == "" {
		raw, budgetType = campaign.LifetimeBudget, "Lifetime"
	}
	if raw == "" {
		return models.NotAvailable, models.NotAvailable
	}
	cents, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return models.NotAvailable, models.NotAvailable
	}
	return budgetType, fmt.Sprintf("$%.2f", cents/100)
}

const notSet = "Not Set"

// formatTargeting renders the row-level targeting summary: age range as
// "{min}-{max}", gender from the demographic flags (1 male, 2 female),
// location as the first three country codes with a "+N more" suffix, else
// a city or region count.
func formatTargeting(targeting *models.AdSetTargeting) (age, gender, location string) {
	if targeting == nil {
		return models.NotAvailable, models.NotAvailable, models.NotAvailable
	}

	age = notSet
	if targeting.AgeMin > 0 {
		age = fmt.Sprintf("%d-%d", targeting.AgeMin, targeting.AgeMax)
	}

	hasMale := false
	hasFemale := false
	for _, g := range targeting.Genders {
		switch g {
		case 1:
			hasMale = true
		case 2:
			hasFemale = true
		}
	}
	switch {
	case hasMale == hasFemale:
		gender = "All"
	case hasMale:
		gender = "Male"
	default:
		gender = "Female"
	}
	if len(targeting.Genders) > 0 && !hasMale && !hasFemale {
		gender = notSet
	}

	switch {
	case len(targeting.Countries) > 0:
		location = strings.Join(targeting.Countries[:min(3, len(targeting.Countries))], ", ")
		if extra := len(targeting.Countries) - 3; extra > 0 {
			location += fmt.Sprintf(" +%d more", extra)
		}
	case targeting.CityCount > 0:
		location = fmt.Sprintf("%d cities", targeting.CityCount)
	case targeting.RegionCount > 0:
		location = fmt.Sprintf("%d regions", targeting.RegionCount)
	default:
		location = notSet
	}

	return age, gender, location
}

// changedValues extracts the before/after values from the free-form change
// payload. The payload shape varies per event kind, so it is probed rather
// than decoded into a fixed struct.
func changedValues(extra json.RawMessage) (from, to string) {
	from, to = models.NotAvailable, models.NotAvailable
	if len(extra) == 0 {
		return from, to
	}

	payload := string(extra)
	// The feed sometimes double-encodes the payload as a JSON string.
	if gjson.Valid(payload) {
		if root := gjson.Parse(payload); root.Type == gjson.String {
			payload = root.String()
		}
	}
	if !gjson.Valid(payload) {
		return from, to
	}

	if oldValue := gjson.Get(payload, "old_value"); oldValue.Exists() {
		from = oldValue.String()
		if oldValue.IsObject() || oldValue.IsArray() {
			from = oldValue.Raw
		}
	}
	if newValue := gjson.Get(payload, "new_value"); newValue.Exists() {
		to = newValue.String()
		if newValue.IsObject() || newValue.IsArray() {
			to = newValue.Raw
		}
	}
	return from, to
}
