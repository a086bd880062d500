package dbmodels

import (
	"time"

	"github.com/google/uuid"

	"github.com/adsradar/adsradar-backend/models"
)

const TABLE_TRACKED_ACTIVITIES = "tracked_activities"

type DBTrackedRow struct {
	Id    uuid.UUID `db:"id"`
	Brand string    `db:"brand"`

	MatchedBrand string `db:"matched_brand"`
	FBManager    string `db:"fb_manager"`
	BrandManager string `db:"brand_manager"`
	Team         string `db:"team"`

	Actor          string `db:"actor"`
	Action         string `db:"action"`
	HierarchyLevel string `db:"hierarchy_level"`
	// TimestampRaw is the formatted activity timestamp exactly as carried on
	// rows; EventTime is its parsed counterpart, null when unparseable, used
	// for the incremental-window watermark.
	TimestampRaw string     `db:"timestamp_raw"`
	EventTime    *time.Time `db:"event_time"`

	CampaignName        string `db:"campaign_name"`
	CampaignStatus      string `db:"campaign_status"`
	CampaignObjective   string `db:"campaign_objective"`
	CampaignBudgetType  string `db:"campaign_budget_type"`
	CampaignBudget      string `db:"campaign_budget"`
	CampaignBidStrategy string `db:"campaign_bid_strategy"`

	AdSetName             string `db:"ad_set_name"`
	AdSetStatus           string `db:"ad_set_status"`
	AdSetOptimizationGoal string `db:"ad_set_optimization_goal"`
	AdSetBillingEvent     string `db:"ad_set_billing_event"`
	AgeTargeting          string `db:"age_targeting"`
	GenderTargeting       string `db:"gender_targeting"`
	LocationTargeting     string `db:"location_targeting"`

	AdName        string `db:"ad_name"`
	AdStatus      string `db:"ad_status"`
	AdPreviewLink string `db:"ad_preview_link"`

	ChangedFrom string `db:"changed_from"`
	ChangedTo   string `db:"changed_to"`

	AccountId     string    `db:"account_id"`
	AccountName   string    `db:"account_name"`
	ObjectName    string    `db:"object_name"`
	ObjectId      string    `db:"object_id"`
	ObjectTypeRaw string    `db:"object_type_raw"`
	RawEventType  string    `db:"raw_event_type"`
	FetchedAt     time.Time `db:"fetched_at"`
}

var SelectTrackedRowColumns = []string{
	"id", "brand", "matched_brand", "fb_manager", "brand_manager", "team",
	"actor", "action", "hierarchy_level", "timestamp_raw", "event_time",
	"campaign_name", "campaign_status", "campaign_objective",
	"campaign_budget_type", "campaign_budget", "campaign_bid_strategy",
	"ad_set_name", "ad_set_status", "ad_set_optimization_goal", "ad_set_billing_event",
	"age_targeting", "gender_targeting", "location_targeting",
	"ad_name", "ad_status", "ad_preview_link",
	"changed_from", "changed_to",
	"account_id", "account_name", "object_name", "object_id",
	"object_type_raw", "raw_event_type", "fetched_at",
}

func AdaptTrackedRow(db DBTrackedRow) (models.TrackedRow, error) {
	return models.TrackedRow{
		ActivityRow: models.ActivityRow{
			Brand:       db.Brand,
			AccountId:   db.AccountId,
			AccountName: db.AccountName,

			Actor:          db.Actor,
			Action:         db.Action,
			HierarchyLevel: db.HierarchyLevel,
			Timestamp:      db.TimestampRaw,

			CampaignName:        db.CampaignName,
			CampaignStatus:      db.CampaignStatus,
			CampaignObjective:   db.CampaignObjective,
			CampaignBudgetType:  db.CampaignBudgetType,
			CampaignBudget:      db.CampaignBudget,
			CampaignBidStrategy: db.CampaignBidStrategy,

			AdSetName:             db.AdSetName,
			AdSetStatus:           db.AdSetStatus,
			AdSetOptimizationGoal: db.AdSetOptimizationGoal,
			AdSetBillingEvent:     db.AdSetBillingEvent,
			AgeTargeting:          db.AgeTargeting,
			GenderTargeting:       db.GenderTargeting,
			LocationTargeting:     db.LocationTargeting,

			AdName:        db.AdName,
			AdStatus:      db.AdStatus,
			AdPreviewLink: db.AdPreviewLink,

			ChangedFrom: db.ChangedFrom,
			ChangedTo:   db.ChangedTo,

			ObjectName:    db.ObjectName,
			ObjectId:      db.ObjectId,
			ObjectTypeRaw: db.ObjectTypeRaw,
			RawEventType:  db.RawEventType,
		},
		Match: models.BrandMatch{
			MatchedBrand: db.MatchedBrand,
			FBManager:    db.FBManager,
			BrandManager: db.BrandManager,
			Team:         db.Team,
		},
		FetchedAt: db.FetchedAt,
	}, nil
}

// InsertTrackedRowValues flattens one row in the column order used by the
// insert statement (all SelectTrackedRowColumns except the generated id).
func InsertTrackedRowValues(row models.TrackedRow) []any {
	var eventTime *time.Time
	if t, err := time.Parse(models.RowTimestampLayout, row.Timestamp); err == nil {
		eventTime = &t
	}
	return []any{
		row.Brand, row.Match.MatchedBrand, row.Match.FBManager,
		row.Match.BrandManager, row.Match.Team,
		row.Actor, row.Action, row.HierarchyLevel, row.Timestamp, eventTime,
		row.CampaignName, row.CampaignStatus, row.CampaignObjective,
		row.CampaignBudgetType, row.CampaignBudget, row.CampaignBidStrategy,
		row.AdSetName, row.AdSetStatus, row.AdSetOptimizationGoal, row.AdSetBillingEvent,
		row.AgeTargeting, row.GenderTargeting, row.LocationTargeting,
		row.AdName, row.AdStatus, row.AdPreviewLink,
		row.ChangedFrom, row.ChangedTo,
		row.AccountId, row.AccountName, row.ObjectName, row.ObjectId,
		row.ObjectTypeRaw, row.RawEventType, row.FetchedAt,
	}
}

var InsertTrackedRowColumns = []string{
	"brand", "matched_brand", "fb_manager", "brand_manager", "team",
	"actor", "action", "hierarchy_level", "timestamp_raw", "event_time",
	"campaign_name", "campaign_status", "campaign_objective",
	"campaign_budget_type", "campaign_budget", "campaign_bid_strategy",
	"ad_set_name", "ad_set_status", "ad_set_optimization_goal", "ad_set_billing_event",
	"age_targeting", "gender_targeting", "location_targeting",
	"ad_name", "ad_status", "ad_preview_link",
	"changed_from", "changed_to",
	"account_id", "account_name", "object_name", "object_id",
	"object_type_raw", "raw_event_type", "fetched_at",
}
