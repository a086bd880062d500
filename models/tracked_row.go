package models

import (
	"fmt"
	"time"
)

// NotAvailable is the sentinel placed in every row field whose value could
// not be resolved. Rows never carry null or absent fields.
const NotAvailable = "N/A"

// RowTimestampLayout is the timestamp format persisted on rows. It sorts
// lexicographically in chronological order.
const RowTimestampLayout = "2006-01-02 15:04:05"

// ActivityRow is one activity flattened with the resolved ancestor
// attributes at every tier it could reach.
type ActivityRow struct {
	Brand       string
	AccountId   string
	AccountName string

	Actor          string
	Action         string
	HierarchyLevel string
	Timestamp      string

	CampaignName        string
	CampaignStatus      string
	CampaignObjective   string
	CampaignBudgetType  string
	CampaignBudget      string
	CampaignBidStrategy string

	AdSetName             string
	AdSetStatus           string
	AdSetOptimizationGoal string
	AdSetBillingEvent     string
	AgeTargeting          string
	GenderTargeting       string
	LocationTargeting     string

	AdName        string
	AdStatus      string
	AdPreviewLink string

	ChangedFrom string
	ChangedTo   string

	ObjectName    string
	ObjectId      string
	ObjectTypeRaw string
	RawEventType  string
}

// NewActivityRow returns a row with every resolvable field set to the
// sentinel default.
func NewActivityRow() ActivityRow {
	return ActivityRow{
		HierarchyLevel:      HierarchyLevelUndetermined,
		CampaignName:        NotAvailable,
		CampaignStatus:      NotAvailable,
		CampaignObjective:   NotAvailable,
		CampaignBudgetType:  NotAvailable,
		CampaignBudget:      NotAvailable,
		CampaignBidStrategy: NotAvailable,

		AdSetName:             NotAvailable,
		AdSetStatus:           NotAvailable,
		AdSetOptimizationGoal: NotAvailable,
		AdSetBillingEvent:     NotAvailable,
		AgeTargeting:          NotAvailable,
		GenderTargeting:       NotAvailable,
		LocationTargeting:     NotAvailable,

		AdName:        NotAvailable,
		AdStatus:      NotAvailable,
		AdPreviewLink: NotAvailable,

		ChangedFrom: NotAvailable,
		ChangedTo:   NotAvailable,
	}
}

// TrackedRow is a persisted row: an enriched activity plus its brand match
// and the time it was fetched.
type TrackedRow struct {
	ActivityRow
	Match     BrandMatch
	FetchedAt time.Time
}

// CompositeKey identifies a logically distinct activity for deduplication.
// Two rows with equal keys are treated as the same activity. A bulk action
// touching several same-named objects within the same second collides on
// this key; the upstream feed does not disambiguate that case.
func (r TrackedRow) CompositeKey() string {
	return fmt.Sprintf("%s_%s_%s_%s", r.AccountId, r.ObjectName, r.Timestamp, r.Action)
}

// TrackedRowHeader is the column order used by the CSV export and mirrored
// by the row store.
func TrackedRowHeader() []string {
	return []string{
		"Brand", "Matched_Brand", "FB_Manager", "Brand_Manager", "Current_Team",
		"Actor", "Action", "Hierarchy_Level", "Timestamp",
		"Campaign_Name", "Campaign_Status", "Campaign_Objective",
		"Campaign_Budget_Type", "Campaign_Budget", "Campaign_Bid_Strategy",
		"AdSet_Name", "AdSet_Status", "AdSet_Optimization_Goal", "AdSet_Billing_Event",
		"Age_Targeting", "Gender_Targeting", "Location_Targeting",
		"Ad_Name", "Ad_Status", "Ad_Preview_Link",
		"Changed_From", "Changed_To",
		"Account_ID", "Account_Name",
		"Object_Name", "Object_ID", "Object_Type_Raw", "Raw_Event_Type", "Fetch_Date",
	}
}

// Record flattens the row in TrackedRowHeader order.
func (r TrackedRow) Record() []string {
	return []string{
		r.Brand, r.Match.MatchedBrand, r.Match.FBManager, r.Match.BrandManager, r.Match.Team,
		r.Actor, r.Action, r.HierarchyLevel, r.Timestamp,
		r.CampaignName, r.CampaignStatus, r.CampaignObjective,
		r.CampaignBudgetType, r.CampaignBudget, r.CampaignBidStrategy,
		r.AdSetName, r.AdSetStatus, r.AdSetOptimizationGoal, r.AdSetBillingEvent,
		r.AgeTargeting, r.GenderTargeting, r.LocationTargeting,
		r.AdName, r.AdStatus, r.AdPreviewLink,
		r.ChangedFrom, r.ChangedTo,
		r.AccountId, r.AccountName,
		r.ObjectName, r.ObjectId, r.ObjectTypeRaw, r.RawEventType,
		r.FetchedAt.Format(RowTimestampLayout),
	}
}
