package httpmodels

import (
	"encoding/json"
	"time"

	"github.com/guregu/null/v5"

	"github.com/adsradar/adsradar-backend/models"
)

// HTTPPaging is the cursor block returned by every paginated endpoint.
// Next is the full URL of the following page, absent on the last one.
type HTTPPaging struct {
	Next string `json:"next"`
}

type HTTPAdAccount struct {
	Id           string `json:"id"`
	Name         string `json:"name"`
	BusinessName string `json:"business_name"`
	Currency     string `json:"currency"`
	TimezoneName string `json:"timezone_name"`
}

type HTTPAdAccountPage struct {
	Data   []HTTPAdAccount `json:"data"`
	Paging HTTPPaging      `json:"paging"`
}

func AdaptAdAccount(account HTTPAdAccount) models.AdAccount {
	return models.AdAccount{
		Id:           account.Id,
		Name:         account.Name,
		BusinessName: account.BusinessName,
		Currency:     account.Currency,
		Timezone:     account.TimezoneName,
	}
}

type HTTPActivity struct {
	EventType           string          `json:"event_type"`
	TranslatedEventType string          `json:"translated_event_type"`
	EventTime           string          `json:"event_time"`
	ActorName           string          `json:"actor_name"`
	ObjectId            string          `json:"object_id"`
	ObjectName          string          `json:"object_name"`
	ObjectType          string          `json:"object_type"`
	ExtraData           json.RawMessage `json:"extra_data"`
}

type HTTPActivityPage struct {
	Data   []HTTPActivity `json:"data"`
	Paging HTTPPaging     `json:"paging"`
}

// eventTimeLayouts are tried in order; the feed has shipped all three over
// time.
var eventTimeLayouts = []string{
	"2006-01-02T15:04:05-0700",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

func parseEventTime(raw string) time.Time {
	for _, layout := range eventTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

func AdaptActivity(activity HTTPActivity) models.Activity {
	return models.Activity{
		EventType:           activity.EventType,
		TranslatedEventType: activity.TranslatedEventType,
		ActorName:           activity.ActorName,
		ObjectId:            activity.ObjectId,
		ObjectName:          activity.ObjectName,
		ObjectType:          activity.ObjectType,
		EventTime:           parseEventTime(activity.EventTime),
		ExtraData:           activity.ExtraData,
	}
}

// HTTPBatchSubRequest is one sub-request of a multiplexed batch call.
type HTTPBatchSubRequest struct {
	Method      string `json:"method"`
	RelativeUrl string `json:"relative_url"`
}

// HTTPBatchSubResponse is one ordered result of a multiplexed batch call.
// Code is the synthetic per-item status; Body is the JSON-encoded payload
// as a string.
type HTTPBatchSubResponse struct {
	Code int    `json:"code"`
	Body string `json:"body"`
}

type HTTPCampaignDetails struct {
	Id              string      `json:"id"`
	Name            string      `json:"name"`
	Status          string      `json:"status"`
	EffectiveStatus string      `json:"effective_status"`
	Objective       string      `json:"objective"`
	BidStrategy     string      `json:"bid_strategy"`
	DailyBudget     null.String `json:"daily_budget"`
	LifetimeBudget  null.String `json:"lifetime_budget"`
}

func AdaptCampaignDetails(campaign HTTPCampaignDetails) models.CampaignDetails {
	return models.CampaignDetails{
		Id:              campaign.Id,
		Name:            campaign.Name,
		Status:          campaign.Status,
		EffectiveStatus: campaign.EffectiveStatus,
		Objective:       campaign.Objective,
		BidStrategy:     campaign.BidStrategy,
		DailyBudget:     campaign.DailyBudget.ValueOrZero(),
		LifetimeBudget:  campaign.LifetimeBudget.ValueOrZero(),
	}
}

type HTTPTargeting struct {
	AgeMin  null.Int `json:"age_min"`
	AgeMax  null.Int `json:"age_max"`
	Genders []int    `json:"genders"`

	GeoLocations struct {
		Countries []string          `json:"countries"`
		Cities    []json.RawMessage `json:"cities"`
		Regions   []json.RawMessage `json:"regions"`
	} `json:"geo_locations"`
}

type HTTPAdSetDetails struct {
	Id               string         `json:"id"`
	Name             string         `json:"name"`
	Status           string         `json:"status"`
	EffectiveStatus  string         `json:"effective_status"`
	CampaignId       string         `json:"campaign_id"`
	OptimizationGoal string         `json:"optimization_goal"`
	BillingEvent     string         `json:"billing_event"`
	Targeting        *HTTPTargeting `json:"targeting"`
}

func AdaptAdSetDetails(adSet HTTPAdSetDetails) models.AdSetDetails {
	out := models.AdSetDetails{
		Id:               adSet.Id,
		Name:             adSet.Name,
		Status:           adSet.Status,
		EffectiveStatus:  adSet.EffectiveStatus,
		CampaignId:       adSet.CampaignId,
		OptimizationGoal: adSet.OptimizationGoal,
		BillingEvent:     adSet.BillingEvent,
	}
	if adSet.Targeting != nil {
		out.Targeting = &models.AdSetTargeting{
			AgeMin:      int(adSet.Targeting.AgeMin.ValueOrZero()),
			AgeMax:      int(adSet.Targeting.AgeMax.ValueOrZero()),
			Genders:     adSet.Targeting.Genders,
			Countries:   adSet.Targeting.GeoLocations.Countries,
			CityCount:   len(adSet.Targeting.GeoLocations.Cities),
			RegionCount: len(adSet.Targeting.GeoLocations.Regions),
		}
	}
	return out
}

type HTTPAdDetails struct {
	Id                   string `json:"id"`
	Name                 string `json:"name"`
	Status               string `json:"status"`
	EffectiveStatus      string `json:"effective_status"`
	AdSetId              string `json:"adset_id"`
	PreviewShareableLink string `json:"preview_shareable_link"`
}

func AdaptAdDetails(ad HTTPAdDetails) models.AdDetails {
	return models.AdDetails{
		Id:              ad.Id,
		Name:            ad.Name,
		Status:          ad.Status,
		EffectiveStatus: ad.EffectiveStatus,
		AdSetId:         ad.AdSetId,
		PreviewLink:     ad.PreviewShareableLink,
	}
}
