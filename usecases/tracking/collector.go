package tracking

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/adsradar/adsradar-backend/models"
	"github.com/adsradar/adsradar-backend/utils"
)

// Event kinds produced by billing, review and auto-optimization machinery.
// Never human activity.
var excludedEventTypes = map[string]struct{}{
	"ad_account_update_spend_limit":    {},
	"ad_account_reset_spend_limit":     {},
	"ad_account_billing_charge":        {},
	"ad_account_billing_charge_failed": {},
	"ad_account_billing_decline":       {},
	"ad_review_approved":               {},
	"ad_review_declined":               {},
	"automatic_placement_optimization": {},
	"campaign_budget_optimization":     {},
	"auto_bid_adjustment":              {},
	"delivery_insights_notification":   {},
}

// Action verbs that mark an event as human-initiated regardless of actor.
var includedActionHints = []string{
	"create", "update", "delete", "pause", "resume", "archive",
	"edit", "change", "modify", "activate", "deactivate",
}

// Actor names used by the platform's own automation.
var automatedActors = map[string]struct{}{
	"meta":      {},
	"facebook":  {},
	"system":    {},
	"automated": {},
}

// isHumanActivity applies the inclusion filter. It is deliberately
// permissive: when in doubt an event is kept.
func isHumanActivity(activity models.Activity) bool {
	eventType := strings.ToLower(activity.EventType)
	if _, excluded := excludedEventTypes[eventType]; excluded {
		return false
	}

	translated := strings.ToLower(activity.TranslatedEventType)
	for _, hint := range includedActionHints {
		if strings.Contains(eventType, hint) || strings.Contains(translated, hint) {
			return true
		}
	}

	if activity.ActorName == "" {
		return false
	}
	_, automated := automatedActors[strings.ToLower(activity.ActorName)]
	return !automated
}

type accountCollectResult struct {
	activities models.AccountActivities
	failed     bool
}

// collectActivities walks every account's activity feed concurrently over a
// bounded worker pool, publishing per-account results onto a completion
// channel that the single aggregating reader drains. Accounts whose
// pagination fails contribute whatever pages were fetched before the
// failure; completion order carries no meaning since rows are sorted by
// timestamp downstream.
func (uc *TrackerUsecase) collectActivities(ctx context.Context, accounts []models.AdAccount,
	since time.Time, report *models.RunReport,
) []models.AccountActivities {
	logger := utils.LoggerFromContext(ctx)

	results := make(chan accountCollectResult)
	go func() {
		defer close(results)

		group := errgroup.Group{}
		group.SetLimit(uc.workers)
		for _, account := range accounts {
			account := account
			group.Go(func() error {
				activities, err := uc.activitySource.ListActivities(ctx, account.Id, since)
				if err != nil {
					logger.WarnContext(ctx, "account activity collection degraded",
						"account_id", account.Id, "error", err.Error())
				}

				kept := make([]models.Activity, 0, len(activities))
				for _, activity := range activities {
					if isHumanActivity(activity) {
						kept = append(kept, activity)
					}
				}
				results <- accountCollectResult{
					activities: models.AccountActivities{Account: account, Activities: kept},
					failed:     err != nil,
				}
				return nil
			})
		}
		_ = group.Wait()
	}()

	// Counters are only touched here, on the aggregating side.
	var collected []models.AccountActivities
	for result := range results {
		if result.failed {
			report.AccountErrors++
		}
		if len(result.activities.Activities) > 0 {
			collected = append(collected, result.activities)
		}
	}
	return collected
}
