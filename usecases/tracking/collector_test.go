package tracking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adsradar/adsradar-backend/models"
)

func TestIsHumanActivity(t *testing.T) {
	tests := []struct {
		name     string
		activity models.Activity
		want     bool
	}{
		{
			name:     "billing event is excluded even with a human actor",
			activity: models.Activity{EventType: "ad_account_billing_charge", ActorName: "Jane Doe"},
			want:     false,
		},
		{
			name:     "action verb in event type wins over automated actor",
			activity: models.Activity{EventType: "update_campaign_budget", ActorName: "Meta"},
			want:     true,
		},
		{
			name:     "action verb in translated label",
			activity: models.Activity{EventType: "ad_status_event", TranslatedEventType: "Ad paused"},
			want:     true,
		},
		{
			name:     "no verb but a human actor",
			activity: models.Activity{EventType: "budget_notification", ActorName: "Jane Doe"},
			want:     true,
		},
		{
			name:     "no verb and an automated actor",
			activity: models.Activity{EventType: "budget_notification", ActorName: "System"},
			want:     false,
		},
		{
			name:     "no verb and no actor",
			activity: models.Activity{EventType: "budget_notification"},
			want:     false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isHumanActivity(tt.activity))
		})
	}
}

func TestCollectActivities(t *testing.T) {
	source := newFakeActivitySource()
	source.accounts = []models.AdAccount{
		{Id: "act_1", Name: "One"},
		{Id: "act_2", Name: "Two"},
		{Id: "act_3", Name: "Three"},
	}
	source.activities["act_1"] = []models.Activity{
		{EventType: "update_campaign", ActorName: "Jane"},
		{EventType: "ad_account_billing_charge", ActorName: "Jane"},
	}
	// act_2 fails mid-pagination with one page already fetched.
	source.activities["act_2"] = []models.Activity{
		{EventType: "create_ad", ActorName: "John"},
	}
	source.activityErr["act_2"] = errUpstream
	// act_3 only has automated noise.
	source.activities["act_3"] = []models.Activity{
		{EventType: "budget_notification", ActorName: "System"},
	}

	uc, err := NewTrackerUsecase(source, &fakeBrandSource{}, &fakeRowStore{},
		TrackerOptions{Workers: 2})
	require.NoError(t, err)

	report := models.NewRunReport(models.RunModeReplace, time.Now())
	collected := uc.collectActivities(context.Background(), source.accounts, time.Now(), report)

	assert.Equal(t, 1, report.AccountErrors)
	require.Len(t, collected, 2)

	byAccount := make(map[string][]models.Activity)
	for _, account := range collected {
		byAccount[account.Account.Id] = account.Activities
	}
	assert.Len(t, byAccount["act_1"], 1, "billing noise must be filtered out")
	assert.Len(t, byAccount["act_2"], 1, "partial pages from a failed account are kept")
	assert.NotContains(t, byAccount, "act_3")
}
