package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompositeKey(t *testing.T) {
	row := TrackedRow{
		ActivityRow: ActivityRow{
			AccountId:  "act_123",
			ObjectName: "Summer Sale",
			Timestamp:  "2026-08-30 14:05:00",
			Action:     "Campaign updated",
		},
	}
	assert.Equal(t, "act_123_Summer Sale_2026-08-30 14:05:00_Campaign updated", row.CompositeKey())
}

func TestCompositeKeyIgnoresEnrichment(t *testing.T) {
	base := TrackedRow{
		ActivityRow: ActivityRow{
			AccountId:  "act_123",
			ObjectName: "Summer Sale",
			Timestamp:  "2026-08-30 14:05:00",
			Action:     "Campaign updated",
		},
	}
	enriched := base
	enriched.CampaignName = "Summer Sale 2026"
	enriched.Match = BrandMatch{MatchedBrand: "Acme"}

	assert.Equal(t, base.CompositeKey(), enriched.CompositeKey())
}

func TestRecordMatchesHeaderWidth(t *testing.T) {
	row := TrackedRow{ActivityRow: NewActivityRow()}
	assert.Len(t, row.Record(), len(TrackedRowHeader()))
}

func TestNewActivityRowSentinels(t *testing.T) {
	row := NewActivityRow()
	assert.Equal(t, HierarchyLevelUndetermined, row.HierarchyLevel)
	assert.Equal(t, NotAvailable, row.CampaignName)
	assert.Equal(t, NotAvailable, row.AgeTargeting)
	assert.Equal(t, NotAvailable, row.ChangedTo)
}
