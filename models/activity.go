package models

import (
	"encoding/json"
	"time"
)

// AdAccount is one advertising account the tracker has access to.
type AdAccount struct {
	Id           string
	Name         string
	BusinessName string
	Currency     string
	Timezone     string
}

// Brand returns the display name used for brand matching: the business name
// when present, the account name otherwise.
func (a AdAccount) Brand() string {
	if a.BusinessName != "" {
		return a.BusinessName
	}
	return a.Name
}

// Activity is one change-activity record from an account's feed. Immutable
// once collected.
type Activity struct {
	EventType           string
	TranslatedEventType string
	ActorName           string
	ObjectId            string
	ObjectName          string
	ObjectType          string
	EventTime           time.Time
	// ExtraData is the raw before/after change payload, kept verbatim.
	ExtraData json.RawMessage
}

// Action returns the human-readable action label, falling back to the raw
// event type.
func (a Activity) Action() string {
	if a.TranslatedEventType != "" {
		return a.TranslatedEventType
	}
	if a.EventType != "" {
		return a.EventType
	}
	return "Unknown"
}

// AccountActivities groups the activities collected for one account.
type AccountActivities struct {
	Account    AdAccount
	Activities []Activity
}
