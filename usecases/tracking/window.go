package tracking

import "time"

// fetchWindowBufferHours keeps consecutive incremental windows overlapping,
// trading some duplicate fetching for safety against clock skew and missed
// runs. Duplicates are absorbed by the merger.
const fetchWindowBufferHours = 2

// PlanFetchWindow computes the lookback window in hours. Without a prior
// watermark the default window is used (first run). Otherwise the window
// spans the whole gap since the last persisted activity, plus the buffer.
func PlanFetchWindow(now time.Time, lastEventTime *time.Time, defaultHours int) int {
	if lastEventTime == nil || lastEventTime.IsZero() {
		return defaultHours
	}

	elapsed := now.Sub(*lastEventTime)
	if elapsed < 0 {
		elapsed = 0
	}
	return int(elapsed.Hours()) + fetchWindowBufferHours
}
