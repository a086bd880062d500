package tracking

import (
	"sort"

	"github.com/hashicorp/go-set/v2"

	"github.com/adsradar/adsradar-backend/models"
)

// mergeRows deduplicates the freshly fetched rows against the persisted
// set using the composite identity key and returns the combined set sorted
// by timestamp descending, plus the number of rows that survived. Existing
// rows are kept as-is, never overwritten; merging the same batch twice
// adds nothing the second time.
func mergeRows(persisted, fresh []models.TrackedRow) ([]models.TrackedRow, int) {
	seen := set.New[string](len(persisted))
	for _, row := range persisted {
		seen.Insert(row.CompositeKey())
	}

	merged := make([]models.TrackedRow, len(persisted), len(persisted)+len(fresh))
	copy(merged, persisted)

	added := 0
	for _, row := range fresh {
		if seen.Insert(row.CompositeKey()) {
			merged = append(merged, row)
			added++
		}
	}

	sortRowsByTimestampDesc(merged)
	return merged, added
}

// sortRowsByTimestampDesc orders rows newest first. The row timestamp
// format sorts lexicographically in chronological order.
func sortRowsByTimestampDesc(rows []models.TrackedRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Timestamp > rows[j].Timestamp
	})
}
