package httpmodels

import (
	"strings"

	"github.com/adsradar/adsradar-backend/models"
)

// HTTPBrandRecordPage is one page of the offset-paginated reference table.
// Offset is the continuation token, absent on the last page.
type HTTPBrandRecordPage struct {
	Records []HTTPBrandRecord `json:"records"`
	Offset  string            `json:"offset"`
}

type HTTPBrandRecord struct {
	Id     string         `json:"id"`
	Fields map[string]any `json:"fields"`
}

// Column spellings observed in the reference table, in preference order.
var (
	brandColumns        = []string{"Brand", "Brands", "Brand Name", "brand", "brands"}
	fbManagerColumns    = []string{"FB Manager", "FB_Manager", "Facebook Manager", "fb_manager"}
	brandManagerColumns = []string{"Brand Manager", "Brand_Manager", "brand_manager"}
	teamColumns         = []string{"Current Team", "Team", "Current_Team", "team"}
)

func firstStringField(fields map[string]any, candidates []string) string {
	for _, name := range candidates {
		if value, ok := fields[name].(string); ok {
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

// AdaptBrandRecord extracts a brand mapping from a record's free-form field
// set. Returns false when the record has no usable brand name.
func AdaptBrandRecord(record HTTPBrandRecord) (models.BrandMapping, bool) {
	brand := firstStringField(record.Fields, brandColumns)
	if brand == "" {
		return models.BrandMapping{}, false
	}
	return models.BrandMapping{
		Brand:        brand,
		FBManager:    firstStringField(record.Fields, fbManagerColumns),
		BrandManager: firstStringField(record.Fields, brandManagerColumns),
		Team:         firstStringField(record.Fields, teamColumns),
	}, true
}
