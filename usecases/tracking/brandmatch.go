package tracking

import (
	"sort"
	"strings"
	"time"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/adsradar/adsradar-backend/models"
	"github.com/adsradar/adsradar-backend/pure_utils"
)

const (
	// Containment only counts as a match when both normalized names are at
	// least this long; shorter names produce too many false positives.
	containmentMinLength = 5

	matchCacheSize = 2048
	matchCacheTTL  = time.Hour
)

// BrandMatcher matches free-text brand names against the reference table.
// Built once per run from the reference records, immutable thereafter.
type BrandMatcher struct {
	byNormalized map[string]models.BrandMapping
	// sortedKeys fixes the containment scan order so that match selection
	// is deterministic and reproducible.
	sortedKeys []string

	cache  *expirable.LRU[string, models.BrandMatch]
	metric *metrics.JaroWinkler
}

func NewBrandMatcher(mappings []models.BrandMapping) *BrandMatcher {
	matcher := &BrandMatcher{
		byNormalized: make(map[string]models.BrandMapping, len(mappings)),
		cache:        expirable.NewLRU[string, models.BrandMatch](matchCacheSize, nil, matchCacheTTL),
		metric:       metrics.NewJaroWinkler(),
	}

	for _, mapping := range mappings {
		normalized := pure_utils.NormalizeBrandName(mapping.Brand)
		if normalized == "" {
			continue
		}
		matcher.byNormalized[normalized] = mapping
	}

	matcher.sortedKeys = make([]string, 0, len(matcher.byNormalized))
	for key := range matcher.byNormalized {
		matcher.sortedKeys = append(matcher.sortedKeys, key)
	}
	sort.Strings(matcher.sortedKeys)

	return matcher
}

// Match finds the reference record for a brand name: exact normalized
// match first, then a containment scan over the sorted keys where the
// candidate with the highest string similarity wins. No match yields the
// explicit Unknown identity. Results are memoized.
func (m *BrandMatcher) Match(brandName string) models.BrandMatch {
	normalized := pure_utils.NormalizeBrandName(brandName)
	if normalized == "" {
		return models.UnknownBrandMatch()
	}

	if cached, ok := m.cache.Get(normalized); ok {
		return cached
	}

	match := m.findMatch(normalized)
	m.cache.Add(normalized, match)
	return match
}

func (m *BrandMatcher) findMatch(normalized string) models.BrandMatch {
	if mapping, ok := m.byNormalized[normalized]; ok {
		return models.MatchFromMapping(mapping)
	}

	if len(normalized) < containmentMinLength {
		return models.UnknownBrandMatch()
	}

	bestScore := -1.0
	var best *models.BrandMapping
	for _, key := range m.sortedKeys {
		if len(key) < containmentMinLength {
			continue
		}
		if !strings.Contains(key, normalized) && !strings.Contains(normalized, key) {
			continue
		}
		// Ties keep the earlier key, so selection stays deterministic.
		if score := strutil.Similarity(normalized, key, m.metric); score > bestScore {
			bestScore = score
			mapping := m.byNormalized[key]
			best = &mapping
		}
	}

	if best == nil {
		return models.UnknownBrandMatch()
	}
	return models.MatchFromMapping(*best)
}
