package models

import (
	"time"

	"github.com/google/uuid"
)

// RunMode selects how a run writes to the row store.
type RunMode string

const (
	// RunModeReplace overwrites the store with the freshly fetched rows.
	RunModeReplace RunMode = "replace"
	// RunModeAppend plans an incremental window, deduplicates against the
	// store's current contents and rewrites the union.
	RunModeAppend RunMode = "append"
)

// RunReport carries the best-effort counters of one run. Partial data never
// fails a run; it only shows up here.
type RunReport struct {
	RunId       uuid.UUID
	Mode        RunMode
	WindowHours int

	AccountCount  int
	ActivityCount int
	RowCount      int
	NewRowCount   int

	SkippedObjectIds []string
	CacheMisses      map[ObjectTier]int
	AccountErrors    int
	ChunkErrors      int
	ResolutionErrors int
	UnmatchedBrands  int

	StartedAt  time.Time
	FinishedAt time.Time
}

func NewRunReport(mode RunMode, startedAt time.Time) *RunReport {
	return &RunReport{
		RunId:       uuid.New(),
		Mode:        mode,
		CacheMisses: make(map[ObjectTier]int),
		StartedAt:   startedAt,
	}
}

// RecordSkippedObject tracks an id that failed validation and was never
// fetched.
func (r *RunReport) RecordSkippedObject(tier ObjectTier, id string) {
	r.SkippedObjectIds = append(r.SkippedObjectIds, tier.String()+":"+id)
}

// RecordCacheMisses tracks ids an enrichment chunk could not resolve.
func (r *RunReport) RecordCacheMisses(tier ObjectTier, count int) {
	r.CacheMisses[tier] += count
}

func (r RunReport) TotalCacheMisses() int {
	total := 0
	for _, count := range r.CacheMisses {
		total += count
	}
	return total
}
