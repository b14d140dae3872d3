package model

import (
	"github.com/riskops-lab/moirai/pkg/domain/types"
)

// Activity is a schedule node. Level-1 activities ("artifacts") are pure
// grouping nodes; level-2 activities carry dates and cost. DurationDays and
// BaselineCost are derived once per analysis run by the enricher and are
// treated as an immutable snapshot afterwards.
type Activity struct {
	ID    types.ActivityID    `json:"id"`
	Title string              `json:"title"`
	Level types.ActivityLevel `json:"level"`

	// Start and End are calendar dates ("2006-01-02" or RFC3339).
	// Empty or malformed dates degrade to a zero duration.
	Start string  `json:"start,omitempty"`
	End   string  `json:"end,omitempty"`
	Cost  float64 `json:"cost"`

	// Derived fields, populated by enrich.Activities
	DurationDays float64 `json:"durationDays"`
	BaselineCost float64 `json:"baselineCost"`
}

// Clone returns a deep copy of the activity
func (a *Activity) Clone() *Activity {
	copied := *a
	return &copied
}

// CloneActivities returns a deep copy of an activity slice
func CloneActivities(activities []Activity) []Activity {
	copied := make([]Activity, len(activities))
	copy(copied, activities)
	return copied
}
