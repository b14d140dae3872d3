package enrich

import (
	"math"
	"time"

	"github.com/riskops-lab/moirai/pkg/domain/model"
)

// Accepted calendar date layouts, tried in order
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// Activities computes the derived fields of every activity: DurationDays
// and the BaselineCost snapshot. It is a pure transform and idempotent —
// re-enriching reproduces the same values from the same source fields.
//
// Malformed or missing dates degrade to a zero duration rather than
// failing, so a single bad activity never aborts an analysis run.
// Validation is expected to have flagged it already.
func Activities(activities []model.Activity) []model.Activity {
	enriched := model.CloneActivities(activities)
	for i := range enriched {
		enriched[i].DurationDays = durationDays(&enriched[i])
		enriched[i].BaselineCost = enriched[i].Cost
	}
	return enriched
}

func durationDays(a *model.Activity) float64 {
	if !a.Level.Schedulable() {
		return 0
	}

	start, ok := ParseDate(a.Start)
	if !ok {
		return 0
	}
	end, ok := ParseDate(a.End)
	if !ok {
		return 0
	}

	days := math.Ceil(end.Sub(start).Hours() / 24)
	return math.Max(0, days)
}

// ParseDate parses a calendar date in any accepted layout
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
