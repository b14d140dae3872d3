package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// ActivityLevel distinguishes grouping artifacts from schedulable units
type ActivityLevel int

const (
	// LevelArtifact is a pure grouping node: no dates, no cost, never
	// contributes to duration/cost sums
	LevelArtifact ActivityLevel = 1

	// LevelTask is a schedulable unit with start/end dates and cost
	LevelTask ActivityLevel = 2
)

// Validate checks if the ActivityLevel is a known level
func (l ActivityLevel) Validate() error {
	switch l {
	case LevelArtifact, LevelTask:
		return nil
	default:
		return goerr.New("activity level must be 1 (artifact) or 2 (task)", goerr.V("level", int(l)))
	}
}

// Schedulable reports whether activities of this level carry dates and cost
func (l ActivityLevel) Schedulable() bool {
	return l == LevelTask
}

// String returns a human-readable name for the level
func (l ActivityLevel) String() string {
	switch l {
	case LevelArtifact:
		return "artifact"
	case LevelTask:
		return "task"
	default:
		return "unknown"
	}
}
