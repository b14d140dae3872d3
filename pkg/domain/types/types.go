package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// ActivityID represents a unique identifier for a schedule activity
type ActivityID string

// Validate checks if the ActivityID is valid
func (a ActivityID) Validate() error {
	if a == "" {
		return goerr.New("activity ID cannot be empty")
	}
	return nil
}

// String returns the string representation of ActivityID
func (a ActivityID) String() string {
	return string(a)
}

// RiskID represents a unique identifier for a project risk
type RiskID string

// Validate checks if the RiskID is valid
func (r RiskID) Validate() error {
	if r == "" {
		return goerr.New("risk ID cannot be empty")
	}
	return nil
}

// String returns the string representation of RiskID
func (r RiskID) String() string {
	return string(r)
}
