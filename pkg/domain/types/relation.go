package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// RelationType classifies a directed relation between two risks. Both kinds
// diffuse probability identically; the type is carried for reporting only.
type RelationType string

const (
	RelationDependency RelationType = "dependency"
	RelationConcurrent RelationType = "concurrent"
)

// DefaultRelationStrength is the strength a data-entry layer should apply
// when the user leaves a relation's strength unset.
const DefaultRelationStrength = 0.3

// Validate checks if the RelationType is a known kind
func (r RelationType) Validate() error {
	switch r {
	case RelationDependency, RelationConcurrent:
		return nil
	default:
		return goerr.New("relation type must be dependency or concurrent", goerr.V("type", string(r)))
	}
}

// String returns the string representation of RelationType
func (r RelationType) String() string {
	return string(r)
}
