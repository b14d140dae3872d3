package model

import (
	"github.com/riskops-lab/moirai/pkg/domain/types"
)

// Relation is a directed, weighted edge from the owning risk to another
// risk. The relation set over a roster forms a directed, possibly cyclic
// graph keyed by risk ID.
type Relation struct {
	RiskID       types.RiskID       `json:"riskId"`
	RelationType types.RelationType `json:"relationType"`
	Strength     float64            `json:"strength"`
}

// Risk is a project risk definition. Records are immutable once analysis
// begins; the propagation engine raises Probability only on working copies.
type Risk struct {
	ID          types.RiskID `json:"id"`
	Title       string       `json:"title"`
	Probability float64      `json:"probability"`

	TimeImpactPercent  float64 `json:"timeImpactPercent"`
	CostImpactPercent  float64 `json:"costImpactPercent"`
	ScopeImpactPercent float64 `json:"scopeImpactPercent"`

	Category     string `json:"category,omitempty"`
	Trigger      string `json:"trigger,omitempty"`
	ResponsePlan string `json:"responsePlan,omitempty"`

	AffectedActivities []types.ActivityID `json:"affectedActivities"`
	RelatedRisks       []Relation         `json:"relatedRisks,omitempty"`
}

// Clone returns a deep copy of the risk
func (r *Risk) Clone() *Risk {
	copied := *r
	if r.AffectedActivities != nil {
		copied.AffectedActivities = make([]types.ActivityID, len(r.AffectedActivities))
		copy(copied.AffectedActivities, r.AffectedActivities)
	}
	if r.RelatedRisks != nil {
		copied.RelatedRisks = make([]Relation, len(r.RelatedRisks))
		copy(copied.RelatedRisks, r.RelatedRisks)
	}
	return &copied
}

// CloneRisks returns a deep copy of a risk slice
func CloneRisks(risks []Risk) []Risk {
	copied := make([]Risk, len(risks))
	for i := range risks {
		copied[i] = *risks[i].Clone()
	}
	return copied
}
