package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/riskops-lab/moirai/pkg/domain/model"
	"github.com/riskops-lab/moirai/pkg/domain/types"
)

func TestRisk_Clone(t *testing.T) {
	original := model.Risk{
		ID:                 "r1",
		Title:              "Supplier delay",
		Probability:        40,
		TimeImpactPercent:  20,
		AffectedActivities: []types.ActivityID{"a1", "a2"},
		RelatedRisks: []model.Relation{
			{RiskID: "r2", RelationType: types.RelationDependency, Strength: 0.5},
		},
	}

	copied := original.Clone()
	copied.Probability = 90
	copied.AffectedActivities[0] = "a9"
	copied.RelatedRisks[0].Strength = 1.0

	gt.Value(t, original.Probability).Equal(40)
	gt.Value(t, original.AffectedActivities[0]).Equal(types.ActivityID("a1"))
	gt.Value(t, original.RelatedRisks[0].Strength).Equal(0.5)
}

func TestCloneRisks(t *testing.T) {
	roster := []model.Risk{
		{ID: "r1", Probability: 10, AffectedActivities: []types.ActivityID{"a1"}},
		{ID: "r2", Probability: 20},
	}

	copied := model.CloneRisks(roster)
	copied[0].Probability = 99
	copied[0].AffectedActivities[0] = "zz"

	gt.Value(t, roster[0].Probability).Equal(10)
	gt.Value(t, roster[0].AffectedActivities[0]).Equal(types.ActivityID("a1"))
	gt.Array(t, copied).Length(2)
}

func TestAnalysisInput_Clone(t *testing.T) {
	in := model.AnalysisInput{
		Activities: []model.Activity{{ID: "a1", Level: types.LevelTask, Cost: 100}},
		Risks:      []model.Risk{{ID: "r1", Probability: 30}},
	}

	copied := in.Clone()
	copied.Activities[0].Cost = 0
	copied.Risks[0].Probability = 0

	gt.Value(t, in.Activities[0].Cost).Equal(100)
	gt.Value(t, in.Risks[0].Probability).Equal(30)
}
