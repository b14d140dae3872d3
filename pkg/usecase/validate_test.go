package usecase_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/riskops-lab/moirai/pkg/domain/model"
	"github.com/riskops-lab/moirai/pkg/domain/types"
	"github.com/riskops-lab/moirai/pkg/usecase"
)

func validInput() *model.AnalysisInput {
	return &model.AnalysisInput{
		Activities: []model.Activity{
			{ID: "a1", Title: "Design", Level: types.LevelTask, Start: "2025-03-01", End: "2025-03-11", Cost: 1000},
			{ID: "a2", Title: "Build", Level: types.LevelTask, Start: "2025-03-11", End: "2025-03-16", Cost: 500},
			{ID: "m1", Title: "Release", Level: types.LevelArtifact},
		},
		Risks: []model.Risk{
			{
				ID: "r1", Title: "Supplier delay", Probability: 50,
				TimeImpactPercent: 20, CostImpactPercent: 10,
				AffectedActivities: []types.ActivityID{"a1", "a2"},
				RelatedRisks: []model.Relation{
					{RiskID: "r2", RelationType: types.RelationDependency, Strength: 0.5},
				},
			},
			{
				ID: "r2", Title: "Scope creep", Probability: 30,
				ScopeImpactPercent: 15,
				AffectedActivities: []types.ActivityID{"a2", "m1"},
			},
		},
	}
}

func fieldsOf(errs []model.ValidationError) []string {
	fields := make([]string, len(errs))
	for i, e := range errs {
		fields[i] = e.Field
	}
	return fields
}

func TestValidateInput(t *testing.T) {
	t.Run("valid bundle has no findings", func(t *testing.T) {
		gt.Array(t, usecase.ValidateInput(validInput())).Length(0)
	})

	t.Run("missing required fields", func(t *testing.T) {
		in := validInput()
		in.Activities[0].ID = ""
		in.Activities[1].Title = ""
		in.Risks[0].Title = ""

		fields := fieldsOf(usecase.ValidateInput(in))
		gt.Array(t, fields).Has("activities[0].id")
		gt.Array(t, fields).Has("activities[1].title")
		gt.Array(t, fields).Has("risks[0].title")
		// a1 no longer exists, so r1's references break too
		gt.Array(t, fields).Has("risks[0].affectedActivities[0]")
	})

	t.Run("duplicate IDs", func(t *testing.T) {
		in := validInput()
		in.Activities[1].ID = "a1"
		in.Risks[1].ID = "r1"

		fields := fieldsOf(usecase.ValidateInput(in))
		gt.Array(t, fields).Has("activities[1].id")
		gt.Array(t, fields).Has("risks[1].id")
	})

	t.Run("range checks", func(t *testing.T) {
		in := validInput()
		in.Activities[0].Cost = -1
		in.Activities[1].Level = 7
		in.Risks[0].Probability = 120
		in.Risks[0].TimeImpactPercent = -5
		in.Risks[0].CostImpactPercent = -5
		in.Risks[0].RelatedRisks[0].Strength = 1.5

		fields := fieldsOf(usecase.ValidateInput(in))
		gt.Array(t, fields).Has("activities[0].cost")
		gt.Array(t, fields).Has("activities[1].level")
		gt.Array(t, fields).Has("risks[0].probability")
		gt.Array(t, fields).Has("risks[0].timeImpactPercent")
		gt.Array(t, fields).Has("risks[0].costImpactPercent")
		gt.Array(t, fields).Has("risks[0].relatedRisks[0].strength")
	})

	t.Run("chronology", func(t *testing.T) {
		in := validInput()
		in.Activities[0].Start = "2025-03-20"

		fields := fieldsOf(usecase.ValidateInput(in))
		gt.Array(t, fields).Has("activities[0].end")
	})

	t.Run("unparsable dates are reported but stay non-fatal", func(t *testing.T) {
		in := validInput()
		in.Activities[0].Start = "soon"

		fields := fieldsOf(usecase.ValidateInput(in))
		gt.Array(t, fields).Has("activities[0].start")
	})

	t.Run("referential integrity", func(t *testing.T) {
		in := validInput()
		in.Risks[0].AffectedActivities = []types.ActivityID{"ghost"}
		in.Risks[1].RelatedRisks = []model.Relation{
			{RiskID: "nobody", RelationType: types.RelationConcurrent, Strength: 0.3},
		}

		fields := fieldsOf(usecase.ValidateInput(in))
		gt.Array(t, fields).Has("risks[0].affectedActivities[0]")
		gt.Array(t, fields).Has("risks[1].relatedRisks[0].riskId")
	})

	t.Run("risk must affect at least one activity", func(t *testing.T) {
		in := validInput()
		in.Risks[1].AffectedActivities = nil

		fields := fieldsOf(usecase.ValidateInput(in))
		gt.Array(t, fields).Has("risks[1].affectedActivities")
	})

	t.Run("invalid relation type", func(t *testing.T) {
		in := validInput()
		in.Risks[0].RelatedRisks[0].RelationType = "blocks"

		fields := fieldsOf(usecase.ValidateInput(in))
		gt.Array(t, fields).Has("risks[0].relatedRisks[0].relationType")
	})
}
