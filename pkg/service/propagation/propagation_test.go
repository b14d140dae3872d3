package propagation_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/riskops-lab/moirai/pkg/domain/model"
	"github.com/riskops-lab/moirai/pkg/domain/types"
	"github.com/riskops-lab/moirai/pkg/service/propagation"
)

func relation(target types.RiskID, strength float64) model.Relation {
	return model.Relation{RiskID: target, RelationType: types.RelationDependency, Strength: strength}
}

func resultOf(t *testing.T, results []model.PropagationResult, id types.RiskID) model.PropagationResult {
	t.Helper()
	for _, r := range results {
		if r.RiskID == id {
			return r
		}
	}
	t.Fatalf("no propagation result for %s", id)
	return model.PropagationResult{}
}

func TestRelax(t *testing.T) {
	t.Run("single edge raises the target by exactly strength times probability", func(t *testing.T) {
		risks := []model.Risk{
			{ID: "r1", Probability: 80, RelatedRisks: []model.Relation{relation("r2", 0.5)}},
			{ID: "r2", Probability: 30},
		}

		results := propagation.Relax(risks)
		r2 := resultOf(t, results, "r2")
		gt.Value(t, r2.OriginalProbability).Equal(30)
		gt.Value(t, r2.FinalProbability).Equal(70)
		gt.Value(t, resultOf(t, results, "r1").FinalProbability).Equal(80)
	})

	t.Run("clamps at 100", func(t *testing.T) {
		risks := []model.Risk{
			{ID: "r1", Probability: 90, RelatedRisks: []model.Relation{relation("r2", 1.0)}},
			{ID: "r2", Probability: 50},
		}

		results := propagation.Relax(risks)
		gt.Value(t, resultOf(t, results, "r2").FinalProbability).Equal(100)
	})

	t.Run("effects ripple transitively within three passes", func(t *testing.T) {
		risks := []model.Risk{
			{ID: "a", Probability: 80, RelatedRisks: []model.Relation{relation("b", 0.5)}},
			{ID: "b", Probability: 10, RelatedRisks: []model.Relation{relation("c", 0.5)}},
			{ID: "c", Probability: 10},
		}

		results := propagation.Relax(risks)
		// b settles at 10 + 40 = 50; c sees b's raised value: 10 + 25 = 35
		gt.Value(t, resultOf(t, results, "b").FinalProbability).Equal(50)
		gt.Value(t, resultOf(t, results, "c").FinalProbability).Equal(35)
	})

	t.Run("insignificant contributions are ignored", func(t *testing.T) {
		risks := []model.Risk{
			{ID: "r1", Probability: 1, RelatedRisks: []model.Relation{relation("r2", 0.05)}},
			{ID: "r2", Probability: 20},
		}

		results := propagation.Relax(risks)
		gt.Value(t, resultOf(t, results, "r2").FinalProbability).Equal(20)
	})

	t.Run("terminates and stays monotonic on cycles", func(t *testing.T) {
		risks := []model.Risk{
			{ID: "r1", Probability: 40, RelatedRisks: []model.Relation{relation("r2", 0.4)}},
			{ID: "r2", Probability: 40, RelatedRisks: []model.Relation{relation("r1", 0.4)}},
		}

		results := propagation.Relax(risks)
		for _, r := range results {
			gt.Bool(t, r.FinalProbability >= r.OriginalProbability).True()
			gt.Bool(t, r.FinalProbability <= 100).True()
			gt.Array(t, r.Path).Length(0)
		}
	})

	t.Run("does not mutate the input roster", func(t *testing.T) {
		risks := []model.Risk{
			{ID: "r1", Probability: 80, RelatedRisks: []model.Relation{relation("r2", 0.5)}},
			{ID: "r2", Probability: 30},
		}

		_ = propagation.Relax(risks)
		gt.Value(t, risks[1].Probability).Equal(30)
	})

	t.Run("custom pass count limits the ripple", func(t *testing.T) {
		risks := []model.Risk{
			{ID: "a", Probability: 80, RelatedRisks: []model.Relation{relation("b", 0.5)}},
			{ID: "b", Probability: 10, RelatedRisks: []model.Relation{relation("c", 0.5)}},
			{ID: "c", Probability: 10},
		}

		results := propagation.RelaxWith(risks, propagation.Config{Passes: 1, Threshold: 0.1})
		gt.Value(t, resultOf(t, results, "b").FinalProbability).Equal(50)
		// One pass only sees b's pre-relaxation value
		gt.Value(t, resultOf(t, results, "c").FinalProbability).Equal(15)
	})

	t.Run("custom threshold mutes weak edges", func(t *testing.T) {
		risks := []model.Risk{
			{ID: "r1", Probability: 80, RelatedRisks: []model.Relation{relation("r2", 0.5)}},
			{ID: "r2", Probability: 30},
		}

		results := propagation.RelaxWith(risks, propagation.Config{Passes: 3, Threshold: 50})
		gt.Value(t, resultOf(t, results, "r2").FinalProbability).Equal(30)
	})
}

func TestConfigValidate(t *testing.T) {
	gt.NoError(t, propagation.DefaultConfig().Validate())
	gt.Error(t, propagation.Config{Passes: 0, Threshold: 0.1}.Validate())
	gt.Error(t, propagation.Config{Passes: 3, Threshold: -1}.Validate())
}

func TestTrace(t *testing.T) {
	t.Run("records the path from the source", func(t *testing.T) {
		risks := []model.Risk{
			{ID: "a", Probability: 80, RelatedRisks: []model.Relation{relation("b", 0.5)}},
			{ID: "b", Probability: 10, RelatedRisks: []model.Relation{relation("c", 0.5)}},
			{ID: "c", Probability: 10},
		}

		results := propagation.Trace("a", risks)
		gt.Array(t, results).Length(2)

		b := resultOf(t, results, "b")
		gt.Value(t, b.FinalProbability).Equal(50)
		gt.Array(t, b.Path).Length(2)
		gt.Value(t, b.Path[0]).Equal(types.RiskID("a"))
		gt.Value(t, b.Path[1]).Equal(types.RiskID("b"))

		c := resultOf(t, results, "c")
		gt.Value(t, c.FinalProbability).Equal(35)
		gt.Array(t, c.Path).Length(3)
	})

	t.Run("visited set breaks cycles", func(t *testing.T) {
		risks := []model.Risk{
			{ID: "a", Probability: 80, RelatedRisks: []model.Relation{relation("b", 0.5)}},
			{ID: "b", Probability: 10, RelatedRisks: []model.Relation{relation("a", 0.9)}},
		}

		results := propagation.Trace("a", risks)
		gt.Array(t, results).Length(1)
		gt.Value(t, results[0].RiskID).Equal(types.RiskID("b"))
	})

	t.Run("depth is bounded", func(t *testing.T) {
		risks := []model.Risk{
			{ID: "a", Probability: 100, RelatedRisks: []model.Relation{relation("b", 1)}},
			{ID: "b", Probability: 100, RelatedRisks: []model.Relation{relation("c", 1)}},
			{ID: "c", Probability: 100, RelatedRisks: []model.Relation{relation("d", 1)}},
			{ID: "d", Probability: 100, RelatedRisks: []model.Relation{relation("e", 1)}},
			{ID: "e", Probability: 10},
		}

		results := propagation.Trace("a", risks)
		// Hops a→b, b→c, c→d are within depth 3; d→e is not
		gt.Array(t, results).Length(3)
		for _, r := range results {
			gt.Bool(t, r.RiskID != "e").True()
		}
	})

	t.Run("unknown source yields nothing", func(t *testing.T) {
		results := propagation.Trace("ghost", []model.Risk{{ID: "a", Probability: 50}})
		gt.Array(t, results).Length(0)
	})
}
