package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/riskops-lab/moirai/pkg/domain/model"
	"github.com/riskops-lab/moirai/pkg/domain/types"
	"github.com/riskops-lab/moirai/pkg/service/enrich"
	"github.com/riskops-lab/moirai/pkg/service/montecarlo"
	"github.com/riskops-lab/moirai/pkg/service/propagation"
	"github.com/riskops-lab/moirai/pkg/service/scenario"
	"github.com/riskops-lab/moirai/pkg/service/score"
	"github.com/riskops-lab/moirai/pkg/utils/logging"
)

// topScenarioRisks is how many top risks feed the combined scenarios
const topScenarioRisks = 3

// AnalyzeOptions configure one analysis run
type AnalyzeOptions struct {
	EnableMonteCarlo     bool
	MonteCarloIterations int
	MonteCarloSeed       int64
	MonteCarloWorkers    int
	Deadline             *float64
	Budget               *float64
}

// Analyze runs the full pipeline over an input bundle: enrichment, raw
// metrics, roster-wide maxima, scoring, propagation, probability-dependent
// recompute, top-3 combined scenarios, ranking views and the optional
// Monte Carlo simulation.
//
// The pipeline is total over any structurally-typed input: unresolvable
// references are excluded from sums, never raised as errors. The caller's
// records are never mutated.
func (uc *UseCases) Analyze(ctx context.Context, input *model.AnalysisInput, opts AnalyzeOptions) (*model.AnalysisOutput, error) {
	work := input.Clone()
	work.Activities = enrich.Activities(work.Activities)
	index := score.IndexActivities(work.Activities)

	// First pass: raw metrics, then roster-wide normalization maxima
	raws := make([]score.RawMetrics, len(work.Risks))
	for i := range work.Risks {
		raws[i] = uc.calc.Raw(&work.Risks[i], index)
	}
	maxima := score.MaximaOf(raws)

	// Second pass: scored records on the shared scale
	analyses := make([]model.RiskAnalysis, len(work.Risks))
	for i := range work.Risks {
		analyses[i] = uc.calc.Analyze(&work.Risks[i], raws[i], work.Risks, index, maxima)
	}

	// Probability contagion over the relation graph, then recompute the
	// probability-dependent fields from the propagated values
	propagated := propagation.RelaxWith(work.Risks, uc.prop)
	finals := make(map[types.RiskID]float64, len(propagated))
	for _, p := range propagated {
		finals[p.RiskID] = p.FinalProbability
	}
	for i := range analyses {
		if final, ok := finals[analyses[i].RiskID]; ok {
			uc.calc.RecomputeProbability(&analyses[i], final)
		}
	}

	output := &model.AnalysisOutput{
		RunID:       uuid.New().String(),
		GeneratedAt: time.Now().UTC(),
		Risks:       analyses,
		Scenarios:   uc.combinedScenarios(analyses, work),
		Propagation: propagated,
	}

	output.RankedByBehaviorScore = rankBy(analyses, func(a, b *model.RiskAnalysis) bool {
		return a.BehaviorScore > b.BehaviorScore
	})
	output.RankedByExpectedImpact = rankBy(analyses, func(a, b *model.RiskAnalysis) bool {
		return a.ExpectedImpactSum() > b.ExpectedImpactSum()
	})

	if opts.EnableMonteCarlo {
		sim := montecarlo.New(opts.MonteCarloSeed)
		summary, err := sim.Run(ctx, work.Activities, work.Risks, montecarlo.Options{
			Iterations: opts.MonteCarloIterations,
			Deadline:   opts.Deadline,
			Budget:     opts.Budget,
			Workers:    opts.MonteCarloWorkers,
		})
		if err != nil {
			return nil, goerr.Wrap(err, "monte carlo simulation failed")
		}
		output.MonteCarlo = summary
	}

	logging.From(ctx).Debug("analysis run completed",
		"run_id", output.RunID,
		"risks", len(output.Risks),
		"scenarios", len(output.Scenarios),
	)

	return output, nil
}

// AnalyzeStored runs Analyze over the roster staged in the repository
func (uc *UseCases) AnalyzeStored(ctx context.Context, opts AnalyzeOptions) (*model.AnalysisOutput, error) {
	activities, err := uc.repo.Activity().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list activities")
	}
	risks, err := uc.repo.Risk().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list risks")
	}

	return uc.Analyze(ctx, &model.AnalysisInput{Activities: activities, Risks: risks}, opts)
}

// combinedScenarios builds all pairs over the top risks by expected
// impact, plus the triple when three are selected.
func (uc *UseCases) combinedScenarios(analyses []model.RiskAnalysis, work *model.AnalysisInput) []model.CombinedScenario {
	top := rankBy(analyses, func(a, b *model.RiskAnalysis) bool {
		return a.ExpectedImpactSum() > b.ExpectedImpactSum()
	})
	if len(top) > topScenarioRisks {
		top = top[:topScenarioRisks]
	}

	ids := make([]types.RiskID, len(top))
	for i, a := range top {
		ids[i] = a.RiskID
	}

	index := score.IndexActivities(work.Activities)
	var scenarios []model.CombinedScenario
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			scenarios = append(scenarios, scenario.Combine([]types.RiskID{ids[i], ids[j]}, work.Risks, index))
		}
	}
	if len(ids) == topScenarioRisks {
		scenarios = append(scenarios, scenario.Combine(ids, work.Risks, index))
	}
	return scenarios
}

// rankBy returns an independently sorted copy; ties keep input order
func rankBy(analyses []model.RiskAnalysis, less func(a, b *model.RiskAnalysis) bool) []model.RiskAnalysis {
	ranked := make([]model.RiskAnalysis, len(analyses))
	copy(ranked, analyses)
	sort.SliceStable(ranked, func(i, j int) bool {
		return less(&ranked[i], &ranked[j])
	})
	return ranked
}
