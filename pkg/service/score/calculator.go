package score

import (
	"math"
	"strings"

	"github.com/riskops-lab/moirai/pkg/domain/model"
	"github.com/riskops-lab/moirai/pkg/domain/types"
)

// Calculator computes per-risk impact metrics and the behavior score.
//
// Scoring is a two-stage pipeline: Raw produces the roster-independent
// metrics, MaximaOf collects the roster-wide normalization denominators
// over all raw results, and Analyze combines both into the final scored
// record. Every stage is a pure function of its arguments.
type Calculator struct {
	weights Weights
}

// NewCalculator creates a Calculator with the given weights
func NewCalculator(weights Weights) *Calculator {
	return &Calculator{weights: weights}
}

// NewCalculatorWithDefaults creates a Calculator with the standard blend
func NewCalculatorWithDefaults() *Calculator {
	return NewCalculator(DefaultWeights())
}

// ActivityIndex resolves activity IDs against the enriched activity set
type ActivityIndex map[types.ActivityID]*model.Activity

// IndexActivities builds an ActivityIndex over an enriched activity slice
func IndexActivities(activities []model.Activity) ActivityIndex {
	index := make(ActivityIndex, len(activities))
	for i := range activities {
		index[activities[i].ID] = &activities[i]
	}
	return index
}

// RawMetrics holds the roster-independent metrics of one risk. Expected
// impacts feed the roster-wide maxima for normalization.
type RawMetrics struct {
	AffectedDurationSum float64
	AffectedCostSum     float64
	AddedDays           float64
	ExpectedTimeImpact  float64
	AddedCost           float64
	ExpectedCostImpact  float64
}

// Maxima are the shared normalization denominators of one roster
type Maxima struct {
	ExpectedTimeImpact float64
	ExpectedCostImpact float64
}

// MaximaOf collects roster-wide maxima over raw metrics
func MaximaOf(raws []RawMetrics) Maxima {
	var m Maxima
	for _, raw := range raws {
		m.ExpectedTimeImpact = math.Max(m.ExpectedTimeImpact, raw.ExpectedTimeImpact)
		m.ExpectedCostImpact = math.Max(m.ExpectedCostImpact, raw.ExpectedCostImpact)
	}
	return m
}

// Raw computes the impact sums and expected impacts of one risk. Level-1
// activities and unresolvable IDs are excluded from the sums; exclusion is
// a degradation, not an error.
func (c *Calculator) Raw(risk *model.Risk, index ActivityIndex) RawMetrics {
	var raw RawMetrics
	for _, id := range risk.AffectedActivities {
		activity, ok := index[id]
		if !ok || !activity.Level.Schedulable() {
			continue
		}
		raw.AffectedDurationSum += activity.DurationDays
		raw.AffectedCostSum += activity.BaselineCost
	}

	raw.AddedDays = raw.AffectedDurationSum * risk.TimeImpactPercent / 100
	raw.ExpectedTimeImpact = raw.AddedDays * risk.Probability / 100
	raw.AddedCost = raw.AffectedCostSum * risk.CostImpactPercent / 100
	raw.ExpectedCostImpact = raw.AddedCost * risk.Probability / 100
	return raw
}

// Analyze produces the scored record of one risk from its raw metrics, the
// full roster (needed for network centrality) and the roster maxima.
func (c *Calculator) Analyze(risk *model.Risk, raw RawMetrics, roster []model.Risk, index ActivityIndex, maxima Maxima) model.RiskAnalysis {
	analysis := model.RiskAnalysis{
		RiskID:              risk.ID,
		Title:               risk.Title,
		Probability:         risk.Probability,
		OriginalProbability: risk.Probability,

		AffectedDurationSum: raw.AffectedDurationSum,
		AffectedCostSum:     raw.AffectedCostSum,
		AddedDays:           raw.AddedDays,
		ExpectedTimeImpact:  raw.ExpectedTimeImpact,
		AddedCost:           raw.AddedCost,
		ExpectedCostImpact:  raw.ExpectedCostImpact,
		ScopeChangeRatio:    risk.ScopeImpactPercent / 100,

		Sensitivity: model.Sensitivity{
			TimeImpact:  raw.AffectedDurationSum / 100,
			CostImpact:  raw.AffectedCostSum / 100,
			ScopeImpact: risk.ScopeImpactPercent / 100,
		},

		DependencyCentrality: dependencyCentrality(risk, roster),
		TimeSensitivityFlag:  timeSensitivityFlag(risk, index),
		DetectabilityScore:   detectabilityScore(risk),
	}

	// Zero probability yields no sensitivity signal rather than dividing
	if risk.Probability != 0 {
		analysis.Sensitivity.Probability = raw.ExpectedCostImpact / risk.Probability
	}

	analysis.BehaviorScore = c.behaviorScore(&analysis, maxima)
	return analysis
}

// RecomputeProbability updates the probability-dependent fields of an
// already-scored record, used after propagation raised the probability.
// The behavior score keeps its pre-propagation normalization scale.
func (c *Calculator) RecomputeProbability(analysis *model.RiskAnalysis, probability float64) {
	analysis.Probability = probability
	analysis.ExpectedTimeImpact = analysis.AddedDays * probability / 100
	analysis.ExpectedCostImpact = analysis.AddedCost * probability / 100
	if probability != 0 {
		analysis.Sensitivity.Probability = analysis.ExpectedCostImpact / probability
	} else {
		analysis.Sensitivity.Probability = 0
	}
}

func (c *Calculator) behaviorScore(a *model.RiskAnalysis, maxima Maxima) float64 {
	score := c.weights.ExpectedTimeImpact*normalize(a.ExpectedTimeImpact, maxima.ExpectedTimeImpact) +
		c.weights.ExpectedCostImpact*normalize(a.ExpectedCostImpact, maxima.ExpectedCostImpact) +
		c.weights.DependencyCentrality*a.DependencyCentrality +
		c.weights.TimeSensitivity*(a.TimeSensitivityFlag*100) -
		c.weights.Detectability*(a.DetectabilityScore*100)

	return clamp(score, 0, 100)
}

// normalize scales x onto [0,100] against the roster maximum. The
// denominator floor of 1 keeps an all-zero roster at score 0 instead of
// dividing by zero.
func normalize(x, max float64) float64 {
	return 100 * x / math.Max(1, max)
}

// dependencyCentrality is the relation degree of the risk, normalized to
// [0,100] by the maximum degree across the roster.
func dependencyCentrality(risk *model.Risk, roster []model.Risk) float64 {
	maxDegree := 0.0
	own := 0.0
	for i := range roster {
		d := relationDegree(&roster[i], roster)
		if roster[i].ID == risk.ID {
			own = d
		}
		maxDegree = math.Max(maxDegree, d)
	}
	if maxDegree == 0 {
		return 0
	}
	return own / maxDegree * 100
}

func relationDegree(risk *model.Risk, roster []model.Risk) float64 {
	degree := float64(len(risk.RelatedRisks))
	for i := range roster {
		if roster[i].ID == risk.ID {
			continue
		}
		for _, rel := range roster[i].RelatedRisks {
			if rel.RiskID == risk.ID {
				degree++
				break
			}
		}
	}
	return degree
}

// timeSensitivityFlag is 1 when any affected entry resolves to a level-1
// artifact: artifacts stand in for milestone significance, so this check
// deliberately includes the IDs the impact sums exclude.
func timeSensitivityFlag(risk *model.Risk, index ActivityIndex) float64 {
	for _, id := range risk.AffectedActivities {
		if activity, ok := index[id]; ok && activity.Level == types.LevelArtifact {
			return 1
		}
	}
	return 0
}

func detectabilityScore(risk *model.Risk) float64 {
	if strings.TrimSpace(risk.Trigger) != "" {
		return 1
	}
	return 0.5
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
