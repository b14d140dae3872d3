package model

import (
	"time"

	"github.com/riskops-lab/moirai/pkg/domain/types"
)

// Sensitivity holds local partial-derivative approximations for one risk.
// ProbabilitySensitivity falls back to 0 when probability is 0.
type Sensitivity struct {
	Probability float64 `json:"probabilitySensitivity"`
	TimeImpact  float64 `json:"timeImpactSensitivity"`
	CostImpact  float64 `json:"costImpactSensitivity"`
	ScopeImpact float64 `json:"scopeImpactSensitivity"`
}

// RiskAnalysis is the per-risk result of one analysis run.
type RiskAnalysis struct {
	RiskID types.RiskID `json:"riskId"`
	Title  string       `json:"title"`

	// Probability is the effective probability used for the expected
	// impacts; after propagation it holds the propagated value while
	// OriginalProbability keeps the input value.
	Probability         float64 `json:"probability"`
	OriginalProbability float64 `json:"originalProbability"`

	AffectedDurationSum float64 `json:"affectedDurationSum"`
	AffectedCostSum     float64 `json:"affectedCostSum"`

	AddedDays          float64 `json:"addedDays"`
	ExpectedTimeImpact float64 `json:"expectedTimeImpact"`
	AddedCost          float64 `json:"addedCost"`
	ExpectedCostImpact float64 `json:"expectedCostImpact"`
	ScopeChangeRatio   float64 `json:"scopeChangeRatio"`

	Sensitivity Sensitivity `json:"sensitivity"`

	DependencyCentrality float64 `json:"dependencyCentrality"`
	TimeSensitivityFlag  float64 `json:"timeSensitivityFlag"`
	DetectabilityScore   float64 `json:"detectabilityScore"`
	BehaviorScore        float64 `json:"behaviorScore"`
}

// ExpectedImpactSum is the ranking key for the expected-impact view
func (r *RiskAnalysis) ExpectedImpactSum() float64 {
	return r.ExpectedTimeImpact + r.ExpectedCostImpact
}

// CombinedScenario is the joint impact of a risk subset over the level-2
// activities every risk in the subset affects.
type CombinedScenario struct {
	RiskIDs []types.RiskID `json:"riskIds"`

	// CommonActivities is the intersection of affected level-2 activities.
	// An empty intersection yields a zeroed scenario.
	CommonActivities []types.ActivityID `json:"commonActivities"`

	CombinedTimeImpactPercent float64 `json:"combinedTimeImpactPercent"`
	CombinedCostImpactPercent float64 `json:"combinedCostImpactPercent"`
	AverageProbability        float64 `json:"averageProbability"`

	AffectedDurationSum float64 `json:"affectedDurationSum"`
	AffectedCostSum     float64 `json:"affectedCostSum"`

	CombinedAddedDays          float64 `json:"combinedAddedDays"`
	CombinedExpectedTimeImpact float64 `json:"combinedExpectedTimeImpact"`
	CombinedAddedCost          float64 `json:"combinedAddedCost"`
	CombinedExpectedCostImpact float64 `json:"combinedExpectedCostImpact"`
}

// PropagationResult describes how one risk's probability moved during
// propagation. Path is populated only by the single-source trace; the
// roster-wide relaxation reports an empty path.
type PropagationResult struct {
	RiskID              types.RiskID   `json:"riskId"`
	OriginalProbability float64        `json:"originalProbability"`
	FinalProbability    float64        `json:"finalProbability"`
	Path                []types.RiskID `json:"path"`
}

// Distribution is a summary of one simulated series.
type Distribution struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stdDev"`
	P10    float64 `json:"p10"`
	P50    float64 `json:"p50"`
	P90    float64 `json:"p90"`
}

// MonteCarloSummary is the optional simulation section of the output.
// Exceedance probabilities are present only when a threshold was supplied.
type MonteCarloSummary struct {
	Iterations int          `json:"iterations"`
	Cost       Distribution `json:"cost"`
	Duration   Distribution `json:"duration"`

	DeadlineExceedanceProbability *float64 `json:"deadlineExceedanceProbability,omitempty"`
	BudgetExceedanceProbability   *float64 `json:"budgetExceedanceProbability,omitempty"`
}

// AnalysisOutput is the assembled result of one run. The nested shape is
// the wire contract for JSON export and must be kept stable.
type AnalysisOutput struct {
	RunID       string    `json:"runId"`
	GeneratedAt time.Time `json:"generatedAt"`

	Risks       []RiskAnalysis      `json:"risks"`
	Scenarios   []CombinedScenario  `json:"combinedScenarios"`
	Propagation []PropagationResult `json:"propagation"`

	// Independently sorted views over Risks
	RankedByBehaviorScore  []RiskAnalysis `json:"rankedByBehaviorScore"`
	RankedByExpectedImpact []RiskAnalysis `json:"rankedByExpectedImpact"`

	MonteCarlo *MonteCarloSummary `json:"monteCarlo,omitempty"`
}
