package montecarlo

import (
	"context"
	"math"
	"math/rand"
	"sort"

	"github.com/riskops-lab/moirai/pkg/domain/model"
	"github.com/riskops-lab/moirai/pkg/domain/types"
	"golang.org/x/sync/errgroup"
)

const (
	// MinIterations and MaxIterations bound the trial count
	MinIterations = 5000
	MaxIterations = 10000

	// DefaultIterations is used when the caller passes 0
	DefaultIterations = 7500

	// triangularSpread places the sampling bounds at mode ± 20%
	triangularSpread = 0.2
)

// Options configure one simulation run
type Options struct {
	// Iterations is clamped into [MinIterations, MaxIterations];
	// 0 selects DefaultIterations
	Iterations int

	// Deadline and Budget enable the exceedance fractions when set
	Deadline *float64
	Budget   *float64

	// Workers > 1 splits trials into per-worker batches with derived
	// seeds. Sequential execution (Workers <= 1) is the default contract.
	Workers int
}

// Simulator runs repeated stochastic trials over the enriched activity set
// and risk roster: Bernoulli occurrence per risk, triangular-distributed
// impact magnitude per affected activity.
type Simulator struct {
	seed int64
}

// New creates a Simulator with the given seed. The same seed over the same
// input reproduces the same summary.
func New(seed int64) *Simulator {
	return &Simulator{seed: seed}
}

// Run executes the simulation and summarizes both distributions.
func (s *Simulator) Run(ctx context.Context, activities []model.Activity, risks []model.Risk, opts Options) (*model.MonteCarloSummary, error) {
	iterations := clampIterations(opts.Iterations)

	var baselineCost, baselineDuration float64
	index := make(map[types.ActivityID]*model.Activity, len(activities))
	for i := range activities {
		if !activities[i].Level.Schedulable() {
			continue
		}
		index[activities[i].ID] = &activities[i]
		baselineCost += activities[i].Cost
		baselineDuration += activities[i].DurationDays
	}

	costs := make([]float64, iterations)
	durations := make([]float64, iterations)

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > iterations {
		workers = iterations
	}

	if workers == 1 {
		rng := rand.New(rand.NewSource(s.seed))
		runTrials(rng, activities, risks, index, baselineCost, baselineDuration, costs, durations)
	} else {
		eg, _ := errgroup.WithContext(ctx)
		batch := (iterations + workers - 1) / workers
		for w := 0; w < workers; w++ {
			lo := w * batch
			hi := lo + batch
			if hi > iterations {
				hi = iterations
			}
			if lo >= hi {
				break
			}
			rng := rand.New(rand.NewSource(s.seed + int64(w)))
			eg.Go(func() error {
				runTrials(rng, activities, risks, index, baselineCost, baselineDuration, costs[lo:hi], durations[lo:hi])
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}
	}

	sort.Float64s(costs)
	sort.Float64s(durations)

	summary := &model.MonteCarloSummary{
		Iterations: iterations,
		Cost:       summarize(costs),
		Duration:   summarize(durations),
	}

	if opts.Deadline != nil {
		p := exceedance(durations, *opts.Deadline)
		summary.DeadlineExceedanceProbability = &p
	}
	if opts.Budget != nil {
		p := exceedance(costs, *opts.Budget)
		summary.BudgetExceedanceProbability = &p
	}

	return summary, nil
}

func runTrials(rng *rand.Rand, activities []model.Activity, risks []model.Risk, index map[types.ActivityID]*model.Activity, baselineCost, baselineDuration float64, costs, durations []float64) {
	for trial := range costs {
		costTotal := baselineCost
		durationTotal := baselineDuration

		for i := range risks {
			risk := &risks[i]
			if rng.Float64() >= risk.Probability/100 {
				continue
			}

			costFraction := sampleTriangular(rng, risk.CostImpactPercent) / 100
			timeFraction := sampleTriangular(rng, risk.TimeImpactPercent) / 100

			for _, id := range risk.AffectedActivities {
				activity, ok := index[id]
				if !ok {
					continue
				}
				costTotal += activity.Cost * costFraction
				durationTotal += activity.DurationDays * timeFraction
			}
		}

		costs[trial] = costTotal
		durations[trial] = durationTotal
	}
}

// sampleTriangular draws from a triangular distribution centered on mode
// with bounds at mode ± 20%, via inverse-CDF sampling.
func sampleTriangular(rng *rand.Rand, mode float64) float64 {
	min := (1 - triangularSpread) * mode
	max := (1 + triangularSpread) * mode
	if max == min {
		return mode
	}

	u := rng.Float64()
	fc := (mode - min) / (max - min)
	if u < fc {
		return min + math.Sqrt(u*(max-min)*(mode-min))
	}
	return max - math.Sqrt((1-u)*(max-min)*(max-mode))
}

func summarize(sorted []float64) model.Distribution {
	n := len(sorted)
	if n == 0 {
		return model.Distribution{}
	}

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(n)

	var variance float64
	for _, v := range sorted {
		d := v - mean
		variance += d * d
	}
	stdDev := math.Sqrt(variance / float64(n))

	return model.Distribution{
		Mean:   mean,
		StdDev: stdDev,
		P10:    percentile(sorted, 10),
		P50:    percentile(sorted, 50),
		P90:    percentile(sorted, 90),
	}
}

// percentile uses the nearest-rank method, not linear interpolation
func percentile(sorted []float64, p float64) float64 {
	idx := int(math.Ceil(p/100*float64(len(sorted)))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func exceedance(sorted []float64, threshold float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	// First index above the threshold; everything after it exceeds too
	first := sort.SearchFloat64s(sorted, math.Nextafter(threshold, math.Inf(1)))
	return float64(len(sorted)-first) / float64(len(sorted))
}

func clampIterations(n int) int {
	if n == 0 {
		return DefaultIterations
	}
	if n < MinIterations {
		return MinIterations
	}
	if n > MaxIterations {
		return MaxIterations
	}
	return n
}
