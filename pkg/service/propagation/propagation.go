package propagation

import (
	"math"

	"github.com/m-mizutani/goerr/v2"
	"github.com/riskops-lab/moirai/pkg/domain/model"
	"github.com/riskops-lab/moirai/pkg/domain/types"
)

const (
	// relaxPasses bounds propagation depth; the fixed pass count, not
	// convergence, is the termination condition, so cycles are safe.
	relaxPasses = 3

	// significanceThreshold drops contributions that are noise
	significanceThreshold = 0.1

	// traceMaxDepth bounds the recursive single-source traversal
	traceMaxDepth = 3
)

// Config tunes the roster-wide relaxation
type Config struct {
	Passes    int     `toml:"passes"`
	Threshold float64 `toml:"threshold"`
}

// DefaultConfig returns the standard relaxation tuning
func DefaultConfig() Config {
	return Config{
		Passes:    relaxPasses,
		Threshold: significanceThreshold,
	}
}

// Validate checks if the Config is usable
func (c Config) Validate() error {
	if c.Passes < 1 {
		return goerr.New("propagation passes must be at least 1", goerr.V("passes", c.Passes))
	}
	if c.Threshold < 0 {
		return goerr.New("propagation threshold must not be negative", goerr.V("threshold", c.Threshold))
	}
	return nil
}

// Relax diffuses probability increases across the whole roster.
//
// Each pass recomputes every risk's working probability as its original
// probability plus the sum of significant contributions strength(O→R) ×
// P(O), reading P(O) from the previous pass. A stable edge therefore
// contributes exactly once to the final value while multi-hop effects
// still ripple one hop per pass. Results are monotonically non-decreasing
// and capped at 100.
//
// The input roster is never mutated; all work happens on a private copy.
func Relax(risks []model.Risk) []model.PropagationResult {
	return RelaxWith(risks, DefaultConfig())
}

// RelaxWith runs the relaxation with a custom pass count and threshold
func RelaxWith(risks []model.Risk, cfg Config) []model.PropagationResult {
	original := make(map[types.RiskID]float64, len(risks))
	current := make(map[types.RiskID]float64, len(risks))
	for i := range risks {
		original[risks[i].ID] = risks[i].Probability
		current[risks[i].ID] = risks[i].Probability
	}

	// incoming[R] lists the (source, strength) pairs targeting R
	type edge struct {
		source   types.RiskID
		strength float64
	}
	incoming := make(map[types.RiskID][]edge, len(risks))
	for i := range risks {
		for _, rel := range risks[i].RelatedRisks {
			if rel.RiskID == risks[i].ID {
				continue
			}
			incoming[rel.RiskID] = append(incoming[rel.RiskID], edge{
				source:   risks[i].ID,
				strength: rel.Strength,
			})
		}
	}

	for pass := 0; pass < cfg.Passes; pass++ {
		next := make(map[types.RiskID]float64, len(risks))
		for i := range risks {
			id := risks[i].ID
			p := original[id]
			for _, e := range incoming[id] {
				increase := e.strength * current[e.source]
				if increase > cfg.Threshold {
					p += increase
				}
			}
			next[id] = math.Min(100, p)
		}
		current = next
	}

	results := make([]model.PropagationResult, 0, len(risks))
	for i := range risks {
		results = append(results, model.PropagationResult{
			RiskID:              risks[i].ID,
			OriginalProbability: original[risks[i].ID],
			FinalProbability:    current[risks[i].ID],
			Path:                []types.RiskID{},
		})
	}
	return results
}

// Trace runs the recursive single-source variant: starting from sourceID
// it follows outgoing relations up to traceMaxDepth hops, skipping already
// visited risks, and reports every risk it raised together with the path
// that reached it. Unknown source IDs yield no results.
func Trace(sourceID types.RiskID, risks []model.Risk) []model.PropagationResult {
	roster := make(map[types.RiskID]*model.Risk, len(risks))
	for i := range risks {
		roster[risks[i].ID] = &risks[i]
	}

	source, ok := roster[sourceID]
	if !ok {
		return nil
	}

	working := make(map[types.RiskID]float64, len(risks))
	for id, r := range roster {
		working[id] = r.Probability
	}

	var results []model.PropagationResult
	visited := map[types.RiskID]bool{sourceID: true}

	var walk func(from *model.Risk, depth int, path []types.RiskID)
	walk = func(from *model.Risk, depth int, path []types.RiskID) {
		if depth > traceMaxDepth {
			return
		}
		for _, rel := range from.RelatedRisks {
			target, ok := roster[rel.RiskID]
			if !ok || visited[rel.RiskID] {
				continue
			}

			increase := rel.Strength * working[from.ID]
			if increase <= significanceThreshold {
				continue
			}

			visited[rel.RiskID] = true
			original := working[rel.RiskID]
			working[rel.RiskID] = math.Min(100, original+increase)

			reached := append(append([]types.RiskID{}, path...), rel.RiskID)
			results = append(results, model.PropagationResult{
				RiskID:              rel.RiskID,
				OriginalProbability: original,
				FinalProbability:    working[rel.RiskID],
				Path:                reached,
			})

			walk(target, depth+1, reached)
		}
	}

	walk(source, 1, []types.RiskID{sourceID})
	return results
}
