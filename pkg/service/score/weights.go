package score

import (
	"github.com/m-mizutani/goerr/v2"
)

// Weights configures the behavior score blend. The detectability weight is
// subtracted, so a fully detectable risk (non-empty trigger) pays the full
// penalty term.
type Weights struct {
	ExpectedTimeImpact   float64 `toml:"expected_time_impact"`
	ExpectedCostImpact   float64 `toml:"expected_cost_impact"`
	DependencyCentrality float64 `toml:"dependency_centrality"`
	TimeSensitivity      float64 `toml:"time_sensitivity"`
	Detectability        float64 `toml:"detectability"`
}

// DefaultWeights returns the standard blend
func DefaultWeights() Weights {
	return Weights{
		ExpectedTimeImpact:   0.35,
		ExpectedCostImpact:   0.25,
		DependencyCentrality: 0.20,
		TimeSensitivity:      0.15,
		Detectability:        0.05,
	}
}

// Validate checks if the Weights are usable
func (w Weights) Validate() error {
	fields := map[string]float64{
		"expected_time_impact":  w.ExpectedTimeImpact,
		"expected_cost_impact":  w.ExpectedCostImpact,
		"dependency_centrality": w.DependencyCentrality,
		"time_sensitivity":      w.TimeSensitivity,
		"detectability":         w.Detectability,
	}
	for name, v := range fields {
		if v < 0 || v > 1 {
			return goerr.New("weight must be within [0,1]", goerr.V("weight", name), goerr.V("value", v))
		}
	}
	return nil
}
