package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/riskops-lab/moirai/pkg/service/propagation"
	"github.com/riskops-lab/moirai/pkg/service/score"
	"github.com/urfave/cli/v3"
)

// Scoring holds the analysis tuning configuration
type Scoring struct {
	weightsPath string
}

// weightsFile is the TOML shape of a tuning file. The weights section
// replaces the defaults wholesale; the propagation section falls back to
// the defaults per field.
type weightsFile struct {
	Weights     score.Weights      `toml:"weights"`
	Propagation propagation.Config `toml:"propagation"`
}

// Flags returns CLI flags for scoring configuration
func (x *Scoring) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "weights",
			Usage:       "Path to a TOML file overriding the behavior score weights and propagation tuning",
			Sources:     cli.EnvVars("MOIRAI_WEIGHTS"),
			Destination: &x.weightsPath,
		},
	}
}

// Configure loads and validates the tuning file, falling back to the
// defaults when no file is given.
func (x *Scoring) Configure() (score.Weights, propagation.Config, error) {
	if x.weightsPath == "" {
		return score.DefaultWeights(), propagation.DefaultConfig(), nil
	}

	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(x.weightsPath)
	if err != nil {
		return score.Weights{}, propagation.Config{}, goerr.Wrap(err, "failed to read weights file", goerr.V("path", x.weightsPath))
	}

	file := weightsFile{Propagation: propagation.DefaultConfig()}
	if err := toml.Unmarshal(data, &file); err != nil {
		return score.Weights{}, propagation.Config{}, goerr.Wrap(err, "failed to parse TOML weights", goerr.V("path", x.weightsPath))
	}

	if err := file.Weights.Validate(); err != nil {
		return score.Weights{}, propagation.Config{}, goerr.Wrap(err, "weights validation failed", goerr.V("path", x.weightsPath))
	}
	if err := file.Propagation.Validate(); err != nil {
		return score.Weights{}, propagation.Config{}, goerr.Wrap(err, "propagation config validation failed", goerr.V("path", x.weightsPath))
	}

	return file.Weights, file.Propagation, nil
}
