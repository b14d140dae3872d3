package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/riskops-lab/moirai/pkg/cli/config"
	"github.com/riskops-lab/moirai/pkg/repository/memory"
	"github.com/riskops-lab/moirai/pkg/service/montecarlo"
	"github.com/riskops-lab/moirai/pkg/usecase"
	"github.com/riskops-lab/moirai/pkg/utils/logging"
	"github.com/riskops-lab/moirai/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdAnalyze() *cli.Command {
	var scoringCfg config.Scoring
	var (
		inputPath  string
		outputPath string
		enableMC   bool
		iterations int
		seed       int
		workers    int
		deadline   float64
		budget     float64
	)

	var flags []cli.Flag
	flags = append(flags, scoringCfg.Flags()...)
	flags = append(flags,
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "Input JSON file with activities and risks ('-' for stdin)",
			Sources:     cli.EnvVars("MOIRAI_INPUT"),
			Required:    true,
			Destination: &inputPath,
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Output JSON file ('-' for stdout)",
			Sources:     cli.EnvVars("MOIRAI_OUTPUT"),
			Value:       "-",
			Destination: &outputPath,
		},
		&cli.BoolFlag{
			Name:        "monte-carlo",
			Usage:       "Run the Monte Carlo cost and schedule simulation",
			Sources:     cli.EnvVars("MOIRAI_MONTE_CARLO"),
			Destination: &enableMC,
		},
		&cli.IntFlag{
			Name:        "iterations",
			Usage:       "Monte Carlo iteration count",
			Sources:     cli.EnvVars("MOIRAI_ITERATIONS"),
			Value:       montecarlo.DefaultIterations,
			Destination: &iterations,
		},
		&cli.IntFlag{
			Name:        "seed",
			Usage:       "Monte Carlo random seed (0 derives one from the clock)",
			Sources:     cli.EnvVars("MOIRAI_SEED"),
			Destination: &seed,
		},
		&cli.IntFlag{
			Name:        "workers",
			Usage:       "Monte Carlo worker count (0 runs sequentially)",
			Sources:     cli.EnvVars("MOIRAI_WORKERS"),
			Destination: &workers,
		},
		&cli.FloatFlag{
			Name:        "deadline",
			Usage:       "Project deadline in days for the exceedance probability",
			Sources:     cli.EnvVars("MOIRAI_DEADLINE"),
			Destination: &deadline,
		},
		&cli.FloatFlag{
			Name:        "budget",
			Usage:       "Project budget for the exceedance probability",
			Sources:     cli.EnvVars("MOIRAI_BUDGET"),
			Destination: &budget,
		},
	)

	return &cli.Command{
		Name:    "analyze",
		Aliases: []string{"a"},
		Usage:   "Run the full risk analysis pipeline over an input bundle",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			input, err := readInput(inputPath)
			if err != nil {
				return err
			}

			if findings := usecase.ValidateInput(input); len(findings) > 0 {
				for _, f := range findings {
					logger.Warn("validation finding", "field", f.Field, "message", f.Message)
				}
				return fmt.Errorf("input validation found %d issue(s)", len(findings))
			}

			weights, propCfg, err := scoringCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "scoring configuration failed")
			}

			repo := memory.New()
			for i := range input.Activities {
				if err := repo.Activity().Put(ctx, &input.Activities[i]); err != nil {
					return goerr.Wrap(err, "failed to store activity")
				}
			}
			for i := range input.Risks {
				if err := repo.Risk().Put(ctx, &input.Risks[i]); err != nil {
					return goerr.Wrap(err, "failed to store risk")
				}
			}

			opts := usecase.AnalyzeOptions{
				EnableMonteCarlo:     enableMC,
				MonteCarloIterations: iterations,
				MonteCarloSeed:       int64(seed),
				MonteCarloWorkers:    workers,
			}
			if c.IsSet("deadline") {
				opts.Deadline = &deadline
			}
			if c.IsSet("budget") {
				opts.Budget = &budget
			}

			uc := usecase.New(repo, usecase.WithWeights(weights), usecase.WithPropagation(propCfg))
			out, err := uc.AnalyzeStored(ctx, opts)
			if err != nil {
				return goerr.Wrap(err, "analysis failed")
			}

			data, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return goerr.Wrap(err, "failed to encode analysis output")
			}
			data = append(data, '\n')

			if outputPath == "-" {
				safe.Write(ctx, os.Stdout, data)
			} else {
				f, err := os.Create(outputPath)
				if err != nil {
					return goerr.Wrap(err, "failed to create output file", goerr.V("path", outputPath))
				}
				safe.Write(ctx, f, data)
				safe.Close(ctx, f)
			}

			logger.Info("Analysis completed",
				"runID", out.RunID,
				"risks", len(out.Risks),
				"scenarios", len(out.Scenarios),
			)
			return nil
		},
	}
}
