package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/riskops-lab/moirai/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var inputPath string

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate an input bundle without running the analysis",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "input",
				Aliases:     []string{"i"},
				Usage:       "Input JSON file with activities and risks ('-' for stdin)",
				Sources:     cli.EnvVars("MOIRAI_INPUT"),
				Required:    true,
				Destination: &inputPath,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			input, err := readInput(inputPath)
			if err != nil {
				return err
			}

			findings := usecase.ValidateInput(input)
			if len(findings) > 0 {
				for _, f := range findings {
					fmt.Fprintf(os.Stderr, "%s %s: %s\n",
						color.RedString("NG"), f.Field, f.Message)
				}
				return fmt.Errorf("validation found %d issue(s)", len(findings))
			}

			fmt.Printf("%s %d activities, %d risks\n",
				color.GreenString("OK"), len(input.Activities), len(input.Risks))
			return nil
		},
	}
}
