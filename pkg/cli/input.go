package cli

import (
	"encoding/json"
	"io"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/riskops-lab/moirai/pkg/domain/model"
)

// readInput loads an analysis input bundle from a JSON file, or from
// stdin when the path is "-".
func readInput(path string) (*model.AnalysisInput, error) {
	var data []byte
	var err error

	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read input from stdin")
		}
	} else {
		// #nosec G304 - path is expected to be provided by CLI argument
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read input file", goerr.V("path", path))
		}
	}

	var input model.AnalysisInput
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, goerr.Wrap(err, "failed to parse input JSON", goerr.V("path", path))
	}

	return &input, nil
}
