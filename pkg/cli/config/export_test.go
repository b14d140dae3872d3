package config

// NewScoring builds a Scoring config pointing at a weights file, for tests.
func NewScoring(path string) *Scoring {
	return &Scoring{weightsPath: path}
}
