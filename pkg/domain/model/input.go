package model

// AnalysisInput is the bundle handed to the engine: the full activity set
// and the full risk roster of one project.
type AnalysisInput struct {
	Activities []Activity `json:"activities"`
	Risks      []Risk     `json:"risks"`
}

// Clone returns a deep copy of the input bundle. The engine analyzes a
// clone so caller-owned records are never aliased by working copies.
func (in *AnalysisInput) Clone() *AnalysisInput {
	return &AnalysisInput{
		Activities: CloneActivities(in.Activities),
		Risks:      CloneRisks(in.Risks),
	}
}

// ValidationError is a field-scoped finding reported by the validator.
// Malformed domain data is a reported validity state, not a fault.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
