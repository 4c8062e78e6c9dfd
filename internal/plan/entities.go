package plan

import "github.com/aretw0/pocl/internal/model"

// Step is a step in a partial plan: an id plus the action instance (schema
// or ground) it executes.
type Step struct {
	ID     model.StepID
	Action *model.Action
}

// DecompositionFrame is an installed decomposition instance: its
// pseudo-steps already carry fresh plan-level ids (the template's local
// ids have been rewritten by internal/refine/decompose.go), along with
// the frame's own dummy initial/final step ids at plan scope.
type DecompositionFrame struct {
	SchemaName   string
	StepIDs      []model.StepID
	DummyInitID  model.StepID
	DummyFinalID model.StepID
}

// DecompositionLink records that CompositeID was expanded via Frame.
type DecompositionLink struct {
	CompositeID model.StepID
	Frame       DecompositionFrame
}
