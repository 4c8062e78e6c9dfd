package refine

import (
	"testing"

	"github.com/aretw0/pocl/internal/collab/bindings"
	"github.com/aretw0/pocl/internal/collab/orderings"
	"github.com/aretw0/pocl/internal/formula"
	"github.com/aretw0/pocl/internal/model"
	"github.com/aretw0/pocl/internal/plan"
	"github.com/aretw0/pocl/internal/problem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fourLegSchema mirrors a "drive across four legs, then check two
// conditions at the destination" decomposition: four pseudo-steps each
// with a trivial precondition, and a last pseudo-step whose precondition
// is a conjunction of two atoms still unmet anywhere in the plan.
func fourLegSchema() problem.DecompositionSchema {
	return problem.DecompositionSchema{
		Name:         "travel-by-car",
		For:          "travel",
		DummyInitID:  100,
		DummyFinalID: 101,
		PseudoSteps: []problem.PseudoStep{
			{LocalID: 110, Action: &model.Action{Name: "drive-leg-1", Precondition: formula.True{}}},
			{LocalID: 111, Action: &model.Action{Name: "drive-leg-2", Precondition: formula.True{}}},
			{LocalID: 112, Action: &model.Action{Name: "drive-leg-3", Precondition: formula.True{}}},
			{
				LocalID: 113,
				Action: &model.Action{
					Name: "arrive",
					Precondition: formula.Conj(
						formula.Lit(formula.Literal{Predicate: "fueled"}),
						formula.Lit(formula.Literal{Predicate: "road-clear"}),
					),
				},
			},
		},
	}
}

// TestCompositeExpansionReplacesUnexpandedFlawWithFrameAndNewOpenConditions
// walks scenario 5: a composite step with one applicable decomposition of
// four pseudo-steps, the last carrying a two-atom conjunctive
// precondition, expands into a DecompositionFrame/Link and leaves exactly
// the two new open conditions the final pseudo-step's precondition
// demands — the original UnexpandedCompositeStep flaw is gone.
func TestCompositeExpansionReplacesUnexpandedFlawWithFrameAndNewOpenConditions(t *testing.T) {
	dom := problem.NewDomain("test")
	dom.AddDecomposition(fourLegSchema())
	ctx := decomposeContext(dom)

	p := plan.Plan{Bindings: bindings.New(), Orderings: orderings.New()}
	composite := compositeStep()
	p = p.AddStep(composite)
	p = p.AddUnexpanded(plan.UnexpandedCompositeStep{Step: composite})

	succs := RepairUnexpanded(ctx, p, plan.UnexpandedCompositeStep{Step: composite})
	require.Len(t, succs, 1)

	succ := succs[0]
	assert.Equal(t, 0, succ.NumUnexpanded, "the composite step's flaw is discharged once its schema installs")
	assert.Equal(t, p.NumSteps+6, succ.NumSteps, "dummy-init, dummy-final, and four pseudo-steps are installed")

	require.Len(t, succ.DecompositionFrames.Slice(), 1)
	frame := succ.DecompositionFrames.Slice()[0]
	assert.Equal(t, "travel-by-car", frame.SchemaName)
	assert.Len(t, frame.StepIDs, 6)

	require.Equal(t, 2, succ.NumOpenConds, "the final pseudo-step's two-atom precondition admits as two open conditions")
	preds := map[string]bool{}
	succ.OpenConds.Each(func(o plan.OpenCondition) bool {
		preds[o.Literal.Predicate] = true
		return true
	})
	assert.True(t, preds["fueled"])
	assert.True(t, preds["road-clear"])
}
