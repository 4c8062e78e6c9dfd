package refine_test

import (
	"testing"

	"github.com/aretw0/pocl/internal/collab"
	"github.com/aretw0/pocl/internal/collab/bindings"
	"github.com/aretw0/pocl/internal/collab/orderings"
	"github.com/aretw0/pocl/internal/formula"
	"github.com/aretw0/pocl/internal/model"
	"github.com/aretw0/pocl/internal/plan"
	"github.com/aretw0/pocl/internal/refine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threatFixture() (plan.Plan, plan.Unsafe) {
	link := model.Link{
		FromID: 1, EffectTime: formula.AtStart,
		ToID: 2, ConditionTime: formula.AtStart,
		Condition: lit("clear", formula.Obj("a")),
	}
	u := plan.Unsafe{
		Link:   link,
		StepID: 3,
		Effect: model.Effect{
			Literal:   formula.Literal{Predicate: "clear", Args: []formula.Term{formula.Obj("a")}, Negated: true},
			Condition: formula.True{},
		},
	}
	p := plan.Plan{Bindings: bindings.New(), Orderings: orderings.New()}
	return p, u
}

func TestThreatIsRealTrueWhenStepCanFallBetweenEndpoints(t *testing.T) {
	p, u := threatFixture()
	assert.True(t, refine.ThreatIsReal(p, u))
}

func TestThreatIsRealFalseWhenOrderingExcludesStep(t *testing.T) {
	p, u := threatFixture()
	no, ok := p.Orderings.Refine(collab.Ordering{BeforeID: u.StepID, T1: u.Effect.When, AfterID: u.Link.FromID, T2: u.Link.EffectTime})
	require.True(t, ok)
	p.Orderings = no
	assert.False(t, refine.ThreatIsReal(p, u), "forcing the threatening step before the link's producer removes the threat")
}

func TestRepairUnsafeDischargesBogusThreat(t *testing.T) {
	p, u := threatFixture()
	no, ok := p.Orderings.Refine(collab.Ordering{BeforeID: u.StepID, T1: u.Effect.When, AfterID: u.Link.FromID, T2: u.Link.EffectTime})
	require.True(t, ok)
	p.Orderings = no
	p = p.AddUnsafe(u)

	ctx := newTestContext()
	succs := refine.RepairUnsafe(ctx, p, u)
	require.Len(t, succs, 1)
	assert.Equal(t, 0, succs[0].NumUnsafes)
}

func TestRepairUnsafeProducesPromoteAndDemote(t *testing.T) {
	p, u := threatFixture()
	p = p.AddUnsafe(u)
	ctx := newTestContext()

	succs := refine.RepairUnsafe(ctx, p, u)
	// Nothing in this fixture's orderings forbids either promote (link
	// consumer before threat) or demote (threat before link producer), so
	// both must appear; separate is not expected here since the effect and
	// condition literals share identical arguments with no conditional
	// effect to negate.
	require.Len(t, succs, 2)
	for _, s := range succs {
		assert.Equal(t, 0, s.NumUnsafes, "every successor discards the repaired flaw")
	}
}
