package refine

import (
	"math/rand"
	"testing"

	"github.com/aretw0/pocl/internal/collab/bindings"
	"github.com/aretw0/pocl/internal/collab/orderings"
	"github.com/aretw0/pocl/internal/config"
	"github.com/aretw0/pocl/internal/engine"
	"github.com/aretw0/pocl/internal/formula"
	"github.com/aretw0/pocl/internal/model"
	"github.com/aretw0/pocl/internal/plan"
	"github.com/aretw0/pocl/internal/problem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mutexTestContext() *engine.Context {
	dom := problem.NewDomain("test")
	return engine.New(dom, problem.NewProblem("test", dom), nil, nil, nil, config.Default(), rand.New(rand.NewSource(1)))
}

func mutexFixture() (plan.Plan, plan.MutexThreat) {
	p := plan.Plan{Bindings: bindings.New(), Orderings: orderings.New()}
	p = p.AddStep(clobberStep(1, "clear", false))
	p = p.AddStep(clobberStep(2, "clear", true))
	m := plan.MutexThreat{
		StepID1: 1, Effect1: model.Effect{Literal: formula.Literal{Predicate: "clear", Args: []formula.Term{formula.Obj("a")}}},
		StepID2: 2, Effect2: model.Effect{Literal: formula.Literal{Predicate: "clear", Args: []formula.Term{formula.Obj("a")}, Negated: true}},
	}
	return p, m
}

func TestRepairMutexThreatSweepsUnseededPlaceholder(t *testing.T) {
	p, m := mutexFixture()
	p = p.AddMutexThreat(m) // stands in for the placeholder seeded by initial plan construction

	succs := RepairMutexThreat(mutexTestContext(), p, m)
	require.Len(t, succs, 1)
	assert.True(t, succs[0].MutexSeeded)
	assert.Equal(t, 1, succs[0].NumMutexThreats, "the placeholder is replaced by the one genuine threat between the two concurrent steps")
}

func TestRepairMutexThreatDischargesBogusThreatOnceSeeded(t *testing.T) {
	p, m := mutexFixture()
	p.MutexSeeded = true
	no, ok := p.Orderings.Refine(orderingFor(1, formula.AtEnd, 2, formula.AtStart))
	require.True(t, ok)
	p.Orderings = no
	p = p.AddMutexThreat(m)

	succs := RepairMutexThreat(mutexTestContext(), p, m)
	require.Len(t, succs, 1)
	assert.Equal(t, 0, succs[0].NumMutexThreats)
}

func TestRepairMutexThreatProducesPromoteAndDemote(t *testing.T) {
	p, m := mutexFixture()
	p.MutexSeeded = true
	p = p.AddMutexThreat(m)

	succs := RepairMutexThreat(mutexTestContext(), p, m)
	require.Len(t, succs, 2, "identical single-arg literals leave nothing for separate to disjoin over")
	for _, s := range succs {
		assert.Equal(t, 0, s.NumMutexThreats)
	}
}
