package refine_test

import (
	"math/rand"

	"github.com/aretw0/pocl/internal/collab/bindings"
	"github.com/aretw0/pocl/internal/collab/memgraph"
	"github.com/aretw0/pocl/internal/collab/orderings"
	"github.com/aretw0/pocl/internal/config"
	"github.com/aretw0/pocl/internal/engine"
	"github.com/aretw0/pocl/internal/formula"
	"github.com/aretw0/pocl/internal/model"
	"github.com/aretw0/pocl/internal/plan"
	"github.com/aretw0/pocl/internal/problem"
)

func lit(pred string, args ...formula.Term) formula.Literal {
	return formula.Literal{Predicate: pred, Args: args}
}

// clearTableAction unconditionally asserts clear(table), used as the
// sole achiever across this package's open-condition/threat scenarios.
func clearTableAction() *model.Action {
	return &model.Action{
		Name:         "clear-table",
		Effects:      []model.Effect{{Literal: lit("clear", formula.Obj("table")), Condition: formula.True{}}},
		Precondition: formula.True{},
	}
}

func newTestContext(actions ...*model.Action) *engine.Context {
	dom := problem.NewDomain("test")
	for _, a := range actions {
		dom.AddAction(a)
	}
	prob := problem.NewProblem("test", dom)
	graph := memgraph.Build(actions)
	return engine.New(dom, prob, graph, nil, nil, config.Default(), rand.New(rand.NewSource(1)))
}

// emptyPlan seeds the two distinguished dummy steps (init/goal) the way
// search.BuildInitialPlan does, so a freshly added step never collides
// with model.InitID the way it would starting from NumSteps == 0.
func emptyPlan() plan.Plan {
	p := plan.Plan{Bindings: bindings.New(), Orderings: orderings.New()}
	p = p.AddStep(plan.Step{ID: model.InitID, Action: &model.Action{Name: "__init__"}})
	p = p.AddStep(plan.Step{ID: model.GoalID, Action: &model.Action{Name: "__goal__"}})
	return p
}
