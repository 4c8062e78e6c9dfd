package search

import (
	"github.com/aretw0/pocl/internal/collab"
	"github.com/aretw0/pocl/internal/collab/bindings"
	"github.com/aretw0/pocl/internal/collab/orderings"
	"github.com/aretw0/pocl/internal/engine"
	"github.com/aretw0/pocl/internal/formula"
	"github.com/aretw0/pocl/internal/goals"
	"github.com/aretw0/pocl/internal/model"
	"github.com/aretw0/pocl/internal/plan"
)

// BuildInitialPlan synthesizes the seed plan core spec §4.7 describes:
// the init step (id 0) whose effects are the problem's initial-state
// literals, the goal step (id GOAL_ID) whose precondition is the
// problem's goal formula, the goal admitted as open conditions, and — for
// durative problems — one step per timed initial literal plus the
// placeholder mutex chain. It lives in internal/search rather than
// internal/plan specifically to avoid an import cycle: it must call
// goals.AddGoal, and internal/goals already imports internal/plan.
func BuildInitialPlan(ctx *engine.Context) (plan.Plan, bool) {
	initAction := &model.Action{Name: "__init__"}
	for _, lit := range ctx.Problem.Init {
		initAction.Effects = append(initAction.Effects, model.Effect{
			Literal:   lit,
			When:      formula.AtStart,
			Condition: formula.True{},
		})
	}

	goalAction := &model.Action{Name: "__goal__", Precondition: ctx.Problem.Goal}

	p := plan.Plan{}
	p = p.AddStep(plan.Step{ID: model.InitID, Action: initAction})
	p = p.AddStep(plan.Step{ID: model.GoalID, Action: goalAction})
	p.Orderings = newOrderings()
	p.Bindings = newBindings()

	opts := goals.Options{
		StripStaticPreconditions: ctx.Params.StripStaticPreconditions,
		RandomOpenConditions:     ctx.Params.RandomOpenConditions,
		StaticPredicates:         ctx.Domain.StaticPredicates(),
		Rand:                     ctx.Rand,
	}
	np, ok := goals.AddGoal(p, model.GoalID, ctx.Problem.Goal, false, opts)
	if !ok {
		return plan.Plan{}, false
	}
	p = np

	if ctx.Problem.IsDurative() {
		for _, til := range ctx.Problem.TimedInitialLiterals {
			tilAction := &model.Action{
				Name: "__til__",
				Effects: []model.Effect{{
					Literal:   til.Literal,
					When:      formula.AtStart,
					Condition: formula.True{},
				}},
			}
			stepID := model.StepID(p.NumSteps)
			p = p.AddStep(plan.Step{ID: stepID, Action: tilAction})

			no, ok := p.Orderings.Refine(collab.Ordering{
				BeforeID: model.InitID, T1: formula.AtEnd,
				AfterID: stepID, T2: formula.AtStart,
				Weight: til.At,
			})
			if !ok {
				return plan.Plan{}, false
			}
			p.Orderings = no
		}
		// Seed the mutex-threat placeholder; internal/refine's first
		// handling replaces it with the real sweep (core spec §4.5).
		p = p.AddMutexThreat(plan.MutexThreat{})
	}

	p.ID = ctx.NextPlanID()
	return p, true
}

func newOrderings() collab.Orderings {
	return orderings.New()
}

func newBindings() collab.Bindings {
	return bindings.New()
}
