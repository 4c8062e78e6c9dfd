// Package ground implements the final step-instantiation pass run once a
// complete partial plan is accepted (core spec §4.2's "grounding phase on
// acceptance"): every step's remaining schema parameters are bound to
// concrete objects before the plan is considered truly complete.
package ground

import (
	"github.com/aretw0/pocl/internal/collab"
	"github.com/aretw0/pocl/internal/engine"
	"github.com/aretw0/pocl/internal/formula"
	"github.com/aretw0/pocl/internal/model"
	"github.com/aretw0/pocl/internal/plan"
)

// Ground iterates over p's steps and their schema parameters, enumerating
// each parameter's candidate objects and adding the binding, recursing
// with chronological backtracking. It returns ok=false if no consistent
// full grounding exists, per core spec §4.2: the caller is expected to
// pop the next best complete plan and retry grounding on it instead.
func Ground(ctx *engine.Context, p plan.Plan) (plan.Plan, bool) {
	if !ctx.Params.GroundActions {
		return p, true
	}
	steps := p.Steps.Slice()
	var unbound []formula.Term
	var owner []model.StepID
	for _, s := range steps {
		if s.Action == nil {
			continue
		}
		for _, param := range s.Action.Parameters {
			if param.Var {
				unbound = append(unbound, param)
				owner = append(owner, s.ID)
			}
		}
	}
	return groundFrom(ctx, p, unbound, owner, 0)
}

func groundFrom(ctx *engine.Context, p plan.Plan, unbound []formula.Term, owner []model.StepID, idx int) (plan.Plan, bool) {
	if idx >= len(unbound) {
		return p, true
	}
	param, stepID := unbound[idx], owner[idx]

	objects := p.Bindings.Domain(param, stepID, func() []string { return allObjects(ctx) })
	for _, name := range objects {
		ctx.Metrics.GroundingRetried()
		nb, ok := p.Bindings.Add([]collab.Binding{{
			Var: param, VarStep: stepID,
			Term: formula.Obj(name), TermStep: stepID,
			Equal: true,
		}}, false)
		if !ok {
			continue
		}
		attempt := p
		attempt.Bindings = nb
		if solved, ok := groundFrom(ctx, attempt, unbound, owner, idx+1); ok {
			return solved, true
		}
	}
	return p, false
}

func allObjects(ctx *engine.Context) []string {
	var out []string
	for _, names := range ctx.Domain.Objects {
		out = append(out, names...)
	}
	return out
}
