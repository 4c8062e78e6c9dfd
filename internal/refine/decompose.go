package refine

import (
	"github.com/aretw0/pocl/internal/collab"
	"github.com/aretw0/pocl/internal/engine"
	"github.com/aretw0/pocl/internal/goals"
	"github.com/aretw0/pocl/internal/model"
	"github.com/aretw0/pocl/internal/plan"
	"github.com/aretw0/pocl/internal/problem"
)

// RepairUnexpanded expands a composite step against every applicable
// decomposition schema, per core spec §4.6. Each applicable schema that
// doesn't fail on inconsistency contributes one successor; the others
// remain candidates for sibling branches, exactly as the spec's closing
// sentence says.
func RepairUnexpanded(ctx *engine.Context, p plan.Plan, u plan.UnexpandedCompositeStep) []plan.Plan {
	if u.Step.Action == nil {
		return nil
	}
	schemas := ctx.Domain.DecompositionsFor(u.Step.Action.Name)
	var out []plan.Plan
	for _, schema := range schemas {
		if succ, ok := installDecomposition(ctx, p, u, schema); ok {
			out = append(out, succ)
		}
	}
	return out
}

// installDecomposition instantiates one DecompositionFrame from schema,
// rewrites its local step ids to fresh plan ids, installs the new steps,
// bindings, orderings, and internal links, and finally discharges the
// UnexpandedCompositeStep flaw in favor of a recorded DecompositionLink.
//
// The frame's dummy initial/final pseudo-steps are installed as plain
// Steps with a nil Action — structural anchors the frame's internal
// orderings hang off of, the same role model.InitID/model.GoalID play at
// the whole-plan level.
func installDecomposition(ctx *engine.Context, p plan.Plan, u plan.UnexpandedCompositeStep, schema problem.DecompositionSchema) (plan.Plan, bool) {
	ids := map[model.StepID]model.StepID{
		schema.DummyInitID:  model.StepID(p.NumSteps),
		schema.DummyFinalID: model.StepID(p.NumSteps + 1),
	}
	p = p.AddStep(plan.Step{ID: ids[schema.DummyInitID]})
	p = p.AddStep(plan.Step{ID: ids[schema.DummyFinalID]})

	stepIDs := []model.StepID{ids[schema.DummyInitID], ids[schema.DummyFinalID]}

	for _, ps := range schema.PseudoSteps {
		fresh := model.StepID(p.NumSteps)
		ids[ps.LocalID] = fresh
		step := plan.Step{ID: fresh, Action: ps.Action}
		p = p.AddStep(step)
		stepIDs = append(stepIDs, fresh)

		np, ok := goals.AddGoal(p, fresh, ps.Action.Precondition, false, opts(ctx))
		if !ok {
			return p, false
		}
		p = np

		p = applyUnsafes(p, stepThreats(p, step))
		if ctx.Problem.IsDurative() {
			p = applyMutexThreats(p, mutexThreatsForStep(p, step))
		}

		if ps.Action.Composite {
			p = p.AddUnexpanded(plan.UnexpandedCompositeStep{Step: step})
		}
	}

	bindings := make([]collab.Binding, len(schema.Bindings))
	for i, b := range schema.Bindings {
		bindings[i] = collab.Binding{
			Var: b.Var, VarStep: mapID(ids, b.VarStep),
			Term: b.Term, TermStep: mapID(ids, b.TermStep),
			Equal: b.Equal,
		}
	}
	if len(bindings) > 0 {
		nb, ok := p.Bindings.Add(bindings, false)
		if !ok {
			return p, false
		}
		p.Bindings = nb
	}

	// Dummy-final must precede every step the original composite step
	// contributed to as a producer; producers of whatever the composite
	// step consumed must precede dummy-init. This preserves the plan's
	// existing causal commitments across the composite step's boundary
	// without having to rewrite those links' endpoints in place.
	var orderFail bool
	p.Links.Each(func(l model.Link) bool {
		switch {
		case l.FromID == u.Step.ID:
			if no, ok := p.Orderings.Refine(collab.Ordering{BeforeID: ids[schema.DummyFinalID], T1: l.EffectTime, AfterID: l.ToID, T2: l.ConditionTime}); ok {
				p.Orderings = no
			} else {
				orderFail = true
				return false
			}
		case l.ToID == u.Step.ID:
			if no, ok := p.Orderings.Refine(collab.Ordering{BeforeID: l.FromID, T1: l.EffectTime, AfterID: ids[schema.DummyInitID], T2: l.ConditionTime}); ok {
				p.Orderings = no
			} else {
				orderFail = true
				return false
			}
		}
		return true
	})
	if orderFail {
		return p, false
	}

	for _, o := range schema.Orderings {
		no, ok := p.Orderings.Refine(collab.Ordering{BeforeID: mapID(ids, o.FromID), T1: o.EffectTime, AfterID: mapID(ids, o.ToID), T2: o.ConditionTime})
		if !ok {
			return p, false
		}
		p.Orderings = no
	}

	for _, l := range schema.Links {
		link := model.Link{
			FromID: mapID(ids, l.FromID), EffectTime: l.EffectTime,
			ToID: mapID(ids, l.ToID), ConditionTime: l.ConditionTime,
			Condition: l.Condition,
		}
		no, ok := p.Orderings.Refine(collab.Ordering{BeforeID: link.FromID, T1: link.EffectTime, AfterID: link.ToID, T2: link.ConditionTime})
		if !ok {
			return p, false
		}
		p.Orderings = no
		p = p.AddLink(link)
		p = applyUnsafes(p, linkThreats(p, link))
	}

	p = p.RemoveUnexpanded(func(x plan.UnexpandedCompositeStep) bool { return x.Step.ID == u.Step.ID })

	frame := plan.DecompositionFrame{
		SchemaName:   schema.Name,
		StepIDs:      stepIDs,
		DummyInitID:  ids[schema.DummyInitID],
		DummyFinalID: ids[schema.DummyFinalID],
	}
	p = p.AddDecompositionFrame(frame)
	p = p.AddDecompositionLink(plan.DecompositionLink{CompositeID: u.Step.ID, Frame: frame})

	return p, true
}

func mapID(ids map[model.StepID]model.StepID, local model.StepID) model.StepID {
	if fresh, ok := ids[local]; ok {
		return fresh
	}
	return local
}
