package refine

import (
	"github.com/aretw0/pocl/internal/collab"
	"github.com/aretw0/pocl/internal/engine"
	"github.com/aretw0/pocl/internal/formula"
	"github.com/aretw0/pocl/internal/goals"
	"github.com/aretw0/pocl/internal/model"
	"github.com/aretw0/pocl/internal/plan"
)

// RepairOpenCondition dispatches on the open condition's shape, producing
// every successor plan core spec §4.4 describes.
func RepairOpenCondition(ctx *engine.Context, p plan.Plan, o plan.OpenCondition) []plan.Plan {
	discard := func(pl plan.Plan) plan.Plan {
		return pl.RemoveOpenCondition(func(x plan.OpenCondition) bool { return openCondEq(x, o) })
	}

	switch o.Kind {
	case plan.CondLiteral:
		return repairLiteral(ctx, p, o, discard)
	case plan.CondDisjunction:
		return repairDisjunction(ctx, p, o, discard)
	case plan.CondInequality:
		return repairInequality(ctx, p, o, discard)
	default:
		panic("refine: unknown kind of open condition")
	}
}

func openCondEq(a, b plan.OpenCondition) bool {
	return a.StepID == b.StepID && a.Kind == b.Kind && literalsEq(a.Literal, b.Literal)
}

func opts(ctx *engine.Context) goals.Options {
	return goals.Options{
		StripStaticPreconditions: ctx.Params.StripStaticPreconditions,
		RandomOpenConditions:     ctx.Params.RandomOpenConditions,
		StaticPredicates:         ctx.Domain.StaticPredicates(),
		Rand:                     ctx.Rand,
	}
}

// repairLiteral produces add-step and reuse-step successors for every
// achiever of o.Literal, plus — for a negated literal — a closed-world
// link from the init step.
func repairLiteral(ctx *engine.Context, p plan.Plan, o plan.OpenCondition, discard func(plan.Plan) plan.Plan) []plan.Plan {
	var out []plan.Plan

	matches, ok := ctx.Graph.LiteralAchievers(o.Literal)
	if ok {
		for _, m := range matches {
			if succ, ok := addStepSuccessor(ctx, discard(p), o, m); ok {
				out = append(out, succ)
			}
		}
	}

	p.Steps.Each(func(s plan.Step) bool {
		if s.Action == nil || s.ID == o.StepID {
			return true
		}
		for _, e := range s.Action.Effects {
			if !p.Orderings.PossiblyBefore(s.ID, e.When, o.StepID, o.When) {
				continue
			}
			if !canAchieve(p.Bindings, e.Literal, s.ID, o.Literal, o.StepID) {
				continue
			}
			if succ, ok := makeLink(ctx, discard(p), s.ID, e, o.StepID, o.Literal, o.When, nil); ok {
				out = append(out, succ)
			}
		}
		return true
	})

	if o.Literal.Negated {
		if succ, ok := closedWorldLink(ctx, discard(p), o); ok {
			out = append(out, succ)
		}
	}

	return out
}

// addStepSuccessor introduces a fresh step executing m.Action and links
// its achieving effect to o.
func addStepSuccessor(ctx *engine.Context, p plan.Plan, o plan.OpenCondition, m collab.AchieverMatch) (plan.Plan, bool) {
	newStep := plan.Step{ID: model.StepID(p.NumSteps), Action: m.Action}
	return makeLink(ctx, p, newStep.ID, m.Effect, o.StepID, o.Literal, o.When, &newStep)
}

// canAchieve reports whether effect lit (same polarity as the goal)
// could unify with cond, argument by argument.
func canAchieve(b collab.Bindings, effLit formula.Literal, effStep model.StepID, cond formula.Literal, condStep model.StepID) bool {
	if effLit.Predicate != cond.Predicate || effLit.Negated != cond.Negated || len(effLit.Args) != len(cond.Args) {
		return false
	}
	for i := range effLit.Args {
		if _, ok := b.Unify(effLit.Args[i], effStep, cond.Args[i], condStep); !ok {
			return false
		}
	}
	return true
}

// makeLink is the common tail of add-step and reuse-step (core spec
// §4.4): freshen and admit a conditional/universal effect's condition,
// admit a newly added step's precondition, refine orderings, emit the
// link, and detect every new threat it creates.
func makeLink(ctx *engine.Context, p plan.Plan, fromID model.StepID, eff model.Effect, toID model.StepID, cond formula.Literal, condTime formula.Timing, newStep *plan.Step) (plan.Plan, bool) {
	if eff.IsConditional() || eff.IsUniversal() {
		freshened := freshenEffectCondition(eff)
		np, ok := goals.AddGoal(p, fromID, freshened, false, opts(ctx))
		if !ok {
			return p, false
		}
		p = np
	}

	if newStep != nil {
		p = p.AddStep(*newStep)
		np, ok := goals.AddGoal(p, newStep.ID, newStep.Action.Precondition, false, opts(ctx))
		if !ok {
			return p, false
		}
		p = np
	}

	no, ok := p.Orderings.Refine(collab.Ordering{BeforeID: fromID, T1: eff.When, AfterID: toID, T2: condTime})
	if !ok {
		return p, false
	}
	p.Orderings = no

	link := model.Link{FromID: fromID, EffectTime: eff.When, ToID: toID, ConditionTime: condTime, Condition: cond}
	p = p.AddLink(link)
	p = applyUnsafes(p, linkThreats(p, link))

	if newStep != nil {
		p = applyUnsafes(p, stepThreats(p, *newStep))
		if ctx.Problem.IsDurative() {
			p = applyMutexThreats(p, mutexThreatsForStep(p, *newStep))
		}
		if newStep.Action.Composite {
			p = p.AddUnexpanded(plan.UnexpandedCompositeStep{Step: *newStep})
		}
	}

	return p, true
}

// closedWorldLink handles a negated open condition by asserting that
// every init-state atom that could unify with the goal is ruled out by
// inequality, then linking from INIT_ID/AT_END if that assertion is
// consistent (core spec §4.4).
func closedWorldLink(ctx *engine.Context, p plan.Plan, o plan.OpenCondition) (plan.Plan, bool) {
	positive := o.Literal
	positive.Negated = false

	var conjuncts []formula.Formula
	for _, init := range ctx.Problem.Init {
		if init.Predicate != positive.Predicate || len(init.Args) != len(positive.Args) || init.Negated {
			continue
		}
		var disjuncts []formula.Formula
		for i := range init.Args {
			if init.Args[i] != positive.Args[i] {
				disjuncts = append(disjuncts, formula.Neq{Left: positive.Args[i], Right: init.Args[i]})
			}
		}
		if len(disjuncts) == 0 {
			// This init atom matches exactly; the negated goal can never
			// hold against it, so the closed-world link is impossible.
			return p, false
		}
		conjuncts = append(conjuncts, formula.Disj(disjuncts...))
	}

	goal := formula.Formula(formula.True{})
	if len(conjuncts) > 0 {
		goal = formula.Conj(conjuncts...)
	}

	np, ok := goals.AddGoal(p, o.StepID, goal, false, opts(ctx))
	if !ok {
		return p, false
	}
	p = np

	no, ok := p.Orderings.Refine(collab.Ordering{BeforeID: model.InitID, T1: formula.AtEnd, AfterID: o.StepID, T2: o.When})
	if !ok {
		return p, false
	}
	p.Orderings = no

	link := model.Link{FromID: model.InitID, EffectTime: formula.AtEnd, ToID: o.StepID, ConditionTime: o.When, Condition: o.Literal}
	p = p.AddLink(link)
	p = applyUnsafes(p, linkThreats(p, link))
	return p, true
}

// repairDisjunction emits one successor per disjunct: remove this open
// condition, then admit that disjunct as a fresh goal.
func repairDisjunction(ctx *engine.Context, p plan.Plan, o plan.OpenCondition, discard func(plan.Plan) plan.Plan) []plan.Plan {
	or, ok := o.Disjunction.(formula.Or)
	if !ok {
		return nil
	}
	var out []plan.Plan
	for _, d := range or.Disjuncts {
		if succ, ok := goals.AddGoal(discard(p), o.StepID, d, false, opts(ctx)); ok {
			out = append(out, succ)
		}
	}
	return out
}

// repairInequality branches on the variable with the smaller domain: for
// every object in its domain, emit a successor binding this variable to
// that object and the other side not to it.
func repairInequality(ctx *engine.Context, p plan.Plan, o plan.OpenCondition, discard func(plan.Plan) plan.Plan) []plan.Plan {
	leftDomain := p.Bindings.Domain(o.IneqLeft, o.IneqLeftStep, func() []string { return allObjects(ctx) })
	rightDomain := p.Bindings.Domain(o.IneqRight, o.IneqRightStep, func() []string { return allObjects(ctx) })

	branchVar, branchStep, otherVar, otherStep, domain := o.IneqLeft, o.IneqLeftStep, o.IneqRight, o.IneqRightStep, leftDomain
	if len(rightDomain) < len(leftDomain) {
		branchVar, branchStep, otherVar, otherStep, domain = o.IneqRight, o.IneqRightStep, o.IneqLeft, o.IneqLeftStep, rightDomain
	}

	var out []plan.Plan
	for _, obj := range domain {
		obj := formula.Obj(obj)
		base := discard(p)
		nb, ok := base.Bindings.Add([]collab.Binding{
			{Var: branchVar, VarStep: branchStep, Term: obj, TermStep: branchStep, Equal: true},
			{Var: otherVar, VarStep: otherStep, Term: obj, TermStep: branchStep, Equal: false},
		}, false)
		if !ok {
			continue
		}
		base.Bindings = nb
		out = append(out, base)
	}
	return out
}

func allObjects(ctx *engine.Context) []string {
	var out []string
	for _, names := range ctx.Domain.Objects {
		out = append(out, names...)
	}
	return out
}
