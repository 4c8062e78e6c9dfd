// Package refine implements the refinement operators that repair a single
// flaw into zero or more successor plans (core spec §4.3-§4.6): unsafe
// links, open conditions, mutex threats, and unexpanded composite steps.
// Every operator is a pure function from (engine.Context, plan.Plan,
// flaw) to a slice of successor plans; none of them touch the frontier or
// assign plan ids beyond what engine.Context.NextPlanID supplies — that
// bookkeeping belongs to internal/search.
package refine

import (
	"fmt"

	"github.com/aretw0/pocl/internal/collab"
	"github.com/aretw0/pocl/internal/engine"
	"github.com/aretw0/pocl/internal/formula"
	"github.com/aretw0/pocl/internal/goals"
	"github.com/aretw0/pocl/internal/model"
	"github.com/aretw0/pocl/internal/plan"
)

// ThreatIsReal reports whether u is still an actual threat given the
// plan's current orderings and bindings (core spec §4.3): the ordering
// structure must still permit the threatening step to fall between the
// link's two endpoints, and the threatening effect must still be able to
// unify with the link's condition.
func ThreatIsReal(p plan.Plan, u plan.Unsafe) bool {
	canFollowFrom := p.Orderings.PossiblyBefore(u.Link.FromID, u.Link.EffectTime, u.StepID, u.Effect.When)
	canPrecedeTo := p.Orderings.PossiblyBefore(u.StepID, u.Effect.When, u.Link.ToID, u.Link.ConditionTime)
	if !canFollowFrom || !canPrecedeTo {
		return false
	}
	return p.Bindings.Affects(u.Effect.Literal, u.StepID, u.Link.Condition, u.Link.ToID)
}

// RepairUnsafe produces every successor plan that resolves u, per the
// core spec's §4.3: Separate, Promote, Demote, each independent and
// producing at most one successor, plus a bogus-flaw discharge when u no
// longer threatens anything.
func RepairUnsafe(ctx *engine.Context, p plan.Plan, u plan.Unsafe) []plan.Plan {
	discard := func(pl plan.Plan) plan.Plan {
		return pl.RemoveUnsafe(func(o plan.Unsafe) bool { return unsafeEq(o, u) })
	}

	if !ThreatIsReal(p, u) {
		return []plan.Plan{discard(p)}
	}

	var out []plan.Plan
	if sp, ok := separate(ctx, p, u); ok {
		out = append(out, discard(sp))
	}
	if pp, ok := promote(p, u); ok {
		out = append(out, discard(pp))
	}
	if dp, ok := demote(p, u); ok {
		out = append(out, discard(dp))
	}
	return out
}

func unsafeEq(a, b plan.Unsafe) bool {
	return a.StepID == b.StepID && linksEq(a.Link, b.Link)
}

func linksEq(a, b model.Link) bool {
	if a.FromID != b.FromID || a.EffectTime != b.EffectTime || a.ToID != b.ToID || a.ConditionTime != b.ConditionTime {
		return false
	}
	return literalsEq(a.Condition, b.Condition)
}

func literalsEq(a, b formula.Literal) bool {
	if a.Predicate != b.Predicate || a.Negated != b.Negated || len(a.Args) != len(b.Args) {
		return false
	}
	for i := range a.Args {
		if a.Args[i] != b.Args[i] {
			return false
		}
	}
	return true
}

// promote forces the link's consumer to occur entirely before the
// threatening step, if the orderings still permit it.
func promote(p plan.Plan, u plan.Unsafe) (plan.Plan, bool) {
	if !p.Orderings.PossiblyBefore(u.Link.ToID, u.Link.ConditionTime, u.StepID, u.Effect.When) {
		return p, false
	}
	no, ok := p.Orderings.Refine(orderingFor(u.Link.ToID, u.Link.ConditionTime, u.StepID, u.Effect.When))
	if !ok {
		return p, false
	}
	p.Orderings = no
	return p, true
}

// demote forces the threatening step to occur entirely before the link's
// producer, if the orderings still permit it.
func demote(p plan.Plan, u plan.Unsafe) (plan.Plan, bool) {
	if !p.Orderings.PossiblyBefore(u.StepID, u.Effect.When, u.Link.FromID, u.Link.EffectTime) {
		return p, false
	}
	no, ok := p.Orderings.Refine(orderingFor(u.StepID, u.Effect.When, u.Link.FromID, u.Link.EffectTime))
	if !ok {
		return p, false
	}
	p.Orderings = no
	return p, true
}

func orderingFor(before model.StepID, t1 formula.Timing, after model.StepID, t2 formula.Timing) collab.Ordering {
	return collab.Ordering{BeforeID: before, T1: t1, AfterID: after, T2: t2}
}

// separate builds the disjunctive inequality goal of core spec §4.3 and
// admits it at the threatening step, accepting the successor only if
// admission (which bottoms out in a Bindings.Add call, directly or after
// later disjunction resolution) succeeds.
func separate(ctx *engine.Context, p plan.Plan, u plan.Unsafe) (plan.Plan, bool) {
	effLit := u.Effect.Literal
	condLit := u.Link.Condition
	if len(effLit.Args) != len(condLit.Args) {
		return p, false
	}

	quantified := map[string]bool{}
	for _, v := range u.Effect.Parameters {
		quantified[v.Name] = true
	}

	var disjuncts []formula.Formula
	for i := range effLit.Args {
		left, right := effLit.Args[i], condLit.Args[i]
		if left.Var && quantified[left.Name] {
			continue
		}
		if left == right {
			continue
		}
		disjuncts = append(disjuncts, formula.Neq{Left: left, Right: right})
	}

	if u.Effect.IsConditional() {
		disjuncts = append(disjuncts, freshenedNegation(ctx, u.Effect))
	}

	if len(disjuncts) == 0 {
		return p, false
	}

	var goal formula.Formula
	if len(disjuncts) == 1 {
		goal = disjuncts[0]
	} else {
		goal = formula.Disj(disjuncts...)
	}

	opts := goals.Options{
		StripStaticPreconditions: ctx.Params.StripStaticPreconditions,
		RandomOpenConditions:     ctx.Params.RandomOpenConditions,
		StaticPredicates:         ctx.Domain.StaticPredicates(),
		Rand:                     ctx.Rand,
	}
	return goals.AddGoal(p, u.StepID, goal, false, opts)
}

// freshenedNegation builds the universal negation of a conditional
// effect's antecedent, re-parameterized with fresh variable names so the
// quantifier doesn't capture the original effect's own bound variables
// (core spec §4.3). The domain each fresh variable ranges over falls back
// to every object in the domain's object universe: formula.Term carries
// no declared parameter type, so a precise per-variable domain isn't
// recoverable here without a grounding pass that hasn't run yet for this
// step. internal/ground narrows this once the step's own parameters are
// bound.
func freshenedNegation(ctx *engine.Context, e model.Effect) formula.Formula {
	sub := map[string]formula.Term{}
	fresh := make([]formula.Term, 0, len(e.Parameters))
	base := map[string][]formula.Term{}
	var allObjects []formula.Term
	for _, names := range ctx.Domain.Objects {
		for _, n := range names {
			allObjects = append(allObjects, formula.Obj(n))
		}
	}
	for i, v := range e.Parameters {
		nv := formula.Var(fmt.Sprintf("%s$sep%d", v.Name, i))
		sub[v.Name] = nv
		fresh = append(fresh, nv)
		base[nv.Name] = allObjects
	}
	negated := formula.Substitute(negate(e.Condition), sub)
	if len(fresh) == 0 {
		return negated
	}
	return formula.Forall{Vars: fresh, UniversalBase: base, Body: negated}
}

// negate builds the logical negation of a formula restricted to the
// shapes goal admission already understands (literal and conjunction of
// literals); anything richer than that never appears as an effect
// condition in this planner.
func negate(f formula.Formula) formula.Formula {
	switch v := f.(type) {
	case formula.True:
		return formula.False{}
	case formula.False:
		return formula.True{}
	case formula.TimedLiteral:
		return formula.TimedLiteral{Lit: v.Lit.Negate(), When: v.When}
	case formula.And:
		out := make([]formula.Formula, len(v.Conjuncts))
		for i, c := range v.Conjuncts {
			out[i] = negate(c)
		}
		return formula.Disj(out...)
	default:
		return formula.False{}
	}
}
