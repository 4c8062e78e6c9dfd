// Package goals implements goal admission (core spec §4.1): decomposing a
// formula into atomic obligations — OpenCondition flaws and Bindings
// additions — against a step's precondition or a link's re-admitted
// effect condition.
package goals

import (
	"fmt"
	"math/rand"

	"github.com/aretw0/pocl/internal/collab"
	"github.com/aretw0/pocl/internal/formula"
	"github.com/aretw0/pocl/internal/model"
	"github.com/aretw0/pocl/internal/plan"
)

// Options configures admission per the core spec's §6 Parameters table
// entries that affect goal admission specifically.
type Options struct {
	StripStaticPreconditions bool
	RandomOpenConditions     bool
	StaticPredicates         map[string]bool
	Rand                     *rand.Rand
}

type workItem struct {
	f formula.Formula
}

// AddGoal decomposes f into OpenCondition flaws and Bindings additions
// scoped to stepID, per the core spec's §4.1 case analysis. It returns
// the updated plan and true, or the original plan and false if f is (or
// reduces to) a contradiction. When testOnly is true, no OpenCondition
// flaws or Bindings changes are retained in the returned plan's chains —
// the call only reports whether admission would succeed, mirroring the
// core spec's "unless test_only" qualifiers.
func AddGoal(p plan.Plan, stepID model.StepID, f formula.Formula, testOnly bool, opts Options) (plan.Plan, bool) {
	orig := p
	worklist := []workItem{{f}}
	for len(worklist) > 0 {
		item := worklist[0]
		worklist = worklist[1:]

		next, spawned, ok := admitOne(p, stepID, item.f, testOnly, opts)
		if !ok {
			return orig, false
		}
		p = next

		if opts.RandomOpenConditions && len(spawned) > 0 && opts.Rand != nil {
			for _, it := range spawned {
				pos := opts.Rand.Intn(len(worklist) + 1)
				worklist = append(worklist, workItem{})
				copy(worklist[pos+1:], worklist[pos:])
				worklist[pos] = it
			}
		} else {
			worklist = append(worklist, spawned...)
		}
	}
	return p, true
}

// admitOne processes a single formula node, returning the updated plan,
// any further work items it spawned (conjuncts, an existential/universal
// body), and whether admission succeeded.
func admitOne(p plan.Plan, stepID model.StepID, f formula.Formula, testOnly bool, opts Options) (plan.Plan, []workItem, bool) {
	switch v := f.(type) {
	case formula.True:
		return p, nil, true

	case formula.False:
		return p, nil, false

	case formula.TimedLiteral:
		if opts.StripStaticPreconditions && opts.StaticPredicates != nil && opts.StaticPredicates[v.Lit.Predicate] {
			if !testOnly {
				p.StaticConditionHits++
			}
			return p, nil, true
		}
		if !testOnly {
			p = p.AddOpenCondition(plan.OpenCondition{
				StepID:  stepID,
				Kind:    plan.CondLiteral,
				Literal: v.Lit,
				When:    v.When,
			})
		}
		return p, nil, true

	case formula.And:
		return p, conjunctsToWork(v.Conjuncts), true

	case formula.Or:
		if !testOnly {
			p = p.AddOpenCondition(plan.OpenCondition{
				StepID:      stepID,
				Kind:        plan.CondDisjunction,
				Disjunction: v,
			})
		}
		return p, nil, true

	case formula.Eq:
		if testOnly {
			_, ok := p.Bindings.Add([]collab.Binding{{Var: v.Left, VarStep: stepID, Term: v.Right, TermStep: stepID, Equal: true}}, true)
			return p, nil, ok
		}
		nb, ok := p.Bindings.Add([]collab.Binding{{Var: v.Left, VarStep: stepID, Term: v.Right, TermStep: stepID, Equal: true}}, false)
		if !ok {
			return p, nil, false
		}
		p.Bindings = nb
		return p, nil, true

	case formula.Neq:
		if v.Left.Var && v.Right.Var {
			// Both sides schematic: which one is narrower isn't known
			// until repair time, so defer to a CondInequality flaw
			// instead of recording the inequality eagerly.
			if !testOnly {
				p = p.AddOpenCondition(plan.OpenCondition{
					StepID: stepID, Kind: plan.CondInequality,
					IneqLeft: v.Left, IneqLeftStep: stepID,
					IneqRight: v.Right, IneqRightStep: stepID,
				})
			}
			return p, nil, true
		}
		if testOnly {
			_, ok := p.Bindings.Add([]collab.Binding{{Var: v.Left, VarStep: stepID, Term: v.Right, TermStep: stepID, Equal: false}}, true)
			return p, nil, ok
		}
		nb, ok := p.Bindings.Add([]collab.Binding{{Var: v.Left, VarStep: stepID, Term: v.Right, TermStep: stepID, Equal: false}}, false)
		if !ok {
			return p, nil, false
		}
		p.Bindings = nb
		return p, nil, true

	case formula.Exists:
		// Variables remain schematic; descend into the body unchanged.
		return p, []workItem{{v.Body}}, true

	case formula.Forall:
		expanded := expandUniversal(v)
		return p, conjunctsToWork(expanded), true

	default:
		panic(fmt.Sprintf("goals: unknown kind of goal: %T", f))
	}
}

func conjunctsToWork(fs []formula.Formula) []workItem {
	out := make([]workItem, len(fs))
	for i, f := range fs {
		out[i] = workItem{f}
	}
	return out
}

// expandUniversal grounds a Forall against its finite object domain
// (UniversalBase), producing one conjunct per combination of bindings for
// the quantified variables — the core spec's §4.1 "first expand against
// the finite object domain and descend".
func expandUniversal(u formula.Forall) []formula.Formula {
	subs := []map[string]formula.Term{{}}
	for _, v := range u.Vars {
		objs := u.UniversalBase[v.Name]
		var next []map[string]formula.Term
		for _, s := range subs {
			for _, o := range objs {
				ns := make(map[string]formula.Term, len(s)+1)
				for k, t := range s {
					ns[k] = t
				}
				ns[v.Name] = o
				next = append(next, ns)
			}
		}
		subs = next
	}
	out := make([]formula.Formula, 0, len(subs))
	for _, s := range subs {
		out = append(out, formula.Substitute(u.Body, s))
	}
	return out
}
