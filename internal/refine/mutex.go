package refine

import (
	"github.com/aretw0/pocl/internal/collab"
	"github.com/aretw0/pocl/internal/engine"
	"github.com/aretw0/pocl/internal/formula"
	"github.com/aretw0/pocl/internal/goals"
	"github.com/aretw0/pocl/internal/plan"
)

// RepairMutexThreat resolves a single MutexThreat flaw (durative plans
// only), per core spec §4.5. The very first mutex flaw any plan handles
// is always the placeholder seeded by initial plan construction; handling
// it triggers a one-time full sweep that replaces the placeholder with
// every genuine threat discovered across all step pairs. From then on,
// each genuine threat is repaired by separate/promote/demote analogous to
// an unsafe link's, but over two unifying effect atoms rather than an
// effect against a link condition.
func RepairMutexThreat(ctx *engine.Context, p plan.Plan, m plan.MutexThreat) []plan.Plan {
	if !p.MutexSeeded {
		return []plan.Plan{sweepMutexThreats(p)}
	}

	discard := func(pl plan.Plan) plan.Plan {
		return pl.RemoveMutexThreat(func(x plan.MutexThreat) bool { return mutexEq(x, m) })
	}

	if !mutexIsReal(p, m) {
		return []plan.Plan{discard(p)}
	}

	var out []plan.Plan
	if sp, ok := separateMutex(ctx, p, m); ok {
		out = append(out, discard(sp))
	}
	if pp, ok := promoteMutex(p, m); ok {
		out = append(out, discard(pp))
	}
	if dp, ok := demoteMutex(p, m); ok {
		out = append(out, discard(dp))
	}
	return out
}

func mutexEq(a, b plan.MutexThreat) bool {
	return a.StepID1 == b.StepID1 && a.StepID2 == b.StepID2 && literalsEq(a.Effect1.Literal, b.Effect1.Literal) && literalsEq(a.Effect2.Literal, b.Effect2.Literal)
}

func mutexIsReal(p plan.Plan, m plan.MutexThreat) bool {
	if !p.Orderings.PossiblyConcurrent(m.StepID1, m.StepID2) {
		return false
	}
	return effectsUnifyingMutex(p, m.StepID1, m.Effect1, m.StepID2, m.Effect2)
}

// sweepMutexThreats discards the placeholder chain and replaces it with
// every genuine threat found across all step pairs, marking the plan
// seeded so later calls skip straight to per-threat repair.
func sweepMutexThreats(p plan.Plan) plan.Plan {
	p.MutexThreats = p.MutexThreats.Tail() // drop the single placeholder entry
	if p.NumMutexThreats > 0 {
		p.NumMutexThreats--
	}
	p.MutexSeeded = true

	steps := p.Steps.Slice()
	for i := range steps {
		for j := i + 1; j < len(steps); j++ {
			s1, s2 := steps[i], steps[j]
			if s1.Action == nil || s2.Action == nil {
				continue
			}
			if !p.Orderings.PossiblyConcurrent(s1.ID, s2.ID) {
				continue
			}
			for _, e1 := range s1.Action.Effects {
				for _, e2 := range s2.Action.Effects {
					if effectsUnifyingMutex(p, s1.ID, e1, s2.ID, e2) {
						p = p.AddMutexThreat(plan.MutexThreat{StepID1: s1.ID, Effect1: e1, StepID2: s2.ID, Effect2: e2})
					}
				}
			}
		}
	}
	return p
}

// promoteMutex forces StepID1 to finish entirely before StepID2 starts.
func promoteMutex(p plan.Plan, m plan.MutexThreat) (plan.Plan, bool) {
	if !p.Orderings.PossiblyBefore(m.StepID1, formula.AtEnd, m.StepID2, formula.AtStart) {
		return p, false
	}
	no, ok := p.Orderings.Refine(collab.Ordering{BeforeID: m.StepID1, T1: formula.AtEnd, AfterID: m.StepID2, T2: formula.AtStart})
	if !ok {
		return p, false
	}
	p.Orderings = no
	return p, true
}

// demoteMutex forces StepID2 to finish entirely before StepID1 starts.
func demoteMutex(p plan.Plan, m plan.MutexThreat) (plan.Plan, bool) {
	if !p.Orderings.PossiblyBefore(m.StepID2, formula.AtEnd, m.StepID1, formula.AtStart) {
		return p, false
	}
	no, ok := p.Orderings.Refine(collab.Ordering{BeforeID: m.StepID2, T1: formula.AtEnd, AfterID: m.StepID1, T2: formula.AtStart})
	if !ok {
		return p, false
	}
	p.Orderings = no
	return p, true
}

// separateMutex builds the disjunctive inequality goal between the two
// effects' arguments, skipping positions either effect quantifies over,
// and admits it at StepID1.
func separateMutex(ctx *engine.Context, p plan.Plan, m plan.MutexThreat) (plan.Plan, bool) {
	a1, a2 := m.Effect1.Literal.Args, m.Effect2.Literal.Args
	if len(a1) != len(a2) {
		return p, false
	}
	quantified := map[string]bool{}
	for _, v := range m.Effect1.Parameters {
		quantified[v.Name] = true
	}
	for _, v := range m.Effect2.Parameters {
		quantified[v.Name] = true
	}

	var disjuncts []formula.Formula
	for i := range a1 {
		if a1[i].Var && quantified[a1[i].Name] {
			continue
		}
		if a2[i].Var && quantified[a2[i].Name] {
			continue
		}
		if a1[i] == a2[i] {
			continue
		}
		disjuncts = append(disjuncts, formula.Neq{Left: a1[i], Right: a2[i]})
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
	return goals.AddGoal(p, m.StepID1, goal, false, opts(ctx))
}
