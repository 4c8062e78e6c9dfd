package refine

import (
	"github.com/aretw0/pocl/internal/model"
	"github.com/aretw0/pocl/internal/plan"
)

// linkThreats scans every step currently in p for an effect that could
// threaten the newly installed link — the "detect new threats to it from
// every step" half of make_link (core spec §4.4 step 4).
func linkThreats(p plan.Plan, link model.Link) []plan.Unsafe {
	var out []plan.Unsafe
	p.Steps.Each(func(s plan.Step) bool {
		if s.Action == nil {
			return true
		}
		for _, e := range s.Action.Effects {
			u := plan.Unsafe{Link: link, StepID: s.ID, Effect: e}
			if ThreatIsReal(p, u) {
				out = append(out, u)
			}
		}
		return true
	})
	return out
}

// stepThreats scans every existing link for whether one of newStep's own
// effects threatens it — the "threats it poses to existing links" half of
// make_link, only meaningful for a freshly added step.
func stepThreats(p plan.Plan, newStep plan.Step) []plan.Unsafe {
	var out []plan.Unsafe
	if newStep.Action == nil {
		return out
	}
	p.Links.Each(func(l model.Link) bool {
		for _, e := range newStep.Action.Effects {
			u := plan.Unsafe{Link: l, StepID: newStep.ID, Effect: e}
			if ThreatIsReal(p, u) {
				out = append(out, u)
			}
		}
		return true
	})
	return out
}

// mutexThreatsForStep finds durative mutex threats newStep's effects pose
// against every other step's effects: two unifying effect atoms that
// could execute concurrently (core spec §4.5), not an effect-vs-condition
// threat like linkThreats/stepThreats.
func mutexThreatsForStep(p plan.Plan, newStep plan.Step) []plan.MutexThreat {
	var out []plan.MutexThreat
	if newStep.Action == nil {
		return out
	}
	p.Steps.Each(func(other plan.Step) bool {
		if other.ID == newStep.ID || other.Action == nil {
			return true
		}
		if !p.Orderings.PossiblyConcurrent(newStep.ID, other.ID) {
			return true
		}
		for _, e1 := range newStep.Action.Effects {
			for _, e2 := range other.Action.Effects {
				if effectsUnifyingMutex(p, newStep.ID, e1, other.ID, e2) {
					out = append(out, plan.MutexThreat{
						StepID1: newStep.ID, Effect1: e1,
						StepID2: other.ID, Effect2: e2,
					})
				}
			}
		}
		return true
	})
	return out
}

// effectsUnifyingMutex reports whether two effects assert atoms over the
// same predicate with opposite polarity whose arguments could unify —
// interfering if they executed concurrently (asserting and retracting the
// same atom at once). Two effects of the same polarity never conflict.
func effectsUnifyingMutex(p plan.Plan, s1 model.StepID, e1 model.Effect, s2 model.StepID, e2 model.Effect) bool {
	l1, l2 := e1.Literal, e2.Literal
	if l1.Predicate != l2.Predicate || len(l1.Args) != len(l2.Args) {
		return false
	}
	if l1.Negated == l2.Negated {
		// Same polarity, same predicate, different steps: never a conflict
		// — idempotent restatement of the same atom is harmless.
		return false
	}
	for i := range l1.Args {
		if _, ok := p.Bindings.Unify(l1.Args[i], s1, l2.Args[i], s2); !ok {
			return false
		}
	}
	return true
}

// applyUnsafes appends every threat in us to p as Unsafe flaws.
func applyUnsafes(p plan.Plan, us []plan.Unsafe) plan.Plan {
	for _, u := range us {
		p = p.AddUnsafe(u)
	}
	return p
}

// applyMutexThreats appends every threat in ms to p as MutexThreat flaws.
func applyMutexThreats(p plan.Plan, ms []plan.MutexThreat) plan.Plan {
	for _, m := range ms {
		p = p.AddMutexThreat(m)
	}
	return p
}
