// Package bindings provides the default in-process Bindings
// collaborator: a union-find over (term, step)-scoped variables and
// objects, with a side list of inequality constraints. It is grounded on
// the equivalence-class/justification bookkeeping style of the
// assumption-based truth-maintenance system in
// _examples/ishong93-bps/atms/go (environments as sets of assumptions
// that must stay mutually consistent) — here specialized to variable
// equality/inequality instead of ATMS environments.
package bindings

import (
	"fmt"

	"github.com/aretw0/pocl/internal/collab"
	"github.com/aretw0/pocl/internal/formula"
	"github.com/aretw0/pocl/internal/model"
)

type ref struct {
	name   string
	step   model.StepID
	isVar  bool
}

func refOf(t formula.Term, step model.StepID) ref {
	if !t.Var {
		// Objects are global: not scoped to a step.
		return ref{name: t.Name, isVar: false}
	}
	return ref{name: t.Name, step: step, isVar: true}
}

func (r ref) term() formula.Term {
	return formula.Term{Name: r.name, Var: r.isVar}
}

type ineq struct{ a, b ref }

// Set is an immutable union-find bindings structure. The zero value is
// the empty, fully unconstrained Set.
type Set struct {
	parent map[ref]ref
	ineqs  []ineq
}

// New returns the empty bindings set.
func New() *Set {
	return &Set{}
}

func (s *Set) clone() *Set {
	p := make(map[ref]ref, len(s.parent))
	for k, v := range s.parent {
		p[k] = v
	}
	return &Set{parent: p, ineqs: append([]ineq(nil), s.ineqs...)}
}

func (s *Set) find(r ref) ref {
	if s == nil {
		return r
	}
	cur := r
	for {
		next, ok := s.parent[cur]
		if !ok || next == cur {
			return cur
		}
		cur = next
	}
}

// union attaches a's class to b's class (or vice versa), favoring an
// object representative over a variable one so Binding() resolves to the
// concrete object as soon as one is known. Returns false if both sides
// resolve to distinct objects.
func (s *Set) union(a, b ref) bool {
	ra, rb := s.find(a), s.find(b)
	if ra == rb {
		return true
	}
	if !ra.isVar && !rb.isVar {
		return ra.name == rb.name
	}
	if !rb.isVar {
		s.parent[ra] = rb
		return true
	}
	s.parent[rb] = ra
	return true
}

// Add implements collab.Bindings.
func (s *Set) Add(bs []collab.Binding, testOnly bool) (collab.Bindings, bool) {
	next := s.clone()
	for _, b := range bs {
		a := refOf(b.Var, b.VarStep)
		c := refOf(b.Term, b.TermStep)
		if b.Equal {
			if !next.union(a, c) {
				return s, false
			}
		} else {
			next.ineqs = append(next.ineqs, ineq{a: a, b: c})
		}
	}
	for _, iq := range next.ineqs {
		if next.find(iq.a) == next.find(iq.b) {
			return s, false
		}
	}
	_ = testOnly // testOnly only affects whether the caller retains the result, not correctness.
	return next, true
}

// Unify implements collab.Bindings.
func (s *Set) Unify(a formula.Term, sa model.StepID, b formula.Term, sb model.StepID) (collab.Unifier, bool) {
	ra := s.find(refOf(a, sa))
	rb := s.find(refOf(b, sb))
	if ra == rb {
		return collab.Unifier{}, true
	}
	if !ra.isVar && !rb.isVar {
		if ra.name == rb.name {
			return collab.Unifier{}, true
		}
		return nil, false
	}
	if !ra.isVar {
		return collab.Unifier{rb.name: ra.term()}, true
	}
	return collab.Unifier{ra.name: rb.term()}, true
}

// Affects implements collab.Bindings.
func (s *Set) Affects(effect formula.Literal, effectStep model.StepID, cond formula.Literal, condStep model.StepID) bool {
	if effect.Predicate != cond.Predicate {
		return false
	}
	if effect.Negated == cond.Negated {
		// Same polarity: the effect reasserts, doesn't threaten, the
		// condition.
		return false
	}
	if len(effect.Args) != len(cond.Args) {
		return false
	}
	for i := range effect.Args {
		if _, ok := s.Unify(effect.Args[i], effectStep, cond.Args[i], condStep); !ok {
			return false
		}
	}
	return true
}

// Binding implements collab.Bindings.
func (s *Set) Binding(v formula.Term, step model.StepID) formula.Term {
	return s.find(refOf(v, step)).term()
}

// Domain implements collab.Bindings.
func (s *Set) Domain(v formula.Term, step model.StepID, objectsOfType func() []string) []string {
	r := s.find(refOf(v, step))
	if !r.isVar {
		return []string{r.name}
	}
	full := objectsOfType()
	excluded := map[string]bool{}
	for _, iq := range s.ineqs {
		var other ref
		switch {
		case iq.a == r:
			other = s.find(iq.b)
		case iq.b == r:
			other = s.find(iq.a)
		default:
			continue
		}
		if !other.isVar {
			excluded[other.name] = true
		}
	}
	if len(excluded) == 0 {
		return full
	}
	out := make([]string, 0, len(full))
	for _, o := range full {
		if !excluded[o] {
			out = append(out, o)
		}
	}
	return out
}

// ConsistentWith implements collab.Bindings.
func (s *Set) ConsistentWith(iq collab.Inequality) bool {
	a := s.find(refOf(iq.Left, iq.LeftStep))
	b := s.find(refOf(iq.Right, iq.RightStep))
	return a != b
}

// String is for debugging/tests only.
func (s *Set) String() string {
	return fmt.Sprintf("bindings{classes=%d, ineqs=%d}", len(s.parent), len(s.ineqs))
}
