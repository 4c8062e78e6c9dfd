// Package plan implements the partial-plan data model: steps, causal
// links, flaws, decomposition frames, and the immutable Plan record
// itself (core spec §3). Plan values are cheap to fork: every mutating
// operation returns a new Plan sharing the chains, Bindings, and
// Orderings it didn't touch with its parent, the way the teacher's
// pkg/session.Manager shares a StateStore and reference-counts access to
// it rather than copying state per session.
package plan

import (
	"github.com/aretw0/pocl/internal/chain"
	"github.com/aretw0/pocl/internal/collab"
	"github.com/aretw0/pocl/internal/model"
)

// Plan is an immutable partial plan. See core spec §3 for the field-level
// contract; Go idiom replaces the original's manual reference counting on
// Bindings/Orderings with plain interface values — both collab.Bindings
// and collab.Orderings are themselves immutable-per-value (every mutator
// returns a new instance), so sharing one across many Plan values needs
// no bracketing at all once the instance itself doesn't mutate in place.
type Plan struct {
	ID     int64
	Parent int64

	Steps    chain.Chain[Step]
	NumSteps int

	Links    chain.Chain[model.Link]
	NumLinks int

	Orderings collab.Orderings
	Bindings  collab.Bindings

	DecompositionFrames    chain.Chain[DecompositionFrame]
	NumDecompositionFrames int
	DecompositionLinks     chain.Chain[DecompositionLink]
	NumDecompositionLinks  int

	Unsafes     chain.Chain[Unsafe]
	NumUnsafes  int
	OpenConds   chain.Chain[OpenCondition]
	NumOpenConds int
	Unexpanded  chain.Chain[UnexpandedCompositeStep]
	NumUnexpanded int
	MutexThreats chain.Chain[MutexThreat]
	NumMutexThreats int

	// MutexSeeded is false until internal/refine/mutex.go has swept all
	// step pairs once and replaced the placeholder mutex chain with
	// discovered threats (§4.5).
	MutexSeeded bool

	// StaticConditionHits counts literals that goal admission recognized
	// as static-predicate preconditions and therefore did not raise as
	// OpenCondition flaws (strip_static_preconditions), kept separate
	// from NumOpenConds so the §8 invariant "flaw counts equal the
	// lengths of their respective chains" holds exactly while still
	// letting a heuristic weigh in how many static obligations a plan
	// carries.
	StaticConditionHits int

	// Rank is computed lazily by the heuristic service and written at
	// most once; nil means "not yet computed". It is the only field a
	// Plan value's holder may ever see populated after the fact, which
	// is why Plan is handled by value everywhere else: SetRank below
	// returns a new Plan rather than mutating the receiver, preserving
	// the "write at most once, never observed partially written"
	// contract without needing a mutex (frontier entries are never
	// shared across goroutines — see §5).
	Rank []float64
}

// Complete reports whether every flaw chain is empty (core spec §3).
func (p Plan) Complete() bool {
	return p.NumUnsafes == 0 && p.NumOpenConds == 0 && p.NumUnexpanded == 0 && p.NumMutexThreats == 0
}

// SetRank returns a copy of p with Rank populated. Per the core spec's
// §4.8, rank is computed at most once per plan; callers should only call
// this the first time a plan is popped needing a rank.
func (p Plan) SetRank(r []float64) Plan {
	p.Rank = r
	return p
}

// AddStep returns a new plan with step s appended, NumSteps incremented.
func (p Plan) AddStep(s Step) Plan {
	p.Steps = chain.Cons(s, p.Steps)
	p.NumSteps++
	return p
}

// AddLink returns a new plan with link l appended.
func (p Plan) AddLink(l model.Link) Plan {
	p.Links = chain.Cons(l, p.Links)
	p.NumLinks++
	return p
}

// AddUnsafe pushes a new Unsafe flaw.
func (p Plan) AddUnsafe(u Unsafe) Plan {
	p.Unsafes = chain.Cons(u, p.Unsafes)
	p.NumUnsafes++
	return p
}

// RemoveUnsafe removes the first Unsafe flaw matching eq.
func (p Plan) RemoveUnsafe(eq func(Unsafe) bool) Plan {
	if next, ok := p.Unsafes.Remove(eq); ok {
		p.Unsafes = next
		p.NumUnsafes--
	}
	return p
}

// AddOpenCondition pushes a new OpenCondition flaw.
func (p Plan) AddOpenCondition(o OpenCondition) Plan {
	p.OpenConds = chain.Cons(o, p.OpenConds)
	p.NumOpenConds++
	return p
}

// RemoveOpenCondition removes the first OpenCondition flaw matching eq.
func (p Plan) RemoveOpenCondition(eq func(OpenCondition) bool) Plan {
	if next, ok := p.OpenConds.Remove(eq); ok {
		p.OpenConds = next
		p.NumOpenConds--
	}
	return p
}

// AddUnexpanded pushes a new UnexpandedCompositeStep flaw.
func (p Plan) AddUnexpanded(u UnexpandedCompositeStep) Plan {
	p.Unexpanded = chain.Cons(u, p.Unexpanded)
	p.NumUnexpanded++
	return p
}

// RemoveUnexpanded removes the first UnexpandedCompositeStep flaw matching eq.
func (p Plan) RemoveUnexpanded(eq func(UnexpandedCompositeStep) bool) Plan {
	if next, ok := p.Unexpanded.Remove(eq); ok {
		p.Unexpanded = next
		p.NumUnexpanded--
	}
	return p
}

// AddMutexThreat pushes a new MutexThreat flaw.
func (p Plan) AddMutexThreat(m MutexThreat) Plan {
	p.MutexThreats = chain.Cons(m, p.MutexThreats)
	p.NumMutexThreats++
	return p
}

// RemoveMutexThreat removes the first MutexThreat flaw matching eq.
func (p Plan) RemoveMutexThreat(eq func(MutexThreat) bool) Plan {
	if next, ok := p.MutexThreats.Remove(eq); ok {
		p.MutexThreats = next
		p.NumMutexThreats--
	}
	return p
}

// AddDecompositionFrame records an installed frame.
func (p Plan) AddDecompositionFrame(f DecompositionFrame) Plan {
	p.DecompositionFrames = chain.Cons(f, p.DecompositionFrames)
	p.NumDecompositionFrames++
	return p
}

// AddDecompositionLink records that a composite step was expanded via a
// frame.
func (p Plan) AddDecompositionLink(l DecompositionLink) Plan {
	p.DecompositionLinks = chain.Cons(l, p.DecompositionLinks)
	p.NumDecompositionLinks++
	return p
}

// StepByID scans the step chain for id. O(n); fine at the sizes partial
// plans reach (a handful to a few dozen steps), and keeps Step storage a
// plain persistent chain rather than an auxiliary index that would itself
// need sharing discipline.
func (p Plan) StepByID(id model.StepID) (Step, bool) {
	var found Step
	ok := false
	p.Steps.Each(func(s Step) bool {
		if s.ID == id {
			found, ok = s, true
			return false
		}
		return true
	})
	return found, ok
}

// HasDecompositionLink reports whether compositeID already has a recorded
// decomposition link.
func (p Plan) HasDecompositionLink(compositeID model.StepID) bool {
	found := false
	p.DecompositionLinks.Each(func(l DecompositionLink) bool {
		if l.CompositeID == compositeID {
			found = true
			return false
		}
		return true
	})
	return found
}

// TotalFlaws returns the sum of every flaw chain's length, the quantity
// the lazily-computed Rank's primary component is usually a function of.
func (p Plan) TotalFlaws() int {
	return p.NumUnsafes + p.NumOpenConds + p.NumUnexpanded + p.NumMutexThreats
}
