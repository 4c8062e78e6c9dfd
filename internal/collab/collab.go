// Package collab declares the interfaces for the planner's external
// collaborators (core spec §6): the planning graph (reachability /
// heuristic), the orderings structure, and the bindings structure. The
// core spec treats these as provided; this package is the seam between
// the search engine and whatever implementation backs them. Default,
// fully in-process implementations live in the sibling packages
// collab/memgraph, collab/orderings, collab/bindings so the module runs
// standalone without a PDDL front end wired in.
package collab

import (
	"github.com/aretw0/pocl/internal/formula"
	"github.com/aretw0/pocl/internal/model"
)

// Unifier is the substitution a successful Bindings.Unify or
// PlanningGraph achiever match produces: variable name -> term.
type Unifier map[string]formula.Term

// Inequality is a single disequality constraint between two terms, each
// scoped to the step (schema instantiation) it was stated in.
type Inequality struct {
	Left      formula.Term
	LeftStep  model.StepID
	Right     formula.Term
	RightStep model.StepID
}

// Binding is a single equality or inequality obligation produced by goal
// admission's BindingLiteral case (§4.1).
type Binding struct {
	Var     formula.Term
	VarStep model.StepID
	Term    formula.Term
	TermStep model.StepID
	Equal   bool
}

// Bindings is an opaque equivalence-class structure over variables and
// objects, shared by reference across plans. Every mutating method
// returns a new Bindings value (or ok=false on inconsistency); the
// receiver is never mutated, so existing holders keep seeing their own
// view even as other plans fork new Bindings values from it.
type Bindings interface {
	// Add consistently incorporates every binding in the list, or
	// reports false if the addition is inconsistent. When testOnly is
	// true, no new value needs to be retained by the caller — Add may
	// still return the prospective result so callers can inspect it, but
	// the caller must not rely on it being installed anywhere.
	Add(bindings []Binding, testOnly bool) (Bindings, bool)

	// Unify finds a substitution making a (scoped to step sa) and b
	// (scoped to step sb) equal, or reports ok=false.
	Unify(a formula.Term, sa model.StepID, b formula.Term, sb model.StepID) (Unifier, bool)

	// Affects reports whether effect (scoped to effectStep) can unify
	// with cond (scoped to condStep) — i.e. whether placing the effect's
	// step between a link's endpoints could threaten a link asserting
	// cond.
	Affects(effect formula.Literal, effectStep model.StepID, cond formula.Literal, condStep model.StepID) bool

	// Binding returns the representative term of v's equivalence class,
	// or v itself if v is unbound.
	Binding(v formula.Term, step model.StepID) formula.Term

	// Domain returns the set of object names v could still be bound to,
	// given the finite object domain of the named type (empty string
	// means "use v's declared parameter type" and is resolved by the
	// caller before invoking Domain).
	Domain(v formula.Term, step model.StepID, objectsOfType func() []string) []string

	// ConsistentWith reports whether ineq could still hold given the
	// current equivalence classes (used to discharge/confirm a
	// BRANCH_ON_INEQUALITY flaw without committing to a branch).
	ConsistentWith(ineq Inequality) bool
}

// Ordering is one precedence constraint: before.T1 must happen no later
// than after.T2. Weight is the minimum temporal gap the constraint
// enforces (0 for binary/non-temporal orderings); it feeds Schedule's
// longest-path computation and is ignored by non-temporal callers.
type Ordering struct {
	BeforeID model.StepID
	T1       formula.Timing
	AfterID  model.StepID
	T2       formula.Timing
	Weight   float64
}

// Orderings maintains and refines precedence constraints, binary or
// temporal, shared by reference across plans the same way Bindings is.
type Orderings interface {
	// PossiblyBefore reports whether the orderings are consistent with
	// before occurring no later than after.
	PossiblyBefore(before model.StepID, t1 formula.Timing, after model.StepID, t2 formula.Timing) bool
	// PossiblyNotBefore reports whether the orderings are consistent
	// with before NOT occurring before after (i.e. before is not forced
	// to precede after).
	PossiblyNotBefore(before model.StepID, t1 formula.Timing, after model.StepID, t2 formula.Timing) bool
	// PossiblyNotAfter reports whether the orderings are consistent with
	// after NOT occurring after before.
	PossiblyNotAfter(before model.StepID, t1 formula.Timing, after model.StepID, t2 formula.Timing) bool
	// PossiblyConcurrent reports whether the orderings force neither step
	// to precede the other — both steps could execute at overlapping
	// times. Only meaningful for durative plans.
	PossiblyConcurrent(s1 model.StepID, s2 model.StepID) bool

	// Refine adds o, returning the new Orderings or ok=false if doing so
	// would introduce a cycle.
	Refine(o Ordering) (Orderings, bool)

	// Schedule computes the makespan bounds between two steps' named
	// endpoints once all relevant orderings are known; only meaningful
	// for temporal orderings. Non-temporal implementations return
	// ok=false.
	Schedule(start model.StepID, end model.StepID) (Makespan, bool)
}

// Makespan bounds how soon/late a step endpoint can occur relative to the
// plan's temporal origin.
type Makespan struct {
	EarliestStart, LatestStart float64
	EarliestEnd, LatestEnd     float64
}

// AchieverMatch pairs a candidate action with the specific effect of that
// action that can achieve a queried literal.
type AchieverMatch struct {
	Action *model.Action
	Effect model.Effect
}

// PlanningGraph answers reachability and heuristic queries. The core
// spec's §6 contract: literal_achievers and Formula.heuristic_value.
type PlanningGraph interface {
	// LiteralAchievers returns every (action, effect) pair whose effect
	// can unify with lit, or ok=false if the literal is never achievable.
	LiteralAchievers(lit formula.Literal) ([]AchieverMatch, bool)

	// HeuristicValue estimates the cost/rank contribution of achieving f
	// for step sid under the given bindings. Implementations that don't
	// support a particular formula shape may return 0.
	HeuristicValue(f formula.Formula, sid model.StepID, b Bindings) float64
}
