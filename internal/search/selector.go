// Package search implements the best-first/IDA* frontier that orchestrates
// plan-space expansion (core spec §4.2): one priority queue per
// flaw-selection order, round-robin rotation with per-order expansion
// limits, dead-queue draining, and the grounding pass on acceptance.
package search

import (
	"github.com/aretw0/pocl/internal/plan"
)

// Selector picks one flaw to repair next out of a plan's flaw chains —
// the core spec's §6 "flaw selection" collaborator contract,
// `select(plan, problem, pg) → &Flaw`.
type Selector interface {
	Select(p plan.Plan) (plan.Flaw, bool)
}

// SelectorFunc adapts a plain function to Selector.
type SelectorFunc func(p plan.Plan) (plan.Flaw, bool)

func (f SelectorFunc) Select(p plan.Plan) (plan.Flaw, bool) { return f(p) }

// Selectors is the registry of named flaw orders a Parameters.FlawOrders
// entry resolves against.
var Selectors = map[string]Selector{
	"default":         SelectorFunc(defaultOrder),
	"threats_first":   SelectorFunc(threatsFirstOrder),
	"goals_first":     SelectorFunc(goalsFirstOrder),
	"least_commitment": SelectorFunc(leastCommitmentOrder),
}

// defaultOrder resolves threats and structural obligations before open
// conditions: an unrepaired threat or unexpanded composite step can only
// grow more entangled the longer a plan sits on the frontier, so clearing
// them first tends to shrink the branching factor of what's left.
func defaultOrder(p plan.Plan) (plan.Flaw, bool) {
	if f, ok := firstMutex(p); ok {
		return f, true
	}
	if f, ok := firstUnsafe(p); ok {
		return f, true
	}
	if f, ok := firstUnexpanded(p); ok {
		return f, true
	}
	return firstOpenCondition(p)
}

// threatsFirstOrder always repairs unsafes and mutex threats before
// anything else, falling back to decomposition then open conditions.
func threatsFirstOrder(p plan.Plan) (plan.Flaw, bool) {
	if f, ok := firstUnsafe(p); ok {
		return f, true
	}
	if f, ok := firstMutex(p); ok {
		return f, true
	}
	if f, ok := firstUnexpanded(p); ok {
		return f, true
	}
	return firstOpenCondition(p)
}

// goalsFirstOrder expands open conditions before anything else, useful
// for domains where decomposition only becomes well-typed once more of
// the plan's bindings are pinned down by goal-directed steps.
func goalsFirstOrder(p plan.Plan) (plan.Flaw, bool) {
	if f, ok := firstOpenCondition(p); ok {
		return f, true
	}
	if f, ok := firstUnsafe(p); ok {
		return f, true
	}
	if f, ok := firstMutex(p); ok {
		return f, true
	}
	return firstUnexpanded(p)
}

// leastCommitmentOrder defers binding-heavy flaws (open conditions,
// mutex threats) in favor of threats and decomposition, which tend to
// narrow the search space without yet choosing concrete bindings.
func leastCommitmentOrder(p plan.Plan) (plan.Flaw, bool) {
	if f, ok := firstUnsafe(p); ok {
		return f, true
	}
	if f, ok := firstUnexpanded(p); ok {
		return f, true
	}
	if f, ok := firstMutex(p); ok {
		return f, true
	}
	return firstOpenCondition(p)
}

func firstUnsafe(p plan.Plan) (plan.Flaw, bool) {
	v, ok := p.Unsafes.Head()
	return v, ok
}

func firstOpenCondition(p plan.Plan) (plan.Flaw, bool) {
	v, ok := p.OpenConds.Head()
	return v, ok
}

func firstMutex(p plan.Plan) (plan.Flaw, bool) {
	v, ok := p.MutexThreats.Head()
	return v, ok
}

func firstUnexpanded(p plan.Plan) (plan.Flaw, bool) {
	v, ok := p.Unexpanded.Head()
	return v, ok
}
