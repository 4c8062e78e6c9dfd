package plan

import "errors"

// Sentinel errors for the "inconsistency" channel (core spec §7): a
// proposed refinement violates bindings or orderings, or a goal
// decomposition is a contradiction. Callers discard the branch silently
// on these; they are never meant to reach a user-facing surface.
var (
	ErrInconsistentBindings = errors.New("plan: inconsistent bindings")
	ErrOrderingCycle        = errors.New("plan: ordering would introduce a cycle")
	ErrGoalContradiction    = errors.New("plan: goal is a contradiction")
)
