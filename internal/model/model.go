// Package model holds the value types shared by the external-collaborator
// interfaces (internal/collab) and the partial-plan data model
// (internal/plan): step identity and the Action/Effect shapes an action
// schema or a decomposition pseudo-step is built from. Splitting these out
// keeps internal/collab free of a dependency on internal/plan, since both
// internal/plan and internal/collab need to refer to them.
package model

import (
	"math"

	"github.com/aretw0/pocl/internal/formula"
)

// StepID identifies a step within a single plan. Ids are dense and
// assigned in creation order, except for the two distinguished dummy
// steps.
type StepID int

const (
	// InitID is the dummy step whose effects encode the initial world
	// state.
	InitID StepID = 0
	// GoalID is the dummy step whose precondition encodes the goal
	// formula. It is always the numerically largest id in a plan, per
	// the core spec's §3 "two distinguished ids".
	GoalID StepID = math.MaxInt32
)

// Effect is one effect of an action, optionally conditional and
// optionally scoped to a durative action's start or end.
type Effect struct {
	Literal formula.Literal
	When    formula.Timing

	// Condition is the effect's antecedent; formula.True{} for an
	// unconditional effect.
	Condition formula.Formula

	// LinkCondition mirrors Condition but is the copy re-parameterized
	// with fresh variables when a causal link is installed against this
	// effect (§4.4 make_link step 1); nil until that happens.
	LinkCondition formula.Formula

	// Parameters lists the effect's own existentially quantified
	// variables (e.g. a forall-effect's bound variable), distinct from
	// the action's parameters.
	Parameters []formula.Term

	// Arity counts Parameters for convenience; kept alongside Parameters
	// because the original design computes it once per effect at
	// instantiation and treats it as authoritative even if Parameters is
	// later truncated during freshening.
	Arity int
}

// IsConditional reports whether the effect's condition is anything other
// than the tautology.
func (e Effect) IsConditional() bool {
	_, trivial := e.Condition.(formula.True)
	return e.Condition != nil && !trivial
}

// IsUniversal reports whether the effect quantifies over its own
// parameters.
func (e Effect) IsUniversal() bool {
	return len(e.Parameters) > 0
}

// Action is either a schema (parameters + precondition + effects, to be
// instantiated per step) or a fully ground action. Composite actions
// cannot execute directly; they must be expanded via a decomposition
// (internal/refine/decompose.go).
type Action struct {
	Name          string
	Parameters    []formula.Term
	Precondition  formula.Formula
	Effects       []Effect
	Composite     bool
	Durative      bool
	MinDuration   float64
	MaxDuration   float64
}

// Ground reports whether the action has no remaining schema parameters.
func (a *Action) Ground() bool {
	return len(a.Parameters) == 0
}

// Link is a causal link: FromID's effect at EffectTime establishes
// Condition for ToID's precondition at ConditionTime. It is shared
// between internal/plan (plan-level links, StepID scoped to the whole
// plan) and internal/problem's DecompositionSchema (template links,
// StepID scoped to the frame template, rewritten to plan ids when the
// frame is installed) — both name the same shape, so one type serves
// both.
type Link struct {
	FromID        StepID
	EffectTime    formula.Timing
	ToID          StepID
	ConditionTime formula.Timing
	Condition     formula.Literal
}

