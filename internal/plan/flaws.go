package plan

import (
	"github.com/aretw0/pocl/internal/formula"
	"github.com/aretw0/pocl/internal/model"
)

// Flaw is the closed sum of the four flaw kinds the core spec's §3
// defines. Dispatch is by type switch (internal/refine/dispatch.go), not
// by a string tag. The compiler does not check that switch for coverage;
// an unhandled variant panics in its default branch at run time.
type Flaw interface {
	isFlaw()
	// StepRef returns the step id this flaw most directly concerns, used
	// by invariant checks (§8: "every flaw references only steps/links
	// present in the plan") and by logging.
	StepRef() model.StepID
}

// Unsafe is a step whose effect may threaten an existing causal link.
type Unsafe struct {
	Link   model.Link
	StepID model.StepID
	Effect model.Effect
}

func (Unsafe) isFlaw()                    {}
func (u Unsafe) StepRef() model.StepID    { return u.StepID }

// OpenConditionKind tags which shape OpenCondition.Condition holds.
type OpenConditionKind int

const (
	CondLiteral OpenConditionKind = iota
	CondDisjunction
	CondInequality
)

func (k OpenConditionKind) String() string {
	switch k {
	case CondLiteral:
		return "literal"
	case CondDisjunction:
		return "disjunction"
	case CondInequality:
		return "inequality"
	default:
		return "unknown"
	}
}

// OpenCondition is an unsatisfied precondition. Exactly one of Literal,
// Disjunction, or the Ineq* fields is meaningful, selected by Kind.
type OpenCondition struct {
	StepID model.StepID
	Kind   OpenConditionKind
	When   formula.Timing

	Literal formula.Literal

	Disjunction formula.Formula // an Or, when Kind == CondDisjunction

	IneqLeft, IneqRight         formula.Term
	IneqLeftStep, IneqRightStep model.StepID
}

func (OpenCondition) isFlaw()                 {}
func (o OpenCondition) StepRef() model.StepID { return o.StepID }

// MutexThreat is two potentially concurrent effects (durative only) that
// can unify and thus interfere.
type MutexThreat struct {
	StepID1 model.StepID
	Effect1 model.Effect
	StepID2 model.StepID
	Effect2 model.Effect
}

func (MutexThreat) isFlaw()                 {}
func (m MutexThreat) StepRef() model.StepID { return m.StepID1 }

// UnexpandedCompositeStep flags a composite step awaiting decomposition.
type UnexpandedCompositeStep struct {
	Step Step
}

func (UnexpandedCompositeStep) isFlaw()                 {}
func (u UnexpandedCompositeStep) StepRef() model.StepID { return u.Step.ID }
