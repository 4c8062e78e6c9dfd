package problem

import (
	"github.com/aretw0/pocl/internal/formula"
	"github.com/aretw0/pocl/internal/model"
)

// Builder constructs an Action schema fluently, grounded on the teacher's
// pkg/dsl.Builder/NodeBuilder split (one builder per top-level entity,
// chained setter methods returning the same builder).
type Builder struct {
	action *model.Action
}

// NewAction starts building an action schema named name.
func NewAction(name string) *Builder {
	return &Builder{action: &model.Action{Name: name, Precondition: formula.True{}}}
}

// Params sets the action's schema parameters.
func (b *Builder) Params(vars ...formula.Term) *Builder {
	b.action.Parameters = vars
	return b
}

// Precondition sets the action's precondition formula.
func (b *Builder) Precondition(f formula.Formula) *Builder {
	b.action.Precondition = f
	return b
}

// Effect appends an unconditional, non-durative effect.
func (b *Builder) Effect(lit formula.Literal) *Builder {
	b.action.Effects = append(b.action.Effects, model.Effect{
		Literal:   lit,
		When:      formula.AtStart,
		Condition: formula.True{},
	})
	return b
}

// TimedEffect appends an unconditional effect scoped to a durative
// action's start or end.
func (b *Builder) TimedEffect(lit formula.Literal, when formula.Timing) *Builder {
	b.action.Effects = append(b.action.Effects, model.Effect{
		Literal:   lit,
		When:      when,
		Condition: formula.True{},
	})
	return b
}

// ConditionalEffect appends a conditional effect.
func (b *Builder) ConditionalEffect(lit formula.Literal, when formula.Timing, cond formula.Formula) *Builder {
	b.action.Effects = append(b.action.Effects, model.Effect{
		Literal:   lit,
		When:      when,
		Condition: cond,
	})
	return b
}

// Composite marks the action as requiring decomposition rather than
// direct execution.
func (b *Builder) Composite() *Builder {
	b.action.Composite = true
	return b
}

// Durative marks the action as durative with the given duration bounds.
func (b *Builder) Durative(min, max float64) *Builder {
	b.action.Durative = true
	b.action.MinDuration = min
	b.action.MaxDuration = max
	return b
}

// Build finalizes the action schema.
func (b *Builder) Build() *model.Action {
	return b.action
}

// DecompositionBuilder constructs a DecompositionSchema fluently.
type DecompositionBuilder struct {
	schema DecompositionSchema
	nextID model.StepID
}

// NewDecomposition starts building a decomposition schema named name that
// expands the composite action named forAction. It seeds the frame's
// dummy initial/final pseudo-steps, matching the core spec's §3
// DecompositionFrame shape.
func NewDecomposition(name, forAction string) *DecompositionBuilder {
	db := &DecompositionBuilder{schema: DecompositionSchema{Name: name, For: forAction}}
	db.schema.DummyInitID = db.alloc()
	db.schema.DummyFinalID = db.alloc()
	return db
}

func (db *DecompositionBuilder) alloc() model.StepID {
	id := db.nextID
	db.nextID++
	return id
}

// AddPseudoStep appends a pseudo-step and returns its local id for use in
// Links/Orderings.
func (db *DecompositionBuilder) AddPseudoStep(a *model.Action) model.StepID {
	id := db.alloc()
	db.schema.PseudoSteps = append(db.schema.PseudoSteps, PseudoStep{LocalID: id, Action: a})
	return id
}

// AddBinding appends a local equality/inequality obligation.
func (db *DecompositionBuilder) AddBinding(b LocalBinding) *DecompositionBuilder {
	db.schema.Bindings = append(db.schema.Bindings, b)
	return db
}

// AddOrdering appends an explicit local ordering beyond the
// orderings internal/refine/decompose.go derives from Links.
func (db *DecompositionBuilder) AddOrdering(before, after model.StepID, t1, t2 formula.Timing) *DecompositionBuilder {
	db.schema.Orderings = append(db.schema.Orderings, model.Link{FromID: before, EffectTime: t1, ToID: after, ConditionTime: t2})
	return db
}

// AddLink appends an internal causal link.
func (db *DecompositionBuilder) AddLink(l model.Link) *DecompositionBuilder {
	db.schema.Links = append(db.schema.Links, l)
	return db
}

// Build finalizes the decomposition schema.
func (db *DecompositionBuilder) Build() DecompositionSchema {
	return db.schema
}
