// Package problem holds the domain/problem structures the core spec
// treats as produced by an external PDDL parser (§1: out of scope). This
// is the Go-native stand-in format: YAML-decodable domain/problem
// documents (yaml.go in this package decodes them with gopkg.in/yaml.v3)
// plus a fluent Builder for constructing them in code,
// grounded on the teacher's pkg/dsl.Builder graph-construction API.
package problem

import (
	"github.com/aretw0/pocl/internal/formula"
	"github.com/aretw0/pocl/internal/model"
)

// TimedInitialLiteral is a literal that becomes true at a fixed time
// after plan execution begins, used by durative problems (core spec §4.7,
// §8 scenario 6).
type TimedInitialLiteral struct {
	At      float64
	Literal formula.Literal
}

// DecompositionSchema is a template for expanding a composite action: its
// pseudo-steps, internal bindings, internal orderings, and internal
// causal links, plus the dummy initial/final pseudo-steps the core spec's
// §3 DecompositionFrame describes. StepIDs here are local to the
// template — fresh plan ids are substituted in when
// internal/refine/decompose.go installs the frame.
type DecompositionSchema struct {
	Name string

	// For names the composite action this schema can expand. A composite
	// action may have more than one applicable DecompositionSchema.
	For string

	PseudoSteps []PseudoStep

	// Bindings are local-scoped equality/inequality obligations internal
	// to the frame (e.g. pseudo-step parameters forced equal to the
	// composite step's own parameters).
	Bindings []LocalBinding

	// Orderings are explicit local orderings beyond the ancestor-DAG
	// orderings internal/refine/decompose.go derives from Links.
	Orderings []model.Link // reused as a local (before,after) pair carrier; Condition is ignored.

	// Links are the frame's internal causal links, local-scoped.
	Links []model.Link

	// DummyInitID/DummyFinalID are the local ids of the frame's dummy
	// initial and final pseudo-steps (core spec §3).
	DummyInitID  model.StepID
	DummyFinalID model.StepID
}

// LocalBinding is a frame-template-scoped equality/inequality obligation,
// with StepIDs local to the template.
type LocalBinding struct {
	Var, Term         formula.Term
	VarStep, TermStep model.StepID
	Equal             bool
}

// PseudoStep is one step contributed by a decomposition template, before
// installation rewrites its id to a fresh plan-level id.
type PseudoStep struct {
	LocalID model.StepID
	Action  *model.Action
}

// Domain groups the action schemas and decomposition schemas a problem is
// defined over, plus the finite object universe and static-predicate
// index the core spec's §4.1/§9 static-predicate optimizations need.
type Domain struct {
	Name          string
	Actions       map[string]*model.Action
	Decomposition []DecompositionSchema
	Objects       map[string][]string // type name -> object names
	staticPreds   map[string]bool
}

// NewDomain returns an empty Domain ready for Builder-style population.
func NewDomain(name string) *Domain {
	return &Domain{
		Name:    name,
		Actions: map[string]*model.Action{},
		Objects: map[string][]string{},
	}
}

// AddAction registers an action schema.
func (d *Domain) AddAction(a *model.Action) *Domain {
	d.Actions[a.Name] = a
	return d
}

// AddDecomposition registers a decomposition schema.
func (d *Domain) AddDecomposition(s DecompositionSchema) *Domain {
	d.Decomposition = append(d.Decomposition, s)
	return d
}

// AddObjects registers objects of a given type.
func (d *Domain) AddObjects(typ string, names ...string) *Domain {
	d.Objects[typ] = append(d.Objects[typ], names...)
	return d
}

// DecompositionsFor returns every schema that can expand the named
// composite action.
func (d *Domain) DecompositionsFor(actionName string) []DecompositionSchema {
	var out []DecompositionSchema
	for _, s := range d.Decomposition {
		if s.For == actionName {
			out = append(out, s)
		}
	}
	return out
}

// StaticPredicates returns the set of predicates that never appear as the
// target of any action's effect — precomputed once per domain, per the
// core spec's §9 note on UCPOP's static-predicate precomputation, rather
// than recomputed on every goals.AddGoal call.
func (d *Domain) StaticPredicates() map[string]bool {
	if d.staticPreds != nil {
		return d.staticPreds
	}
	dynamic := map[string]bool{}
	for _, a := range d.Actions {
		for _, e := range a.Effects {
			dynamic[e.Literal.Predicate] = true
		}
	}
	static := map[string]bool{}
	for _, a := range d.Actions {
		collectPredicates(a.Precondition, static)
	}
	for p := range dynamic {
		delete(static, p)
	}
	d.staticPreds = static
	return static
}

func collectPredicates(f formula.Formula, out map[string]bool) {
	switch v := f.(type) {
	case formula.TimedLiteral:
		out[v.Lit.Predicate] = true
	case formula.And:
		for _, c := range v.Conjuncts {
			collectPredicates(c, out)
		}
	case formula.Or:
		for _, c := range v.Disjuncts {
			collectPredicates(c, out)
		}
	case formula.Exists:
		collectPredicates(v.Body, out)
	case formula.Forall:
		collectPredicates(v.Body, out)
	}
}

// Problem is a concrete planning problem against a Domain: the initial
// state, the goal formula, and any timed initial literals.
type Problem struct {
	Domain               *Domain
	Name                 string
	Init                 []formula.Literal
	Goal                 formula.Formula
	TimedInitialLiterals []TimedInitialLiteral
}

// NewProblem returns an empty Problem over d.
func NewProblem(name string, d *Domain) *Problem {
	return &Problem{Domain: d, Name: name, Goal: formula.True{}}
}

// AddInit appends initial-state literals.
func (p *Problem) AddInit(lits ...formula.Literal) *Problem {
	p.Init = append(p.Init, lits...)
	return p
}

// SetGoal sets the goal formula.
func (p *Problem) SetGoal(g formula.Formula) *Problem {
	p.Goal = g
	return p
}

// AddTimedInitialLiteral appends a timed initial literal.
func (p *Problem) AddTimedInitialLiteral(at float64, lit formula.Literal) *Problem {
	p.TimedInitialLiterals = append(p.TimedInitialLiterals, TimedInitialLiteral{At: at, Literal: lit})
	return p
}

// IsDurative reports whether the problem requires temporal orderings.
func (p *Problem) IsDurative() bool {
	if len(p.TimedInitialLiterals) > 0 {
		return true
	}
	for _, a := range p.Domain.Actions {
		if a.Durative {
			return true
		}
	}
	return false
}
