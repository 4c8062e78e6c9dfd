package problem

import (
	"fmt"
	"os"

	"github.com/aretw0/pocl/internal/formula"
	"github.com/aretw0/pocl/internal/model"
	"gopkg.in/yaml.v3"
)

// This file is the Go-native stand-in for a PDDL front end (core spec §1
// calls the real parser out of scope): YAML documents decoded into
// Domain/Problem via a discriminated-union DTO layer, grounded on the
// teacher's pkg/schema.Schema MarshalJSON/UnmarshalJSON Kind-discriminator
// pattern — formula.Formula is a closed interface with no yaml tags of
// its own, so each variant round-trips through a termYAML/formulaYAML
// struct tagged with a "kind" field instead.

type termYAML struct {
	Name string `yaml:"name"`
	Var  bool   `yaml:"var,omitempty"`
}

func (t termYAML) term() formula.Term {
	if t.Var {
		return formula.Var(t.Name)
	}
	return formula.Obj(t.Name)
}

func termOf(t formula.Term) termYAML {
	return termYAML{Name: t.Name, Var: t.Var}
}

type literalYAML struct {
	Predicate string     `yaml:"predicate"`
	Args      []termYAML `yaml:"args,omitempty"`
	Negated   bool        `yaml:"negated,omitempty"`
}

func (l literalYAML) literal() formula.Literal {
	args := make([]formula.Term, len(l.Args))
	for i, a := range l.Args {
		args[i] = a.term()
	}
	return formula.Literal{Predicate: l.Predicate, Args: args, Negated: l.Negated}
}

func literalOf(l formula.Literal) literalYAML {
	args := make([]termYAML, len(l.Args))
	for i, a := range l.Args {
		args[i] = termOf(a)
	}
	return literalYAML{Predicate: l.Predicate, Args: args, Negated: l.Negated}
}

// formulaYAML is the tagged-union wire shape for formula.Formula. Kind
// selects which of the remaining fields is populated; unused fields are
// omitted on encode and ignored on decode.
type formulaYAML struct {
	Kind string `yaml:"kind"`

	Literal *literalYAML `yaml:"literal,omitempty"`
	When    string       `yaml:"when,omitempty"` // "start" or "end"

	Of []formulaYAML `yaml:"of,omitempty"` // And/Or operands

	Left  *termYAML `yaml:"left,omitempty"`  // Eq/Neq
	Right *termYAML `yaml:"right,omitempty"`

	Vars []termYAML             `yaml:"vars,omitempty"`  // Exists/Forall
	Base map[string][]termYAML  `yaml:"base,omitempty"`  // Forall.UniversalBase
	Body *formulaYAML           `yaml:"body,omitempty"`
}

func (fy formulaYAML) formula() (formula.Formula, error) {
	switch fy.Kind {
	case "", "true":
		return formula.True{}, nil
	case "false":
		return formula.False{}, nil
	case "literal":
		if fy.Literal == nil {
			return nil, fmt.Errorf("problem: literal formula missing literal field")
		}
		when := formula.AtStart
		if fy.When == "end" {
			when = formula.AtEnd
		}
		return formula.TimedLiteral{Lit: fy.Literal.literal(), When: when}, nil
	case "and":
		fs, err := formulasOf(fy.Of)
		if err != nil {
			return nil, err
		}
		return formula.And{Conjuncts: fs}, nil
	case "or":
		fs, err := formulasOf(fy.Of)
		if err != nil {
			return nil, err
		}
		return formula.Or{Disjuncts: fs}, nil
	case "eq":
		if fy.Left == nil || fy.Right == nil {
			return nil, fmt.Errorf("problem: eq formula missing left/right")
		}
		return formula.Eq{Left: fy.Left.term(), Right: fy.Right.term()}, nil
	case "neq":
		if fy.Left == nil || fy.Right == nil {
			return nil, fmt.Errorf("problem: neq formula missing left/right")
		}
		return formula.Neq{Left: fy.Left.term(), Right: fy.Right.term()}, nil
	case "exists":
		if fy.Body == nil {
			return nil, fmt.Errorf("problem: exists formula missing body")
		}
		body, err := fy.Body.formula()
		if err != nil {
			return nil, err
		}
		return formula.Exists{Vars: termsOf(fy.Vars), Body: body}, nil
	case "forall":
		if fy.Body == nil {
			return nil, fmt.Errorf("problem: forall formula missing body")
		}
		body, err := fy.Body.formula()
		if err != nil {
			return nil, err
		}
		base := map[string][]formula.Term{}
		for k, vs := range fy.Base {
			base[k] = termsOf(vs)
		}
		return formula.Forall{Vars: termsOf(fy.Vars), UniversalBase: base, Body: body}, nil
	default:
		return nil, fmt.Errorf("problem: unknown formula kind %q", fy.Kind)
	}
}

func termsOf(ts []termYAML) []formula.Term {
	out := make([]formula.Term, len(ts))
	for i, t := range ts {
		out[i] = t.term()
	}
	return out
}

func formulasOf(fs []formulaYAML) ([]formula.Formula, error) {
	out := make([]formula.Formula, len(fs))
	for i, f := range fs {
		v, err := f.formula()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

type effectYAML struct {
	Literal   literalYAML  `yaml:"literal"`
	When      string       `yaml:"when,omitempty"`
	Condition *formulaYAML `yaml:"condition,omitempty"`
	Params    []termYAML   `yaml:"params,omitempty"`
}

func (ey effectYAML) effect() (model.Effect, error) {
	when := formula.AtStart
	if ey.When == "end" {
		when = formula.AtEnd
	}
	cond := formula.Formula(formula.True{})
	if ey.Condition != nil {
		c, err := ey.Condition.formula()
		if err != nil {
			return model.Effect{}, err
		}
		cond = c
	}
	params := termsOf(ey.Params)
	return model.Effect{
		Literal:   ey.Literal.literal(),
		When:      when,
		Condition: cond,
		Parameters: params,
		Arity:      len(params),
	}, nil
}

type actionYAML struct {
	Name         string       `yaml:"name"`
	Parameters   []termYAML   `yaml:"parameters,omitempty"`
	Precondition *formulaYAML `yaml:"precondition,omitempty"`
	Effects      []effectYAML `yaml:"effects,omitempty"`
	Composite    bool         `yaml:"composite,omitempty"`
	Durative     bool         `yaml:"durative,omitempty"`
	MinDuration  float64      `yaml:"min_duration,omitempty"`
	MaxDuration  float64      `yaml:"max_duration,omitempty"`
}

func (ay actionYAML) action() (*model.Action, error) {
	pre := formula.Formula(formula.True{})
	if ay.Precondition != nil {
		p, err := ay.Precondition.formula()
		if err != nil {
			return nil, fmt.Errorf("problem: action %q precondition: %w", ay.Name, err)
		}
		pre = p
	}
	effects := make([]model.Effect, len(ay.Effects))
	for i, e := range ay.Effects {
		eff, err := e.effect()
		if err != nil {
			return nil, fmt.Errorf("problem: action %q effect %d: %w", ay.Name, i, err)
		}
		effects[i] = eff
	}
	return &model.Action{
		Name:         ay.Name,
		Parameters:   termsOf(ay.Parameters),
		Precondition: pre,
		Effects:      effects,
		Composite:    ay.Composite,
		Durative:     ay.Durative,
		MinDuration:  ay.MinDuration,
		MaxDuration:  ay.MaxDuration,
	}, nil
}

type pseudoStepYAML struct {
	LocalID int        `yaml:"local_id"`
	Action  actionYAML `yaml:"action"`
}

type localBindingYAML struct {
	Var     termYAML `yaml:"var"`
	VarStep int      `yaml:"var_step"`
	Term    termYAML `yaml:"term"`
	TermStep int     `yaml:"term_step"`
	Equal   bool      `yaml:"equal"`
}

type linkYAML struct {
	FromID        int         `yaml:"from_id"`
	EffectTime    string      `yaml:"effect_time,omitempty"`
	ToID          int         `yaml:"to_id"`
	ConditionTime string      `yaml:"condition_time,omitempty"`
	Condition     literalYAML `yaml:"condition"`
}

func (ly linkYAML) link() model.Link {
	et, ct := formula.AtStart, formula.AtStart
	if ly.EffectTime == "end" {
		et = formula.AtEnd
	}
	if ly.ConditionTime == "end" {
		ct = formula.AtEnd
	}
	return model.Link{
		FromID: model.StepID(ly.FromID), EffectTime: et,
		ToID: model.StepID(ly.ToID), ConditionTime: ct,
		Condition: ly.Condition.literal(),
	}
}

type decompositionYAML struct {
	Name         string             `yaml:"name"`
	For          string             `yaml:"for"`
	PseudoSteps  []pseudoStepYAML   `yaml:"pseudo_steps,omitempty"`
	Bindings     []localBindingYAML `yaml:"bindings,omitempty"`
	Orderings    []linkYAML         `yaml:"orderings,omitempty"`
	Links        []linkYAML         `yaml:"links,omitempty"`
	DummyInitID  int                `yaml:"dummy_init_id"`
	DummyFinalID int                `yaml:"dummy_final_id"`
}

func (dy decompositionYAML) schema() (DecompositionSchema, error) {
	steps := make([]PseudoStep, len(dy.PseudoSteps))
	for i, ps := range dy.PseudoSteps {
		a, err := ps.Action.action()
		if err != nil {
			return DecompositionSchema{}, err
		}
		steps[i] = PseudoStep{LocalID: model.StepID(ps.LocalID), Action: a}
	}
	bindings := make([]LocalBinding, len(dy.Bindings))
	for i, b := range dy.Bindings {
		bindings[i] = LocalBinding{
			Var: b.Var.term(), VarStep: model.StepID(b.VarStep),
			Term: b.Term.term(), TermStep: model.StepID(b.TermStep),
			Equal: b.Equal,
		}
	}
	orderings := make([]model.Link, len(dy.Orderings))
	for i, o := range dy.Orderings {
		orderings[i] = o.link()
	}
	links := make([]model.Link, len(dy.Links))
	for i, l := range dy.Links {
		links[i] = l.link()
	}
	return DecompositionSchema{
		Name: dy.Name, For: dy.For,
		PseudoSteps: steps, Bindings: bindings,
		Orderings: orderings, Links: links,
		DummyInitID:  model.StepID(dy.DummyInitID),
		DummyFinalID: model.StepID(dy.DummyFinalID),
	}, nil
}

// DomainDocument is the top-level YAML shape for a domain file.
type DomainDocument struct {
	Name          string                       `yaml:"name"`
	Objects       map[string][]string          `yaml:"objects,omitempty"`
	Actions       []actionYAML                 `yaml:"actions"`
	Decomposition []decompositionYAML          `yaml:"decompositions,omitempty"`
}

// ProblemDocument is the top-level YAML shape for a problem file.
type ProblemDocument struct {
	Name  string        `yaml:"name"`
	Init  []literalYAML `yaml:"init,omitempty"`
	Goal  *formulaYAML  `yaml:"goal,omitempty"`
	Timed []struct {
		At      float64     `yaml:"at"`
		Literal literalYAML `yaml:"literal"`
	} `yaml:"timed_initial_literals,omitempty"`
}

// BuildDomain converts a decoded DomainDocument into a Domain.
func (dd DomainDocument) BuildDomain() (*Domain, error) {
	d := NewDomain(dd.Name)
	for typ, names := range dd.Objects {
		d.AddObjects(typ, names...)
	}
	for _, ay := range dd.Actions {
		a, err := ay.action()
		if err != nil {
			return nil, err
		}
		d.AddAction(a)
	}
	for _, dy := range dd.Decomposition {
		s, err := dy.schema()
		if err != nil {
			return nil, err
		}
		d.AddDecomposition(s)
	}
	return d, nil
}

// BuildProblem converts a decoded ProblemDocument into a Problem over d.
func (pd ProblemDocument) BuildProblem(d *Domain) (*Problem, error) {
	p := NewProblem(pd.Name, d)
	for _, l := range pd.Init {
		p.AddInit(l.literal())
	}
	if pd.Goal != nil {
		g, err := pd.Goal.formula()
		if err != nil {
			return nil, fmt.Errorf("problem: goal: %w", err)
		}
		p.SetGoal(g)
	}
	for _, t := range pd.Timed {
		p.AddTimedInitialLiteral(t.At, t.Literal.literal())
	}
	return p, nil
}

// LoadDomain reads and decodes a domain YAML file.
func LoadDomain(path string) (*Domain, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("problem: read domain %s: %w", path, err)
	}
	var doc DomainDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("problem: decode domain %s: %w", path, err)
	}
	return doc.BuildDomain()
}

// LoadProblem reads and decodes a problem YAML file against d.
func LoadProblem(path string, d *Domain) (*Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("problem: read problem %s: %w", path, err)
	}
	var doc ProblemDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("problem: decode problem %s: %w", path, err)
	}
	return doc.BuildProblem(d)
}
