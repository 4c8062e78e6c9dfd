package bindings_test

import (
	"testing"

	"github.com/aretw0/pocl/internal/collab"
	"github.com/aretw0/pocl/internal/collab/bindings"
	"github.com/aretw0/pocl/internal/formula"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddUnifiesVariableToObject(t *testing.T) {
	s := bindings.New()
	next, ok := s.Add([]collab.Binding{{Var: formula.Var("?x"), VarStep: 1, Term: formula.Obj("a"), TermStep: 0, Equal: true}}, false)
	require.True(t, ok)
	assert.Equal(t, formula.Obj("a"), next.Binding(formula.Var("?x"), 1))
}

func TestAddRejectsConflictingObjects(t *testing.T) {
	s := bindings.New()
	next, ok := s.Add([]collab.Binding{{Var: formula.Var("?x"), VarStep: 1, Term: formula.Obj("a"), TermStep: 0, Equal: true}}, false)
	require.True(t, ok)
	_, ok = next.Add([]collab.Binding{{Var: formula.Var("?x"), VarStep: 1, Term: formula.Obj("b"), TermStep: 0, Equal: true}}, false)
	assert.False(t, ok, "?x cannot be unified to both a and b")
}

func TestInequalityRejectsEqualClasses(t *testing.T) {
	s := bindings.New()
	next, ok := s.Add([]collab.Binding{
		{Var: formula.Var("?x"), VarStep: 1, Term: formula.Var("?y"), TermStep: 1, Equal: true},
	}, false)
	require.True(t, ok)
	_, ok = next.Add([]collab.Binding{
		{Var: formula.Var("?x"), VarStep: 1, Term: formula.Var("?y"), TermStep: 1, Equal: false},
	}, false)
	assert.False(t, ok, "?x and ?y were already unified equal, so an inequality between them is unsatisfiable")
}

func TestTestOnlyDoesNotMutateOriginal(t *testing.T) {
	s := bindings.New()
	_, ok := s.Add([]collab.Binding{{Var: formula.Var("?x"), VarStep: 1, Term: formula.Obj("a"), TermStep: 0, Equal: true}}, true)
	require.True(t, ok)
	assert.Equal(t, formula.Var("?x"), s.Binding(formula.Var("?x"), 1), "original Set must be untouched by a testOnly Add")
}

func TestAffectsDetectsOppositePolarityUnifiableLiterals(t *testing.T) {
	s := bindings.New()
	effect := formula.Literal{Predicate: "clear", Args: []formula.Term{formula.Obj("a")}, Negated: true}
	cond := formula.Literal{Predicate: "clear", Args: []formula.Term{formula.Var("?x")}}
	assert.True(t, s.Affects(effect, 1, cond, 2))
}

func TestAffectsIgnoresSamePolarity(t *testing.T) {
	s := bindings.New()
	effect := formula.Literal{Predicate: "clear", Args: []formula.Term{formula.Obj("a")}}
	cond := formula.Literal{Predicate: "clear", Args: []formula.Term{formula.Obj("a")}}
	assert.False(t, s.Affects(effect, 1, cond, 2))
}
