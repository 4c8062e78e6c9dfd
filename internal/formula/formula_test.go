package formula_test

import (
	"testing"

	"github.com/aretw0/pocl/internal/formula"
	"github.com/stretchr/testify/assert"
)

func TestLiteralSubstitute(t *testing.T) {
	lit := formula.Literal{Predicate: "on", Args: []formula.Term{formula.Var("?x"), formula.Obj("b")}}
	sub := map[string]formula.Term{"?x": formula.Obj("a")}
	out := lit.Substitute(sub)
	assert.Equal(t, formula.Obj("a"), out.Args[0])
	assert.Equal(t, formula.Obj("b"), out.Args[1])
}

func TestLiteralNegate(t *testing.T) {
	lit := formula.Literal{Predicate: "clear", Args: []formula.Term{formula.Obj("a")}}
	assert.False(t, lit.Negated)
	assert.True(t, lit.Negate().Negated)
	assert.False(t, lit.Negate().Negate().Negated)
}

func TestConjFlattensNestedAnd(t *testing.T) {
	inner := formula.Conj(formula.Lit(formula.Literal{Predicate: "p"}), formula.Lit(formula.Literal{Predicate: "q"}))
	outer := formula.Conj(inner, formula.Lit(formula.Literal{Predicate: "r"}))
	and, ok := outer.(formula.And)
	assert.True(t, ok)
	assert.Len(t, and.Conjuncts, 3)
}

func TestSubstituteRecursesThroughConnectives(t *testing.T) {
	f := formula.Conj(
		formula.Lit(formula.Literal{Predicate: "on", Args: []formula.Term{formula.Var("?x"), formula.Var("?y")}}),
		formula.Disj(formula.Lit(formula.Literal{Predicate: "clear", Args: []formula.Term{formula.Var("?y")}})),
	)
	sub := map[string]formula.Term{"?x": formula.Obj("a"), "?y": formula.Obj("b")}
	out := formula.Substitute(f, sub).(formula.And)

	lit := out.Conjuncts[0].(formula.TimedLiteral).Lit
	assert.Equal(t, formula.Obj("a"), lit.Args[0])
	assert.Equal(t, formula.Obj("b"), lit.Args[1])

	or := out.Conjuncts[1].(formula.Or)
	orLit := or.Disjuncts[0].(formula.TimedLiteral).Lit
	assert.Equal(t, formula.Obj("b"), orLit.Args[0])
}

func TestSubstituteDoesNotEscapeQuantifierVars(t *testing.T) {
	f := formula.Exists{
		Vars: []formula.Term{formula.Var("?x")},
		Body: formula.Lit(formula.Literal{Predicate: "p", Args: []formula.Term{formula.Var("?x")}}),
	}
	sub := map[string]formula.Term{"?x": formula.Obj("a")}
	out := formula.Substitute(f, sub).(formula.Exists)
	lit := out.Body.(formula.TimedLiteral).Lit
	assert.True(t, lit.Args[0].Var, "quantifier-bound ?x must not be substituted by an outer sub")
}
