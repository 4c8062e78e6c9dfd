package memgraph

import (
	"testing"

	"github.com/aretw0/pocl/internal/formula"
	"github.com/aretw0/pocl/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lit(pred string, negated bool, args ...formula.Term) formula.Literal {
	return formula.Literal{Predicate: pred, Args: args, Negated: negated}
}

func TestLiteralAchieversIndexesByPredicateAndPolarity(t *testing.T) {
	unstack := &model.Action{
		Name:    "unstack",
		Effects: []model.Effect{{Literal: lit("clear", false, formula.Obj("a"))}},
	}
	stack := &model.Action{
		Name:    "stack",
		Effects: []model.Effect{{Literal: lit("clear", true, formula.Obj("a"))}},
	}
	g := Build([]*model.Action{unstack, stack})

	matches, ok := g.LiteralAchievers(lit("clear", false, formula.Obj("a")))
	require.True(t, ok)
	require.Len(t, matches, 1)
	assert.Equal(t, "unstack", matches[0].Action.Name)

	negMatches, ok := g.LiteralAchievers(lit("clear", true, formula.Obj("a")))
	require.True(t, ok)
	require.Len(t, negMatches, 1)
	assert.Equal(t, "stack", negMatches[0].Action.Name)
}

func TestLiteralAchieversUnknownPredicateReturnsFalse(t *testing.T) {
	g := Build(nil)
	_, ok := g.LiteralAchievers(lit("holding", false, formula.Obj("a")))
	assert.False(t, ok)
}

func TestBuildIndexesCompositeActionEffectsToo(t *testing.T) {
	travel := &model.Action{
		Name:      "travel",
		Composite: true,
		Effects:   []model.Effect{{Literal: lit("at", false, formula.Obj("dest"))}},
	}
	g := Build([]*model.Action{travel})
	matches, ok := g.LiteralAchievers(lit("at", false, formula.Obj("dest")))
	require.True(t, ok)
	assert.Equal(t, "travel", matches[0].Action.Name)
}

func TestHeuristicValueCountsAtomsAcrossConnectives(t *testing.T) {
	g := Build(nil)

	assert.Equal(t, 0.0, g.HeuristicValue(formula.True{}, 0, nil))
	assert.Equal(t, 1.0, g.HeuristicValue(formula.Lit(lit("clear", false, formula.Obj("a"))), 0, nil))

	and := formula.And{Conjuncts: []formula.Formula{
		formula.Lit(lit("clear", false, formula.Obj("a"))),
		formula.Lit(lit("clear", false, formula.Obj("b"))),
	}}
	assert.Equal(t, 2.0, g.HeuristicValue(and, 0, nil))

	or := formula.Or{Disjuncts: []formula.Formula{
		and,
		formula.Lit(lit("clear", false, formula.Obj("c"))),
	}}
	assert.Equal(t, 1.0, g.HeuristicValue(or, 0, nil), "the cheapest disjunct wins")
}

func TestHeuristicValueForallScalesByUniversalBaseSize(t *testing.T) {
	g := Build(nil)
	f := formula.Forall{
		Vars: []formula.Term{formula.Var("?x"), formula.Var("?y")},
		UniversalBase: map[string][]formula.Term{
			"?x": {formula.Obj("a")},
			"?y": {formula.Obj("b")},
		},
		Body: formula.Lit(lit("clear", false, formula.Var("?x"))),
	}
	assert.Equal(t, 2.0, g.HeuristicValue(f, 0, nil), "scales by the number of quantified variables, one atom's worth each")
}
