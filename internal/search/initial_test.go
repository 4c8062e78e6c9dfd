package search

import (
	"math/rand"
	"testing"

	"github.com/aretw0/pocl/internal/config"
	"github.com/aretw0/pocl/internal/engine"
	"github.com/aretw0/pocl/internal/formula"
	"github.com/aretw0/pocl/internal/model"
	"github.com/aretw0/pocl/internal/problem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lit(pred string, args ...formula.Term) formula.Literal {
	return formula.Literal{Predicate: pred, Args: args}
}

func TestBuildInitialPlanSeedsInitAndGoalSteps(t *testing.T) {
	dom := problem.NewDomain("test")
	prob := problem.NewProblem("test", dom)
	prob.AddInit(lit("clear", formula.Obj("a")))
	prob.Goal = formula.Lit(lit("clear", formula.Obj("b")))

	ctx := engine.New(dom, prob, nil, nil, nil, config.Default(), rand.New(rand.NewSource(1)))
	p, ok := BuildInitialPlan(ctx)
	require.True(t, ok)

	assert.Equal(t, 2, p.NumSteps)
	assert.Equal(t, 1, p.NumOpenConds, "the unreachable goal literal is admitted as a single open condition")

	initStep, found := p.StepByID(model.InitID)
	require.True(t, found)
	require.Len(t, initStep.Action.Effects, 1)
	assert.Equal(t, "clear", initStep.Action.Effects[0].Literal.Predicate)

	goalStep, found := p.StepByID(model.GoalID)
	require.True(t, found)
	assert.Equal(t, prob.Goal, goalStep.Action.Precondition)
}

func TestBuildInitialPlanFalseGoalFailsAdmission(t *testing.T) {
	dom := problem.NewDomain("test")
	prob := problem.NewProblem("test", dom)
	prob.Goal = formula.False{}

	ctx := engine.New(dom, prob, nil, nil, nil, config.Default(), rand.New(rand.NewSource(1)))
	_, ok := BuildInitialPlan(ctx)
	assert.False(t, ok)
}

func TestBuildInitialPlanDurativeAddsTimedInitialLiteralStepsAndMutexPlaceholder(t *testing.T) {
	dom := problem.NewDomain("test")
	prob := problem.NewProblem("test", dom)
	prob.Goal = formula.True{}
	prob.TimedInitialLiterals = []problem.TimedInitialLiteral{
		{At: 5, Literal: lit("open", formula.Obj("door"))},
	}

	ctx := engine.New(dom, prob, nil, nil, nil, config.Default(), rand.New(rand.NewSource(1)))
	p, ok := BuildInitialPlan(ctx)
	require.True(t, ok)

	assert.Equal(t, 3, p.NumSteps, "init, goal, and one step for the timed initial literal")
	assert.Equal(t, 1, p.NumMutexThreats, "the placeholder mutex flaw is seeded for durative problems")
}

func TestBuildInitialPlanAssignsPlanIDFromContext(t *testing.T) {
	dom := problem.NewDomain("test")
	prob := problem.NewProblem("test", dom)
	prob.Goal = formula.True{}

	ctx := engine.New(dom, prob, nil, nil, nil, config.Default(), rand.New(rand.NewSource(1)))
	p1, ok := BuildInitialPlan(ctx)
	require.True(t, ok)
	p2, ok := BuildInitialPlan(ctx)
	require.True(t, ok)
	assert.NotEqual(t, p1.ID, p2.ID, "each call draws a fresh plan id from the shared context counter")
}
