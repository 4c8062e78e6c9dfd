package search

import (
	"math/rand"
	"testing"

	"github.com/aretw0/pocl/internal/config"
	"github.com/aretw0/pocl/internal/engine"
	"github.com/aretw0/pocl/internal/plan"
	"github.com/aretw0/pocl/internal/problem"
	"github.com/stretchr/testify/assert"
)

func rankTestContext(params config.Parameters) *engine.Context {
	dom := problem.NewDomain("test")
	return engine.New(dom, problem.NewProblem("test", dom), nil, nil, nil, params, rand.New(rand.NewSource(1)))
}

func TestComputeRankFlawCountOnly(t *testing.T) {
	params := config.Default()
	params.Heuristic = "flaw_count"
	ctx := rankTestContext(params)

	p := plan.Plan{}
	p = p.AddOpenCondition(plan.OpenCondition{StepID: 1})
	p = p.AddUnsafe(plan.Unsafe{StepID: 2})

	assert.Equal(t, []float64{2}, computeRank(ctx, p))
}

func TestComputeRankWeightedFlawsDefaultsWeightToOneWhenZero(t *testing.T) {
	params := config.Default()
	params.Heuristic = "weighted_flaws_plus_heuristic"
	params.Weight = 0
	ctx := rankTestContext(params)

	p := plan.Plan{}
	p = p.AddOpenCondition(plan.OpenCondition{StepID: 1})

	assert.Equal(t, []float64{1, 1}, computeRank(ctx, p))
}

func TestComputeRankUnknownHeuristicFallsBackToWeightedFlaws(t *testing.T) {
	params := config.Default()
	params.Heuristic = "something_unrecognized"
	params.Weight = 2
	ctx := rankTestContext(params)

	p := plan.Plan{}
	p = p.AddOpenCondition(plan.OpenCondition{StepID: 1})

	assert.Equal(t, []float64{2, 1}, computeRank(ctx, p))
}

func TestRankOfCachesOnFirstCall(t *testing.T) {
	ctx := rankTestContext(config.Default())
	p := plan.Plan{}
	p = p.AddOpenCondition(plan.OpenCondition{StepID: 1})

	ranked, r := rankOf(ctx, p)
	assert.NotNil(t, ranked.Rank)
	assert.Equal(t, r, ranked.Rank)

	ranked.Rank = []float64{-1}
	_, r2 := rankOf(ctx, ranked)
	assert.Equal(t, []float64{-1}, r2, "a plan with Rank already set must not be recomputed")
}

func TestLessRankLexicographicComparison(t *testing.T) {
	assert.True(t, lessRank([]float64{1, 5}, []float64{2, 0}))
	assert.False(t, lessRank([]float64{2, 0}, []float64{1, 5}))
	assert.True(t, lessRank([]float64{1}, []float64{1, 0}), "a shorter equal-prefix tuple sorts first")
	assert.False(t, lessRank([]float64{1, 0}, []float64{1}))
}
