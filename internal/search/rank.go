package search

import (
	"github.com/aretw0/pocl/internal/engine"
	"github.com/aretw0/pocl/internal/model"
	"github.com/aretw0/pocl/internal/plan"
)

// computeRank lazily materializes a plan's rank tuple (core spec §4.8):
// primary component is the weighted flaw count plus a planning-graph
// heuristic estimate of the remaining goal, in that order — plan
// comparison is lexicographic over the tuple and "less than" means
// *worse* is at the bottom of the min-heap (smaller tuple pops first).
func computeRank(ctx *engine.Context, p plan.Plan) []float64 {
	flaws := float64(p.TotalFlaws())
	h := 0.0
	if ctx.Graph != nil {
		h = ctx.Graph.HeuristicValue(ctx.Problem.Goal, model.GoalID, p.Bindings)
	}
	weight := ctx.Params.Weight
	if weight == 0 {
		weight = 1
	}
	switch ctx.Params.Heuristic {
	case "flaw_count":
		return []float64{flaws}
	case "weighted_flaws_plus_heuristic", "":
		return []float64{weight*flaws + h, flaws}
	default:
		return []float64{weight*flaws + h, flaws}
	}
}

// rankOf returns p's rank, computing and caching it on p if it hasn't
// been computed yet (Rank is written at most once per the core spec's
// §4.8/§5 "lazily materialized, written at most once" contract).
func rankOf(ctx *engine.Context, p plan.Plan) (plan.Plan, []float64) {
	if p.Rank != nil {
		return p, p.Rank
	}
	r := computeRank(ctx, p)
	return p.SetRank(r), r
}

// lessRank compares two rank tuples lexicographically; shorter tuples
// compare as if padded with -Inf (impossible in practice since every
// rank function here is a fixed arity, but this keeps the comparison
// total regardless).
func lessRank(a, b []float64) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
