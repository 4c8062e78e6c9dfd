package search

import (
	"math"
	"time"

	"github.com/aretw0/pocl/internal/engine"
	"github.com/aretw0/pocl/internal/ground"
	"github.com/aretw0/pocl/internal/plan"
	"github.com/aretw0/pocl/internal/refine"
)

// flawKind names a flaw for FlawsRepaired bookkeeping and metrics labels.
func flawKind(f plan.Flaw) string {
	switch f.(type) {
	case plan.Unsafe:
		return "unsafe"
	case plan.OpenCondition:
		return "open_condition"
	case plan.MutexThreat:
		return "mutex_threat"
	case plan.UnexpandedCompositeStep:
		return "unexpanded_composite"
	default:
		return "unknown"
	}
}

// Run executes one search session to termination: success when a
// complete, grounded plan is accepted, failure when every queue is empty
// and, for iterative deepening, next_f_limit is infinite (core spec
// §4.2's termination clause).
func Run(ctx *engine.Context) Result {
	root, ok := BuildInitialPlan(ctx)
	stats := Stats{FlawsRepaired: map[string]int{}}
	if !ok {
		return Result{Stats: stats}
	}

	var deadline time.Time
	if ctx.Params.TimeLimit > 0 {
		deadline = time.Now().Add(ctx.Params.TimeLimit)
	}

	ida := ctx.Params.SearchAlgorithm == "ida_star"
	fLimit := math.Inf(1)
	nextFLimit := math.Inf(1)

	for {
		frontier := NewFrontier(ctx.Params)
		rooted, rootRank := rankOf(ctx, root)
		rooted.Rank = rootRank
		if ida && math.IsInf(fLimit, 1) {
			fLimit = rootRank[0]
		}
		frontier.Push(rooted)
		stats.PlansGenerated++

		if result, ok := acceptFromFrontier(ctx, frontier, &stats, ida, &fLimit, &nextFLimit, deadline); ok {
			return result
		}

		if !ida || math.IsInf(nextFLimit, 1) {
			return Result{Stats: stats}
		}
		fLimit = nextFLimit
		nextFLimit = math.Inf(1)
		stats.RestartsForFLimit++
	}
}

// acceptFromFrontier drains frontier, grounding every complete plan it
// pops until one grounds successfully or the frontier is exhausted
// (core spec §4.2's "if this fails for the best complete plan, pop the
// next plan and retry").
func acceptFromFrontier(ctx *engine.Context, frontier *Frontier, stats *Stats, ida bool, fLimit, nextFLimit *float64, deadline time.Time) (Result, bool) {
	for {
		p, ok := drive(ctx, frontier, stats, ida, fLimit, nextFLimit, deadline)
		if !ok {
			return Result{}, false
		}
		grounded, ok := ground.Ground(ctx, p)
		if ok {
			ctx.Metrics.PlanAccepted()
			return Result{Plan: grounded, Found: true, Stats: *stats}, true
		}
	}
}

// drive pops and expands plans from frontier until one is complete (ok
// true) or the frontier is exhausted (ok false).
func drive(ctx *engine.Context, frontier *Frontier, stats *Stats, ida bool, fLimit, nextFLimit *float64, deadline time.Time) (plan.Plan, bool) {
	for {
		frontier.DrainDead()

		if !deadline.IsZero() && time.Now().After(deadline) {
			return plan.Plan{}, false
		}

		p, ok := frontier.Pop()
		if !ok {
			return plan.Plan{}, false
		}

		if p.Complete() {
			return p, true
		}

		f, ok := frontier.Selector().Select(p)
		if !ok {
			// No flaw found but not Complete(): shouldn't happen given
			// Complete()'s definition, but treat conservatively as a dead
			// branch rather than looping.
			continue
		}

		successors := refine.Repair(ctx, p, f)
		stats.PlansExpanded++
		ctx.Metrics.PlanExpanded()
		stats.FlawsRepaired[flawKind(f)]++
		ctx.Metrics.FlawRepaired(flawKind(f))

		for _, s := range successors {
			s.ID = ctx.NextPlanID()
			s.Parent = p.ID
			s, rank := rankOf(ctx, s)
			s.Rank = rank

			if ida && rank[0] > *fLimit {
				if rank[0] < *nextFLimit {
					*nextFLimit = rank[0]
				}
				continue
			}

			frontier.Push(s)
			stats.PlansGenerated++
		}

		frontier.Advance()
		ctx.Metrics.FrontierSize(frontier.TotalSize())
	}
}
