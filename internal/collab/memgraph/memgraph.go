// Package memgraph provides the default in-process PlanningGraph
// collaborator. It does not build a real Graphplan-style layered
// reachability graph; it indexes each domain action's effects by
// predicate (the core spec's §4.4 achieves_pred / achieves_neg_pred
// fallback, used "when actions are ground" is false) and answers
// heuristic queries with a simple flaw-count estimate. A real planning
// graph with mutex/level heuristics is explicitly out of scope (§1); this
// is the minimal collaborator that makes the module runnable standalone.
package memgraph

import (
	"github.com/aretw0/pocl/internal/collab"
	"github.com/aretw0/pocl/internal/formula"
	"github.com/aretw0/pocl/internal/model"
)

// Graph indexes a fixed set of actions by the predicates their effects
// can establish.
type Graph struct {
	byPred    map[string][]collab.AchieverMatch
	byNegPred map[string][]collab.AchieverMatch
}

// Build indexes actions into a Graph. Decomposition-only (composite)
// actions are indexed too: their own precondition/effects (if any) count
// like any other action for achiever purposes, exactly as the core spec's
// §4.6 treats a composite step's precondition like a normal step's.
func Build(actions []*model.Action) *Graph {
	g := &Graph{byPred: map[string][]collab.AchieverMatch{}, byNegPred: map[string][]collab.AchieverMatch{}}
	for _, a := range actions {
		for _, eff := range a.Effects {
			m := collab.AchieverMatch{Action: a, Effect: eff}
			if eff.Literal.Negated {
				g.byNegPred[eff.Literal.Predicate] = append(g.byNegPred[eff.Literal.Predicate], m)
			} else {
				g.byPred[eff.Literal.Predicate] = append(g.byPred[eff.Literal.Predicate], m)
			}
		}
	}
	return g
}

// LiteralAchievers implements collab.PlanningGraph.
func (g *Graph) LiteralAchievers(lit formula.Literal) ([]collab.AchieverMatch, bool) {
	var table map[string][]collab.AchieverMatch
	if lit.Negated {
		table = g.byNegPred
	} else {
		table = g.byPred
	}
	matches, ok := table[lit.Predicate]
	if !ok || len(matches) == 0 {
		return nil, false
	}
	return matches, true
}

// HeuristicValue implements collab.PlanningGraph. Without a real
// reachability layering, the best admissible-ish estimate this
// collaborator can offer is the number of atomic obligations the formula
// would add if admitted — more open conditions, higher cost. Composite
// heuristics (weights, planning-graph levels) are meant to replace this
// collaborator, not extend it.
func (g *Graph) HeuristicValue(f formula.Formula, sid model.StepID, b collab.Bindings) float64 {
	return countAtoms(f)
}

func countAtoms(f formula.Formula) float64 {
	switch v := f.(type) {
	case formula.True:
		return 0
	case formula.False:
		return 0
	case formula.TimedLiteral:
		return 1
	case formula.And:
		var sum float64
		for _, c := range v.Conjuncts {
			sum += countAtoms(c)
		}
		return sum
	case formula.Or:
		// Optimistic: the cheapest disjunct.
		best := -1.0
		for _, d := range v.Disjuncts {
			c := countAtoms(d)
			if best < 0 || c < best {
				best = c
			}
		}
		if best < 0 {
			return 0
		}
		return best
	case formula.Eq, formula.Neq:
		return 0
	case formula.Exists:
		return countAtoms(v.Body)
	case formula.Forall:
		return countAtoms(v.Body) * float64(len(v.UniversalBase))
	default:
		return 0
	}
}
