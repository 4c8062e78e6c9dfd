package search

import "github.com/aretw0/pocl/internal/plan"

// Stats summarizes one search session — a supplemented feature
// (SPEC_FULL.md §4) beyond the core spec's bare accept/fail outcome,
// grounded on UCPOP's end-of-search statistics dump in
// original_source/plans.cc.
type Stats struct {
	PlansExpanded     int
	PlansGenerated    int
	GroundingRetries  int
	FlawsRepaired     map[string]int
	RestartsForFLimit int
}

// Result is the outcome of a single search session.
type Result struct {
	Plan  plan.Plan
	Found bool
	Stats Stats
}

// Lineage walks a plan's Parent chain back to the root, returning ids
// oldest-first — a supplemented debugging/explain feature
// (SPEC_FULL.md §4) the core spec's bare `parent` backpointer field
// implies but never surfaces as an operation.
func Lineage(byID map[int64]plan.Plan, leaf plan.Plan) []int64 {
	var out []int64
	cur := leaf
	for {
		out = append([]int64{cur.ID}, out...)
		if cur.Parent == 0 || cur.Parent == cur.ID {
			return out
		}
		parent, ok := byID[cur.Parent]
		if !ok {
			return out
		}
		cur = parent
	}
}
