package refine

import (
	"fmt"

	"github.com/aretw0/pocl/internal/engine"
	"github.com/aretw0/pocl/internal/plan"
)

// Repair dispatches f to its repair operator by type switch — the
// counterpart of the core spec's §4.2 step 3 "dispatch by flaw variant to
// the appropriate repair operator". Coverage of the variants is not
// checked at compile time. An unrecognized flaw variant is the
// structural-bug channel (§7): a run-time panic, not a discarded branch.
func Repair(ctx *engine.Context, p plan.Plan, f plan.Flaw) []plan.Plan {
	switch v := f.(type) {
	case plan.Unsafe:
		return RepairUnsafe(ctx, p, v)
	case plan.OpenCondition:
		return RepairOpenCondition(ctx, p, v)
	case plan.MutexThreat:
		return RepairMutexThreat(ctx, p, v)
	case plan.UnexpandedCompositeStep:
		return RepairUnexpanded(ctx, p, v)
	default:
		panic(fmt.Sprintf("refine: unknown kind of flaw: %T", f))
	}
}
