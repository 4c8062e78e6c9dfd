package search

import (
	"time"

	"github.com/aretw0/pocl/internal/config"
	"github.com/aretw0/pocl/internal/plan"
)

// Checkpoint is a JSON-friendly snapshot of a search session, persisted
// via internal/store's PlanStore so a session can be inspected and re-run
// (SPEC_FULL.md §3.1). It can record the frontier's round-robin
// bookkeeping — plan ids, ranks, per-order expansion counts (see
// BuildCheckpoint) — rather than a full reconstruction of every frontier
// plan's Bindings/Orderings/Steps content: those collaborators are opaque
// interface values with no exported internal structure (see DESIGN.md).
// cmd/pocl saves one Checkpoint when a run ends, holding Params, Stats,
// Done, Found and Result but no queue state; `pocl resume` re-runs search
// from a fresh initial plan with the saved Params instead of restoring a
// frontier.
type Checkpoint struct {
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Params config.Parameters `json:"params"`
	Stats  Stats             `json:"stats"`

	FLimit     float64 `json:"f_limit"`
	NextFLimit float64 `json:"next_f_limit"`

	Queues      []QueueSnapshot `json:"queues"`
	CurrentIdx  int             `json:"current_idx"`
	CycleLength int             `json:"cycle_length"`

	Done   bool         `json:"done"`
	Found  bool         `json:"found"`
	Result *PlanSummary `json:"result,omitempty"`
}

// QueueSnapshot is one flaw order's round-robin state.
type QueueSnapshot struct {
	Name       string      `json:"name"`
	PlanIDs    []int64     `json:"plan_ids"`
	Ranks      [][]float64 `json:"ranks"`
	Limit      int         `json:"limit"`
	Expansions int         `json:"expansions"`
	Dead       bool        `json:"dead"`
}

// PlanSummary is a lightweight rendering of a plan's step sequence,
// sufficient for the httpapi/mcpserver inspection surfaces (SPEC_FULL.md
// §3.3/§3.4) without exposing the plan's internal collaborators.
type PlanSummary struct {
	ID    int64         `json:"id"`
	Steps []StepSummary `json:"steps"`
}

// StepSummary names one installed step.
type StepSummary struct {
	ID     int    `json:"id"`
	Action string `json:"action"`
}

// Snapshot renders frontier's current round-robin state as
// QueueSnapshots, in queue order.
func (f *Frontier) Snapshot() []QueueSnapshot {
	out := make([]QueueSnapshot, 0, len(f.queues))
	for _, q := range f.queues {
		ids := make([]int64, len(q.heap))
		ranks := make([][]float64, len(q.heap))
		for i, p := range q.heap {
			ids[i] = p.ID
			ranks[i] = p.Rank
		}
		out = append(out, QueueSnapshot{
			Name: q.name, PlanIDs: ids, Ranks: ranks,
			Limit: q.limit, Expansions: q.expansions, Dead: q.dead,
		})
	}
	return out
}

// BuildCheckpoint assembles a Checkpoint from a frontier in flight. The
// search driver does not call it; cmd/pocl builds its end-of-run
// Checkpoint without frontier state.
func BuildCheckpoint(sessionID string, f *Frontier, fLimit, nextFLimit float64, params config.Parameters, stats Stats, now time.Time) Checkpoint {
	return Checkpoint{
		SessionID:   sessionID,
		UpdatedAt:   now,
		Params:      params,
		Stats:       stats,
		FLimit:      fLimit,
		NextFLimit:  nextFLimit,
		Queues:      f.Snapshot(),
		CurrentIdx:  f.currentIdx,
		CycleLength: f.cycleLength,
	}
}

// SummarizeForPlan renders p as a PlanSummary, in step-installation order.
func SummarizeForPlan(p plan.Plan) PlanSummary {
	steps := p.Steps.Slice()
	out := PlanSummary{ID: p.ID}
	for i := len(steps) - 1; i >= 0; i-- {
		s := steps[i]
		name := "__dummy__"
		if s.Action != nil {
			name = s.Action.Name
		}
		out.Steps = append(out.Steps, StepSummary{ID: int(s.ID), Action: name})
	}
	return out
}
