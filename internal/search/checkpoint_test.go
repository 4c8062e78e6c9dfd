package search

import (
	"testing"
	"time"

	"github.com/aretw0/pocl/internal/config"
	"github.com/aretw0/pocl/internal/model"
	"github.com/aretw0/pocl/internal/plan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrontierSnapshotRendersEveryQueue(t *testing.T) {
	params := config.Parameters{FlawOrders: []string{"default", "threats_first"}, SearchLimits: []int{3, 0}}
	f := NewFrontier(params)
	f.Push(rankedPlan(1, 2))
	f.queues[1].dead = true

	snaps := f.Snapshot()
	require.Len(t, snaps, 2)
	assert.Equal(t, "default", snaps[0].Name)
	assert.Equal(t, []int64{1}, snaps[0].PlanIDs)
	assert.Equal(t, 3, snaps[0].Limit)
	assert.True(t, snaps[1].Dead)
}

func TestBuildCheckpointAssemblesFromFrontier(t *testing.T) {
	params := config.Default()
	f := NewFrontier(params)
	f.Push(rankedPlan(1, 1))
	stats := Stats{PlansExpanded: 4, FlawsRepaired: map[string]int{"unsafe": 2}}
	now := time.Unix(0, 0)

	cp := BuildCheckpoint("sess-1", f, 10, 20, params, stats, now)
	assert.Equal(t, "sess-1", cp.SessionID)
	assert.Equal(t, now, cp.UpdatedAt)
	assert.Equal(t, 10.0, cp.FLimit)
	assert.Equal(t, 20.0, cp.NextFLimit)
	assert.Equal(t, stats, cp.Stats)
	assert.Len(t, cp.Queues, 1)
	assert.Equal(t, f.currentIdx, cp.CurrentIdx)
	assert.Equal(t, f.cycleLength, cp.CycleLength)
}

func TestSummarizeForPlanRendersStepsInInstallationOrder(t *testing.T) {
	p := plan.Plan{ID: 7}
	p = p.AddStep(plan.Step{ID: model.InitID, Action: &model.Action{Name: "__init__"}})
	p = p.AddStep(plan.Step{ID: 1, Action: &model.Action{Name: "unstack"}})
	p = p.AddStep(plan.Step{ID: model.GoalID})

	summary := SummarizeForPlan(p)
	require.Len(t, summary.Steps, 3)
	assert.Equal(t, int64(7), summary.ID)
	assert.Equal(t, "__init__", summary.Steps[0].Action)
	assert.Equal(t, "unstack", summary.Steps[1].Action)
	assert.Equal(t, "__dummy__", summary.Steps[2].Action, "a nil Action step (the goal dummy here) renders as __dummy__")
}
