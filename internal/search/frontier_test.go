package search

import (
	"reflect"
	"testing"

	"github.com/aretw0/pocl/internal/config"
	"github.com/aretw0/pocl/internal/plan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// selectorFuncPointer returns the entry point of the function underlying a
// Selector, so two Selector values wrapping the same function can be
// compared for identity. Selector implementations are func types, which
// assert.Same (pointer-only) and assert.Equal (reflect.DeepEqual treats
// any two non-nil funcs as unequal) both handle incorrectly.
func selectorFuncPointer(s Selector) uintptr {
	return reflect.ValueOf(s).Pointer()
}

func rankedPlan(id int64, rank ...float64) plan.Plan {
	p := plan.Plan{ID: id}
	return p.SetRank(rank)
}

func TestNewFrontierDefaultsToOneDefaultOrderWhenUnconfigured(t *testing.T) {
	f := NewFrontier(config.Parameters{})
	assert.Len(t, f.queues, 1)
	assert.Equal(t, "default", f.queues[0].name)
}

func TestNewFrontierBuildsOneQueuePerFlawOrder(t *testing.T) {
	params := config.Parameters{FlawOrders: []string{"default", "threats_first"}, SearchLimits: []int{5, 0}}
	f := NewFrontier(params)
	require.Len(t, f.queues, 2)
	assert.Equal(t, 5, f.queues[0].limit)
	assert.Equal(t, 0, f.queues[1].limit)
}

func TestNewFrontierUnknownSelectorFallsBackToDefault(t *testing.T) {
	params := config.Parameters{FlawOrders: []string{"nonexistent"}}
	f := NewFrontier(params)
	assert.Equal(t, selectorFuncPointer(Selectors["default"]), selectorFuncPointer(f.queues[0].selector))
}

func TestPushAndPopReturnsBestRankedPlanFirst(t *testing.T) {
	f := NewFrontier(config.Default())
	f.Push(rankedPlan(1, 5))
	f.Push(rankedPlan(2, 1))
	f.Push(rankedPlan(3, 3))

	p, ok := f.Pop()
	require.True(t, ok)
	assert.Equal(t, int64(2), p.ID)
}

func TestEmptyReportsTrueWhenNoLiveQueueHasEntries(t *testing.T) {
	f := NewFrontier(config.Default())
	assert.True(t, f.Empty())
	f.Push(rankedPlan(1, 1))
	assert.False(t, f.Empty())
}

func TestPopOnEmptyFrontierReturnsFalse(t *testing.T) {
	f := NewFrontier(config.Default())
	_, ok := f.Pop()
	assert.False(t, ok)
}

func TestAdvanceRetiresQueueAtLimitAndRotates(t *testing.T) {
	params := config.Parameters{FlawOrders: []string{"default", "threats_first"}, SearchLimits: []int{1, 0}}
	f := NewFrontier(params)
	f.Push(rankedPlan(1, 1))
	f.Push(rankedPlan(2, 1))

	f.Advance() // first order's one-expansion limit is hit
	assert.True(t, f.queues[0].dead)
	assert.Equal(t, 1, f.alive)
	assert.Equal(t, 1, f.currentIdx, "advance must rotate into the surviving order")
}

func TestDrainDeadFreesUpToFourEntriesPerCall(t *testing.T) {
	f := NewFrontier(config.Default())
	for i := int64(0); i < 6; i++ {
		f.Push(rankedPlan(i, float64(i)))
	}
	f.queues[0].dead = true
	f.DrainDead()
	assert.Equal(t, 2, f.queues[0].heap.Len(), "at most 4 of the 6 entries are freed per call")
	f.DrainDead()
	assert.Equal(t, 0, f.queues[0].heap.Len())
}

func TestTotalSizeSumsOnlyLiveQueues(t *testing.T) {
	params := config.Parameters{FlawOrders: []string{"default", "threats_first"}}
	f := NewFrontier(params)
	f.Push(rankedPlan(1, 1))
	f.queues[1].dead = true
	assert.Equal(t, 1, f.TotalSize())
}

func TestSelectorReturnsActiveOrdersSelector(t *testing.T) {
	params := config.Parameters{FlawOrders: []string{"goals_first"}}
	f := NewFrontier(params)
	assert.Equal(t, selectorFuncPointer(Selectors["goals_first"]), selectorFuncPointer(f.Selector()))
}
