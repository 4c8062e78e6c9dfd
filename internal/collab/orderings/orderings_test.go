package orderings_test

import (
	"testing"

	"github.com/aretw0/pocl/internal/collab"
	"github.com/aretw0/pocl/internal/collab/orderings"
	"github.com/aretw0/pocl/internal/formula"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefineAddsEdgeAndRejectsCycle(t *testing.T) {
	g := orderings.New()
	g2, ok := g.Refine(collab.Ordering{BeforeID: 1, T1: formula.AtStart, AfterID: 2, T2: formula.AtStart})
	require.True(t, ok)

	_, ok = g2.Refine(collab.Ordering{BeforeID: 2, T1: formula.AtStart, AfterID: 1, T2: formula.AtStart})
	assert.False(t, ok, "2 before 1 would close a cycle given 1 before 2")
}

func TestPossiblyBeforeAndNotBefore(t *testing.T) {
	g := orderings.New()
	g2, ok := g.Refine(collab.Ordering{BeforeID: 1, T1: formula.AtStart, AfterID: 2, T2: formula.AtStart})
	require.True(t, ok)

	assert.True(t, g2.PossiblyBefore(1, formula.AtStart, 2, formula.AtStart))
	assert.False(t, g2.PossiblyBefore(2, formula.AtStart, 1, formula.AtStart), "2 cannot possibly precede 1 once 1 is forced before 2")
}

func TestPossiblyConcurrentUnrelatedSteps(t *testing.T) {
	g := orderings.New()
	assert.True(t, g.PossiblyConcurrent(1, 2))

	g2, ok := g.Refine(collab.Ordering{BeforeID: 1, T1: formula.AtStart, AfterID: 2, T2: formula.AtStart})
	require.True(t, ok)
	assert.False(t, g2.PossiblyConcurrent(1, 2))
}

func TestRefineDoesNotMutateOriginal(t *testing.T) {
	g := orderings.New()
	_, ok := g.Refine(collab.Ordering{BeforeID: 1, T1: formula.AtStart, AfterID: 2, T2: formula.AtStart})
	require.True(t, ok)
	assert.True(t, g.PossiblyConcurrent(1, 2), "original graph must remain unconstrained after Refine returns a new graph")
}
