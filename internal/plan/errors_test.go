package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelErrorsAreDistinct(t *testing.T) {
	assert.NotEqual(t, ErrInconsistentBindings, ErrOrderingCycle)
	assert.NotEqual(t, ErrOrderingCycle, ErrGoalContradiction)
	assert.NotEqual(t, ErrInconsistentBindings, ErrGoalContradiction)
	assert.ErrorContains(t, ErrInconsistentBindings, "inconsistent bindings")
	assert.ErrorContains(t, ErrOrderingCycle, "cycle")
	assert.ErrorContains(t, ErrGoalContradiction, "contradiction")
}
