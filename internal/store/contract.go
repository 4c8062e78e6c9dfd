package store

import (
	"context"
	"testing"

	"github.com/aretw0/pocl/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunPlanStoreContract runs a suite of tests any PlanStore implementation
// must satisfy, grounded on the teacher's pkg/ports.RunStateStoreContract.
// Each adapter's own test package calls this against its constructor so
// the contract is verified identically for memory, file, and redis.
func RunPlanStoreContract(t *testing.T, s PlanStore) {
	t.Helper()
	ctx := context.Background()
	sessionID := "contract-test-session"

	t.Run("Save and Load", func(t *testing.T) {
		cp := search.Checkpoint{
			SessionID: sessionID,
			FLimit:    3,
			Stats:     search.Stats{PlansExpanded: 5, FlawsRepaired: map[string]int{"unsafe": 2}},
		}
		require.NoError(t, s.Save(ctx, sessionID, cp))

		loaded, err := s.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, cp.FLimit, loaded.FLimit)
		assert.Equal(t, 5, loaded.Stats.PlansExpanded)
		assert.Equal(t, 2, loaded.Stats.FlawsRepaired["unsafe"])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := s.Load(ctx, "does-not-exist-"+sessionID)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, s.Save(ctx, sessionID, search.Checkpoint{SessionID: sessionID}))
		require.NoError(t, s.Delete(ctx, sessionID))
		_, err := s.Load(ctx, sessionID)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("List", func(t *testing.T) {
		id1, id2 := sessionID+"-1", sessionID+"-2"
		require.NoError(t, s.Save(ctx, id1, search.Checkpoint{SessionID: id1}))
		require.NoError(t, s.Save(ctx, id2, search.Checkpoint{SessionID: id2}))
		defer func() {
			_ = s.Delete(ctx, id1)
			_ = s.Delete(ctx, id2)
		}()

		ids, err := s.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
