package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/pocl/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	p := config.Default()
	require.NoError(t, p.Validate())
	assert.Equal(t, config.BestFirst, p.SearchAlgorithm)
	assert.Equal(t, 1.0, p.Weight)
}

func TestDecodePartialOverridesDefaults(t *testing.T) {
	p, err := config.Decode([]byte(`
heuristic: flaw_count
time_limit: 5000000000
flaw_orders: [lifo, fifo]
search_limits: [10, 20]
`))
	require.NoError(t, err)
	require.NoError(t, p.Validate())
	assert.Equal(t, 5*time.Second, p.TimeLimit)
	assert.Equal(t, []string{"lifo", "fifo"}, p.FlawOrders)
	assert.Equal(t, []int{10, 20}, p.SearchLimits)
	// Fields left unset in the document keep Default()'s values.
	assert.Equal(t, 1.0, p.Weight)
}

func TestValidateRejectsMismatchedOrdersAndLimits(t *testing.T) {
	p := config.Default()
	p.FlawOrders = []string{"a", "b"}
	p.SearchLimits = []int{1}
	assert.Error(t, p.Validate())
}

func TestValidateRejectsEmptyOrders(t *testing.T) {
	p := config.Default()
	p.FlawOrders = nil
	assert.Error(t, p.Validate())
}

func TestLoadReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "params.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: 42\n"), 0o644))

	p, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(42), p.Seed)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := config.Load("/nonexistent/path/params.yaml")
	assert.Error(t, err)
}
