package memory_test

import (
	"testing"

	"github.com/aretw0/pocl/internal/store"
	"github.com/aretw0/pocl/internal/store/memory"
)

func TestStore_Contract(t *testing.T) {
	store.RunPlanStoreContract(t, memory.New())
}
