package file_test

import (
	"testing"

	"github.com/aretw0/pocl/internal/store"
	"github.com/aretw0/pocl/internal/store/file"
)

func TestStore_Contract(t *testing.T) {
	store.RunPlanStoreContract(t, file.New(t.TempDir()))
}
