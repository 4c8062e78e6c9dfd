// Package store defines the driven port for search-session persistence
// (SPEC_FULL.md §3.1), grounded on the teacher's pkg/ports.StateStore:
// decoupling the search driver from whichever backend holds a session's
// Checkpoint so the CLI, httpapi, and mcpserver can all resume or inspect
// a session through the same interface regardless of which adapter is
// configured.
package store

import (
	"context"
	"errors"

	"github.com/aretw0/pocl/internal/search"
)

// ErrSessionNotFound is returned by Load when no checkpoint is stored
// under the given session id.
var ErrSessionNotFound = errors.New("store: session not found")

// PlanStore persists and retrieves search.Checkpoints by session id.
type PlanStore interface {
	// Save persists the checkpoint, overwriting any prior checkpoint
	// stored under the same session id.
	Save(ctx context.Context, sessionID string, cp search.Checkpoint) error

	// Load retrieves the checkpoint for sessionID, or ErrSessionNotFound
	// if none exists.
	Load(ctx context.Context, sessionID string) (search.Checkpoint, error)

	// Delete removes the checkpoint for sessionID. Deleting a session
	// that does not exist is not an error.
	Delete(ctx context.Context, sessionID string) error

	// List returns every session id with a stored checkpoint.
	List(ctx context.Context) ([]string, error)
}
