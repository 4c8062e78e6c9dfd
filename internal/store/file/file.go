// Package file implements store.PlanStore as JSON-on-disk, grounded on
// the teacher's internal/adapters/file.Store: an atomic write via a
// temp-file-then-rename sequence so a crash mid-write never leaves a
// truncated checkpoint behind.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/pocl/internal/search"
	"github.com/aretw0/pocl/internal/store"
)

// Store persists checkpoints as one JSON file per session under
// BasePath.
type Store struct {
	BasePath string
}

// New returns a Store rooted at basePath, defaulting to
// ".pocl/sessions" when basePath is empty.
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".pocl", "sessions")
	}
	return &Store{BasePath: basePath}
}

func (s *Store) path(sessionID string) string {
	return filepath.Join(s.BasePath, sessionID+".json")
}

func (s *Store) Save(ctx context.Context, sessionID string, cp search.Checkpoint) error {
	if sessionID == "" {
		return fmt.Errorf("store/file: sessionID cannot be empty")
	}
	if err := os.MkdirAll(s.BasePath, 0o755); err != nil {
		return fmt.Errorf("store/file: ensure session directory: %w", err)
	}

	data, err := json.MarshalIndent(cp, "", "  ")
	if err != nil {
		return fmt.Errorf("store/file: marshal checkpoint: %w", err)
	}

	tmp, err := os.CreateTemp(s.BasePath, "tmp-"+sessionID+"-*.json")
	if err != nil {
		return fmt.Errorf("store/file: create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("store/file: write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("store/file: fsync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("store/file: close temp file: %w", err)
	}

	dest := s.path(sessionID)
	if _, err := os.Stat(dest); err == nil {
		if err := os.Remove(dest); err != nil {
			return fmt.Errorf("store/file: remove existing checkpoint: %w", err)
		}
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return fmt.Errorf("store/file: rename temp file: %w", err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context, sessionID string) (search.Checkpoint, error) {
	if sessionID == "" {
		return search.Checkpoint{}, fmt.Errorf("store/file: sessionID cannot be empty")
	}
	data, err := os.ReadFile(s.path(sessionID))
	if err != nil {
		if os.IsNotExist(err) {
			return search.Checkpoint{}, store.ErrSessionNotFound
		}
		return search.Checkpoint{}, fmt.Errorf("store/file: read checkpoint: %w", err)
	}
	var cp search.Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return search.Checkpoint{}, fmt.Errorf("store/file: unmarshal checkpoint: %w", err)
	}
	return cp, nil
}

func (s *Store) Delete(ctx context.Context, sessionID string) error {
	err := os.Remove(s.path(sessionID))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("store/file: delete checkpoint: %w", err)
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("store/file: list sessions: %w", err)
	}
	var sessions []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		name := e.Name()
		sessions = append(sessions, name[:len(name)-len(".json")])
	}
	return sessions, nil
}
