package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rstrong30/moltbook-agent/internal/core/domain"
	"github.com/rstrong30/moltbook-agent/internal/core/ports"
	"github.com/rstrong30/moltbook-agent/internal/state"
)

// JSONStore persists the run record as an indented JSON object at a fixed
// path. The file and its parent directories are created on first save.
//
// A failed save is the caller's call to treat as non-fatal: platform actions
// already happened, and everything except the reply/comment dedup history
// can be re-derived by the next run. Losing that history is an accepted risk.
type JSONStore struct {
	Path string
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{Path: path}
}

var _ ports.StateStore = (*JSONStore)(nil)

// Load returns the zero-value record when no file exists yet. A file that
// exists but cannot be decoded is a corruption error, not a fresh start.
func (s *JSONStore) Load(ctx context.Context) (*state.RunState, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return state.New(), nil
	}
	if err != nil {
		return nil, &domain.StateCorruptionError{Path: s.Path, Err: err}
	}
	var st state.RunState
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, &domain.StateCorruptionError{Path: s.Path, Err: err}
	}
	st.Normalize()
	return &st, nil
}

// Save writes the record with sorted id sets and a fixed field order so
// successive runs produce diff-friendly output.
func (s *JSONStore) Save(ctx context.Context, st *state.RunState) error {
	st.Normalize()
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.Path, append(data, '\n'), 0o644)
}
