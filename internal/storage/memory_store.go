package storage

import (
	"context"

	"github.com/rstrong30/moltbook-agent/internal/core/ports"
	"github.com/rstrong30/moltbook-agent/internal/state"
)

// MemoryStore is an in-process StateStore for tests.
type MemoryStore struct {
	State     *state.RunState
	SaveCount int
	LoadErr   error
	SaveErr   error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{State: state.New()}
}

var _ ports.StateStore = (*MemoryStore)(nil)

func (s *MemoryStore) Load(ctx context.Context) (*state.RunState, error) {
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	cp := *s.State
	cp.RepliedCommentIDs = append([]string{}, s.State.RepliedCommentIDs...)
	cp.CommentedPostIDs = append([]string{}, s.State.CommentedPostIDs...)
	return &cp, nil
}

func (s *MemoryStore) Save(ctx context.Context, st *state.RunState) error {
	s.SaveCount++
	if s.SaveErr != nil {
		return s.SaveErr
	}
	st.Normalize()
	cp := *st
	s.State = &cp
	return nil
}
