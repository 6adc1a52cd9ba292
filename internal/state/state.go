package state

import "sort"

// RunState is the durable record that makes re-runs idempotent: the last
// published post, every comment ever replied to, every post ever commented
// on, and the submolt rotation cursor.
//
// Exactly one run owns the record at a time. There is no locking; callers
// must serialize invocations against the same store.
type RunState struct {
	LastPostDate         string   `json:"last_post_date,omitempty"` // ISO date (YYYY-MM-DD)
	LastPostID           string   `json:"last_post_id,omitempty"`
	RepliedCommentIDs    []string `json:"replied_comment_ids"`
	CommentedPostIDs     []string `json:"commented_post_ids"`
	SubmoltRotationIndex int      `json:"submolt_rotation_index"`
	LastRunAt            string   `json:"last_run_at,omitempty"` // RFC3339 UTC
}

// New returns the zero-value record used on first run.
func New() *RunState {
	return &RunState{
		RepliedCommentIDs: []string{},
		CommentedPostIDs:  []string{},
	}
}

// HasReplied reports whether the comment was already replied to in any run.
func (s *RunState) HasReplied(commentID string) bool {
	return contains(s.RepliedCommentIDs, commentID)
}

// MarkReplied records a comment id; recorded ids are never replied to again.
func (s *RunState) MarkReplied(commentID string) {
	if !s.HasReplied(commentID) {
		s.RepliedCommentIDs = append(s.RepliedCommentIDs, commentID)
	}
}

// HasCommented reports whether the post already got a top-level comment.
func (s *RunState) HasCommented(postID string) bool {
	return contains(s.CommentedPostIDs, postID)
}

// MarkCommented records a post id; recorded ids are never commented on again.
func (s *RunState) MarkCommented(postID string) {
	if !s.HasCommented(postID) {
		s.CommentedPostIDs = append(s.CommentedPostIDs, postID)
	}
}

// Normalize sorts the id sets and replaces nil slices so that serialized
// output is stable and diff-friendly across runs.
func (s *RunState) Normalize() {
	if s.RepliedCommentIDs == nil {
		s.RepliedCommentIDs = []string{}
	}
	if s.CommentedPostIDs == nil {
		s.CommentedPostIDs = []string{}
	}
	sort.Strings(s.RepliedCommentIDs)
	sort.Strings(s.CommentedPostIDs)
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
