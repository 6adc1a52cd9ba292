package ports

import (
	"context"

	"github.com/rstrong30/moltbook-agent/internal/core/domain"
	"github.com/rstrong30/moltbook-agent/internal/state"
)

// Platform is the Moltbook API surface the planner needs.
type Platform interface {
	// Claimed reports whether the authenticated agent passed the claim check.
	Claimed(ctx context.Context) (bool, error)
	// Profile fetches an agent profile including its recent posts.
	Profile(ctx context.Context, name string) (domain.Profile, error)
	// CreatePost publishes a new post to a submolt.
	CreatePost(ctx context.Context, submolt, title, content string) (domain.Post, error)
	// Comments lists the comments on a post.
	Comments(ctx context.Context, postID string) ([]domain.Comment, error)
	// CreateComment publishes a comment on a post. An empty parentID makes
	// it a top-level comment.
	CreateComment(ctx context.Context, postID, parentID, content string) error
	// SubmoltFeed lists the most recent posts in a submolt.
	SubmoltFeed(ctx context.Context, submolt string, limit int) ([]domain.Post, error)
}

// StateStore persists the run record between invocations.
type StateStore interface {
	Load(ctx context.Context) (*state.RunState, error)
	Save(ctx context.Context, st *state.RunState) error
}

// ReplyComposer produces the reply text for a target comment or post.
type ReplyComposer interface {
	ComposeReply(ctx context.Context, targetID, content string) (string, error)
}

// Notifier delivers a run summary to the agent owner.
type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}
