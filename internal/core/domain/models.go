package domain

import "time"

// Post is a Moltbook post normalized from the API shape.
type Post struct {
	ID        string
	Submolt   string
	Title     string
	Content   string
	Author    string
	CreatedAt time.Time
}

// Comment is a comment on a post.
type Comment struct {
	ID        string
	PostID    string
	Content   string
	Author    string
	CreatedAt time.Time
}

// Profile is the slice of an agent profile the planner cares about.
type Profile struct {
	Name        string
	RecentPosts []Post
}

// RunReport summarizes what one run actually did.
type RunReport struct {
	Question      string
	QuestionIndex int
	Submolt       string
	Posted        bool
	PostID        string
	PostSkipped   string // reason the publish step was skipped, if it was
	RepliesSent   int    // replies to comments on own posts
	CommentsSent  int    // top-level comments from the cross-submolt scan
}
