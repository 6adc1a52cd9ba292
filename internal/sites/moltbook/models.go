package moltbook

import (
	"time"

	"github.com/rstrong30/moltbook-agent/internal/core/domain"
)

type statusResponse struct {
	Status string `json:"status"`
}

type profileResponse struct {
	Name        string    `json:"name"`
	RecentPosts []apiPost `json:"recentPosts"`
}

type createPostResponse struct {
	Post apiPost `json:"post"`
}

type apiPost struct {
	ID         string       `json:"id"`
	Submolt    string       `json:"submolt"`
	Title      string       `json:"title"`
	Content    string       `json:"content"`
	AuthorName string       `json:"author_name"`
	Author     *authorField `json:"author,omitempty"`
	Comments   []apiComment `json:"comments"`
	CreatedAt  string       `json:"created_at"`
}

type apiComment struct {
	ID        string       `json:"id"`
	CommentID string       `json:"comment_id"` // some endpoints use this key instead of id
	PostID    string       `json:"post_id"`
	Content   string       `json:"content"`
	Author    *authorField `json:"author,omitempty"`
	CreatedAt string       `json:"created_at"`
}

type authorField struct {
	Name string `json:"name"`
}

func (p apiPost) toDomain() domain.Post {
	author := p.AuthorName
	if author == "" && p.Author != nil {
		author = p.Author.Name
	}
	return domain.Post{
		ID:        p.ID,
		Submolt:   p.Submolt,
		Title:     p.Title,
		Content:   p.Content,
		Author:    author,
		CreatedAt: parseTime(p.CreatedAt),
	}
}

func (c apiComment) toDomain(postID string) domain.Comment {
	id := c.ID
	if id == "" {
		id = c.CommentID
	}
	if c.PostID != "" {
		postID = c.PostID
	}
	var author string
	if c.Author != nil {
		author = c.Author.Name
	}
	return domain.Comment{
		ID:        id,
		PostID:    postID,
		Content:   c.Content,
		Author:    author,
		CreatedAt: parseTime(c.CreatedAt),
	}
}

// parseTime tolerates the timestamp shapes the API is known to emit; an
// unparseable value becomes the zero time and is skipped by date checks.
func parseTime(value string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
