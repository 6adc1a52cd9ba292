// Package moltbook is the HTTP adapter for the Moltbook platform API. It
// normalizes the API's response shapes into domain types at the boundary so
// the planner never branches on wire formats.
package moltbook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rstrong30/moltbook-agent/internal/core/domain"
	"github.com/rstrong30/moltbook-agent/internal/core/ports"
)

const DefaultBaseURL = "https://www.moltbook.com/api/v1"

const requestTimeout = 30 * time.Second

// Client is the bearer-token authenticated Moltbook adapter. Every call is
// attempted at most once; timeouts surface as transport errors like any
// other network failure.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		BaseURL:    DefaultBaseURL,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: requestTimeout},
	}
}

var _ ports.Platform = (*Client)(nil)

// statusError carries the HTTP status so callers can branch on specific
// codes (the comments endpoint fallback needs 405).
type statusError struct {
	Status  int
	Message string
}

func (e *statusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("status %d", e.Status)
}

func (c *Client) Claimed(ctx context.Context) (bool, error) {
	var res statusResponse
	if err := c.doJSON(ctx, http.MethodGet, "/agents/status", nil, &res); err != nil {
		return false, &domain.TransportError{Op: "claim check", Err: err}
	}
	return res.Status == "claimed", nil
}

func (c *Client) Profile(ctx context.Context, name string) (domain.Profile, error) {
	var res profileResponse
	path := "/agents/profile?name=" + url.QueryEscape(name)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &res); err != nil {
		return domain.Profile{}, &domain.TransportError{Op: "fetch profile", Err: err}
	}
	profile := domain.Profile{Name: res.Name}
	for _, p := range res.RecentPosts {
		profile.RecentPosts = append(profile.RecentPosts, p.toDomain())
	}
	return profile, nil
}

func (c *Client) CreatePost(ctx context.Context, submolt, title, content string) (domain.Post, error) {
	payload := map[string]string{"submolt": submolt, "title": title, "content": content}
	var res createPostResponse
	if err := c.doJSON(ctx, http.MethodPost, "/posts", payload, &res); err != nil {
		return domain.Post{}, &domain.TransportError{Op: "create post", Err: err}
	}
	post := res.Post.toDomain()
	if post.Submolt == "" {
		post.Submolt = submolt
	}
	return post, nil
}

// Comments tolerates the two shapes the endpoint returns (a bare array or an
// object with a "comments" field) and falls back to the post detail endpoint
// when the comments endpoint answers 405.
func (c *Client) Comments(ctx context.Context, postID string) ([]domain.Comment, error) {
	body, err := c.doRaw(ctx, http.MethodGet, "/posts/"+postID+"/comments?sort=new", nil)
	if err != nil {
		if se, ok := err.(*statusError); ok && se.Status == http.StatusMethodNotAllowed {
			return c.commentsFromPost(ctx, postID)
		}
		return nil, &domain.TransportError{Op: "list comments", Err: err}
	}
	raw, err := decodeCommentList(body)
	if err != nil {
		return nil, &domain.TransportError{Op: "list comments", Err: err}
	}
	out := make([]domain.Comment, 0, len(raw))
	for _, cm := range raw {
		out = append(out, cm.toDomain(postID))
	}
	return out, nil
}

func (c *Client) commentsFromPost(ctx context.Context, postID string) ([]domain.Comment, error) {
	var post apiPost
	if err := c.doJSON(ctx, http.MethodGet, "/posts/"+postID, nil, &post); err != nil {
		return nil, &domain.TransportError{Op: "fetch post", Err: err}
	}
	out := make([]domain.Comment, 0, len(post.Comments))
	for _, cm := range post.Comments {
		out = append(out, cm.toDomain(postID))
	}
	return out, nil
}

func (c *Client) CreateComment(ctx context.Context, postID, parentID, content string) error {
	payload := map[string]string{"content": content}
	if parentID != "" {
		payload["parent_id"] = parentID
	}
	if err := c.doJSON(ctx, http.MethodPost, "/posts/"+postID+"/comments", payload, nil); err != nil {
		return &domain.TransportError{Op: "create comment", Err: err}
	}
	return nil
}

func (c *Client) SubmoltFeed(ctx context.Context, submolt string, limit int) ([]domain.Post, error) {
	path := fmt.Sprintf("/submolts/%s/posts?limit=%d&sort=new", url.PathEscape(submolt), limit)
	body, err := c.doRaw(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, &domain.TransportError{Op: "fetch submolt feed", Err: err}
	}
	raw, err := decodePostList(body)
	if err != nil {
		return nil, &domain.TransportError{Op: "fetch submolt feed", Err: err}
	}
	out := make([]domain.Post, 0, len(raw))
	for _, p := range raw {
		post := p.toDomain()
		if post.Submolt == "" {
			post.Submolt = submolt
		}
		out = append(out, post)
	}
	return out, nil
}

// decodeCommentList accepts either a JSON array or {"comments": [...]}.
func decodeCommentList(body []byte) ([]apiComment, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var list []apiComment
		err := json.Unmarshal(trimmed, &list)
		return list, err
	}
	var envelope struct {
		Comments []apiComment `json:"comments"`
	}
	err := json.Unmarshal(trimmed, &envelope)
	return envelope.Comments, err
}

// decodePostList accepts either a JSON array or {"posts": [...]}.
func decodePostList(body []byte) ([]apiPost, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var list []apiPost
		err := json.Unmarshal(trimmed, &list)
		return list, err
	}
	var envelope struct {
		Posts []apiPost `json:"posts"`
	}
	err := json.Unmarshal(trimmed, &envelope)
	return envelope.Posts, err
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload, out any) error {
	body, err := c.doRaw(ctx, method, path, payload)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func (c *Client) doRaw(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &statusError{Status: resp.StatusCode, Message: errorMessage(body)}
	}
	return body, nil
}

func errorMessage(body []byte) string {
	var res struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &res) == nil {
		if res.Message != "" {
			return res.Message
		}
		if res.Error != "" {
			return res.Error
		}
	}
	return strings.TrimSpace(string(body))
}
