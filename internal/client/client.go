// Package client is a thin HTTP SDK for the CalmZone API. Every call carries
// the anonymous token from the supplied identity provider.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	types "github.com/yungbote/calmzone-backend/internal/domain"
	"github.com/yungbote/calmzone-backend/internal/identity"
	"github.com/yungbote/calmzone-backend/internal/pkg/httpx"
)

const (
	DefaultBaseURL = "http://localhost:8080"

	// Reads are retried; writes are sent once since a like toggle or a chat
	// turn must not be replayed.
	getAttempts = 3
	retryBase   = 200 * time.Millisecond
	retryMax    = 5 * time.Second
)

// ErrNoIdentity means the provider could not produce a token.
var ErrNoIdentity = errors.New("client: anonymous identity unavailable")

// APIError is a non-2xx response decoded from the server's error envelope.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

func (e *APIError) HTTPStatusCode() int { return e.Status }

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.Details != "" {
		return fmt.Sprintf("%s (%d %s): %s", msg, e.Status, e.Code, e.Details)
	}
	return fmt.Sprintf("%s (%d %s)", msg, e.Status, e.Code)
}

type Client struct {
	baseURL   string
	http      *http.Client
	ids       *identity.Provider
	retryBase time.Duration
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func New(baseURL string, ids *identity.Provider, opts ...Option) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:   baseURL,
		http:      &http.Client{Timeout: 90 * time.Second},
		ids:       ids,
		retryBase: retryBase,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) userHash() (string, error) {
	h := c.ids.GetOrCreate()
	if h == "" {
		return "", ErrNoIdentity
	}
	return h, nil
}

func (c *Client) ListMoods(ctx context.Context) ([]*types.MoodEntry, error) {
	owner, err := c.userHash()
	if err != nil {
		return nil, err
	}
	var out struct {
		Moods []*types.MoodEntry `json:"moods"`
	}
	err = c.do(ctx, http.MethodGet, "/moods", url.Values{"user_hash": {owner}}, nil, &out)
	return out.Moods, err
}

// RecordMood reports updated=true when today's entry already existed.
func (c *Client) RecordMood(ctx context.Context, mood, note string) (*types.MoodEntry, bool, error) {
	owner, err := c.userHash()
	if err != nil {
		return nil, false, err
	}
	body := map[string]string{"user_hash": owner, "mood": mood}
	if note != "" {
		body["note"] = note
	}
	var out struct {
		Mood    *types.MoodEntry `json:"mood"`
		Updated bool             `json:"updated"`
	}
	if err := c.do(ctx, http.MethodPost, "/moods", nil, body, &out); err != nil {
		return nil, false, err
	}
	return out.Mood, out.Updated, nil
}

// ListPosts works without an identity; with one, Liked marks the caller's likes.
func (c *Client) ListPosts(ctx context.Context, category string) ([]*types.Post, error) {
	q := url.Values{}
	if category != "" {
		q.Set("category", category)
	}
	if owner, err := c.userHash(); err == nil {
		q.Set("user_hash", owner)
	}
	var out struct {
		Posts []*types.Post `json:"posts"`
	}
	err := c.do(ctx, http.MethodGet, "/posts", q, nil, &out)
	return out.Posts, err
}

func (c *Client) CreatePost(ctx context.Context, content, category string) (*types.Post, error) {
	owner, err := c.userHash()
	if err != nil {
		return nil, err
	}
	var out struct {
		Post *types.Post `json:"post"`
	}
	err = c.do(ctx, http.MethodPost, "/posts", nil, map[string]string{
		"user_hash": owner,
		"content":   content,
		"category":  category,
	}, &out)
	return out.Post, err
}

func (c *Client) ToggleLike(ctx context.Context, postID string) (bool, int, error) {
	owner, err := c.userHash()
	if err != nil {
		return false, 0, err
	}
	var out struct {
		Liked      bool `json:"liked"`
		LikesCount int  `json:"likes_count"`
	}
	err = c.do(ctx, http.MethodPatch, "/posts", nil, map[string]string{
		"post_id":   postID,
		"user_hash": owner,
	}, &out)
	return out.Liked, out.LikesCount, err
}

func (c *Client) ChatHistory(ctx context.Context) ([]*types.ChatMessage, error) {
	owner, err := c.userHash()
	if err != nil {
		return nil, err
	}
	var out struct {
		Messages []*types.ChatMessage `json:"messages"`
	}
	err = c.do(ctx, http.MethodGet, "/chat", url.Values{"user_hash": {owner}}, nil, &out)
	return out.Messages, err
}

func (c *Client) SendMessage(ctx context.Context, text string) (string, error) {
	owner, err := c.userHash()
	if err != nil {
		return "", err
	}
	var out struct {
		Response string `json:"response"`
	}
	err = c.do(ctx, http.MethodPost, "/chat", nil, map[string]string{
		"user_hash": owner,
		"message":   text,
	}, &out)
	return out.Response, err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	attempts := 1
	if method == http.MethodGet {
		attempts = getAttempts
	}
	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		var hdr http.Header
		hdr, err = c.once(ctx, method, path, query, body, out)
		if err == nil || attempt == attempts-1 || !httpx.Retryable(ctx, err) {
			return err
		}
		wait := httpx.RetryAfter(hdr, httpx.Backoff(c.retryBase, attempt), retryMax)
		if serr := httpx.Sleep(ctx, wait); serr != nil {
			return err
		}
	}
	return err
}

func (c *Client) once(ctx context.Context, method, path string, query url.Values, body, out any) (http.Header, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return resp.Header, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		if jerr := json.Unmarshal(raw, apiErr); jerr != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(raw))
		}
		return resp.Header, apiErr
	}
	if out == nil {
		return resp.Header, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return resp.Header, fmt.Errorf("decode response: %w", err)
	}
	return resp.Header, nil
}
