// Package client talks to the articleboardd JSON API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"git.tdpain.net/codemicro/articleBoard/board"
	"git.tdpain.net/codemicro/articleBoard/models"
	"git.tdpain.net/codemicro/articleBoard/transport"
	"github.com/google/uuid"
)

// Client holds one session with the daemon. Sessions are cookie based, so
// every call made through the same Client edits the same draft.
type Client struct {
	base *url.URL
	http *http.Client
}

func New(address string) (*Client, error) {
	if !strings.Contains(address, "://") {
		address = "http://" + address
	}
	base, err := url.Parse(address)
	if err != nil {
		return nil, fmt.Errorf("parse daemon address: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	return &Client{
		base: base,
		http: &http.Client{Jar: jar, Timeout: time.Second * 5},
	}, nil
}

// DraftState is the daemon's view of the current draft.
type DraftState struct {
	Draft     models.Draft `json:"draft"`
	Advisory  string       `json:"advisory"`
	CanSubmit bool         `json:"canSubmit"`
}

// APIError is a non-2xx answer from the daemon.
type APIError struct {
	StatusCode int
	Message    string            `json:"error"`
	Violations []board.Violation `json:"errors"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("daemon returned %d: %s", e.StatusCode, e.Message)
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		serialised, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(serialised)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.JoinPath(path).String(), body)
	if err != nil {
		return fmt.Errorf("make http request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do http request: %w", err)
	}

	bodyCont, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if category := resp.StatusCode / 100; category != 2 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if json.Unmarshal(bodyCont, apiErr) != nil || apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(bodyCont, out); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}

func (c *Client) Draft(ctx context.Context) (*DraftState, error) {
	o := new(DraftState)
	return o, c.do(ctx, http.MethodGet, "/api/draft", nil, o)
}

func (c *Client) UpdateField(ctx context.Context, field models.Field, value string) (*DraftState, error) {
	o := new(DraftState)
	return o, c.do(ctx, http.MethodPost, "/api/draft/fields", &transport.FieldChange{Field: string(field), Value: value}, o)
}

func (c *Client) ToggleTag(ctx context.Context, tag string, selected bool) (*DraftState, error) {
	o := new(DraftState)
	return o, c.do(ctx, http.MethodPost, "/api/draft/tags", &transport.TagChange{Tag: tag, Selected: selected}, o)
}

func (c *Client) TogglePublished(ctx context.Context) (*DraftState, error) {
	o := new(DraftState)
	return o, c.do(ctx, http.MethodPost, "/api/draft/published", nil, o)
}

func (c *Client) Reset(ctx context.Context) (*DraftState, error) {
	o := new(DraftState)
	return o, c.do(ctx, http.MethodPost, "/api/draft/reset", nil, o)
}

// Submit finalises the draft. A rejected draft yields an *APIError
// carrying the violations.
func (c *Client) Submit(ctx context.Context) (*models.Article, error) {
	o := new(models.Article)
	return o, c.do(ctx, http.MethodPost, "/api/draft/submit", nil, o)
}

func (c *Client) Articles(ctx context.Context) ([]models.Article, error) {
	var o []models.Article
	return o, c.do(ctx, http.MethodGet, "/api/articles", nil, &o)
}

func (c *Client) Remove(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/articles/"+id.String(), nil, nil)
}

// Post fills a fresh draft from d and submits it.
func (c *Client) Post(ctx context.Context, d models.Draft) (*models.Article, error) {
	if _, err := c.Reset(ctx); err != nil {
		return nil, fmt.Errorf("reset draft: %w", err)
	}

	for _, field := range models.Fields {
		if value := d.Get(field); value != "" {
			if _, err := c.UpdateField(ctx, field, value); err != nil {
				return nil, fmt.Errorf("update field %s: %w", field, err)
			}
		}
	}

	for _, tag := range d.Tags {
		if _, err := c.ToggleTag(ctx, tag, true); err != nil {
			return nil, fmt.Errorf("select tag %q: %w", tag, err)
		}
	}

	if d.Published {
		if _, err := c.TogglePublished(ctx); err != nil {
			return nil, fmt.Errorf("toggle published: %w", err)
		}
	}

	article, err := c.Submit(ctx)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && len(apiErr.Violations) != 0 {
			return nil, &board.ValidationError{Violations: apiErr.Violations}
		}
		return nil, fmt.Errorf("submit draft: %w", err)
	}
	return article, nil
}
