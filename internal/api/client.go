// Package api talks to the remote todo collection over HTTP/JSON.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/idilsaglam/tada/internal/model"
)

// DefaultBaseURL is the collection endpoint of a locally running server.
const DefaultBaseURL = "http://localhost:8080/api/todos"

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d %s", e.Code, http.StatusText(e.Code))
	}
	return fmt.Sprintf("server returned %d: %s", e.Code, e.Message)
}

// IsNotFound reports whether err is a 404 from the collection.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

// Client maps the CRUD verbs onto one collection URL.
// No retries, no timeouts beyond what the caller's context imposes.
type Client struct {
	base *url.URL
	http *http.Client
}

type Option func(*Client)

// WithHTTPClient swaps the transport, mostly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New parses baseURL (the collection path, e.g. http://host/api/todos).
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}
	c := &Client{base: u, http: http.DefaultClient}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the collection URL the client was built with.
func (c *Client) BaseURL() string { return c.base.String() }

func (c *Client) List(ctx context.Context) ([]model.Todo, error) {
	var todos []model.Todo
	if err := c.do(ctx, http.MethodGet, c.base.String(), nil, &todos); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	if todos == nil {
		todos = []model.Todo{}
	}
	return todos, nil
}

func (c *Client) Get(ctx context.Context, id int64) (model.Todo, error) {
	var t model.Todo
	if err := c.do(ctx, http.MethodGet, c.itemURL(id), nil, &t); err != nil {
		return model.Todo{}, fmt.Errorf("get todo %d: %w", id, err)
	}
	return t, nil
}

// Create posts the candidate without an id and returns the server's record.
func (c *Client) Create(ctx context.Context, t model.Todo) (model.Todo, error) {
	t.ID = 0
	var out model.Todo
	if err := c.do(ctx, http.MethodPost, c.base.String(), t, &out); err != nil {
		return model.Todo{}, fmt.Errorf("create todo: %w", err)
	}
	return out, nil
}

// Update sends the full record for id.
func (c *Client) Update(ctx context.Context, id int64, t model.Todo) (model.Todo, error) {
	t.ID = id
	var out model.Todo
	if err := c.do(ctx, http.MethodPut, c.itemURL(id), t, &out); err != nil {
		return model.Todo{}, fmt.Errorf("update todo %d: %w", id, err)
	}
	return out, nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	if err := c.do(ctx, http.MethodDelete, c.itemURL(id), nil, nil); err != nil {
		return fmt.Errorf("delete todo %d: %w", id, err)
	}
	return nil
}

func (c *Client) itemURL(id int64) string {
	return c.base.JoinPath(strconv.FormatInt(id, 10)).String()
}

// do performs one request/response pair. in is JSON-encoded when non-nil;
// out is decoded from a 2xx body when non-nil.
func (c *Client) do(ctx context.Context, method, target string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("json marshal: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("json decode: %w", err)
	}
	return nil
}

// statusError pulls "message" out of the server's error body when present.
func statusError(resp *http.Response) error {
	se := &StatusError{Code: resp.StatusCode}
	b, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(b) == 0 {
		return se
	}
	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(b, &payload) == nil && payload.Message != "" {
		se.Message = payload.Message
		return se
	}
	se.Message = string(bytes.TrimSpace(b))
	return se
}
