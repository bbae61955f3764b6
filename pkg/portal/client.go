package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Client is a typed HTTP client for the job portal API. It injects the
// bearer token on every request, retries idempotent reads per its
// RetryPolicy, and tears the session down on the first 401 it sees.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retry      RetryPolicy

	// OnUnauthorized fires once per session, after the token has been
	// cleared. Typical use is redirecting to a login screen.
	OnUnauthorized func()

	mu         sync.Mutex
	token      string
	generation uint64
	notified   bool

	// One guard per list endpoint: a newer fetch supersedes any fetch of
	// the same list still in flight.
	jobFetches         fetchGuard
	browseFetches      fetchGuard
	myAppFetches       fetchGuard
	employerJobFetches fetchGuard
	employerAppFetches fetchGuard
}

// fetchGuard orders overlapping fetches of one list. The newest fetch wins;
// fetches it superseded resolve as ErrStaleResponse.
type fetchGuard struct {
	mu  sync.Mutex
	gen uint64
}

func (g *fetchGuard) begin() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.gen++
	return g.gen
}

func (g *fetchGuard) superseded(gen uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.gen != gen
}

// Option configures a Client.
type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *Client) { c.retry = p }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		retry:      DefaultRetryPolicy(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken installs a session token and starts a new session generation.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	c.generation++
	c.notified = false
}

// ClearToken drops the session token. In-flight requests started under the
// old session resolve as ErrStaleResponse.
func (c *Client) ClearToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
	c.generation++
}

// Token returns the current session token, empty when signed out.
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

func (c *Client) snapshot() (token string, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token, c.generation
}

// handleUnauthorized clears the session and fires OnUnauthorized exactly
// once for the generation that received the 401.
func (c *Client) handleUnauthorized(gen uint64) {
	c.mu.Lock()
	if c.generation != gen || c.notified {
		c.mu.Unlock()
		return
	}
	c.token = ""
	c.notified = true
	hook := c.OnUnauthorized
	c.mu.Unlock()

	if hook != nil {
		hook()
	}
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, "", out)
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	r, err := jsonBody(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, nil, r, "application/json", out)
}

func (c *Client) putJSON(ctx context.Context, path string, body, out any) error {
	r, err := jsonBody(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, path, nil, r, "application/json", out)
}

func (c *Client) delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, "", out)
}

func (c *Client) postMultipart(ctx context.Context, path string, body *bytes.Buffer, contentType string, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, bytes.NewReader(body.Bytes()), contentType, out)
}

func jsonBody(body any) (io.Reader, error) {
	if body == nil {
		return nil, nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return bytes.NewReader(data), nil
}

// do issues the request, retrying per policy. The request body, if any,
// must be an io.Reader that is fully buffered so attempts can rewind it.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out any) error {
	token, gen := c.snapshot()

	var bodyBytes []byte
	if body != nil {
		var err error
		bodyBytes, err = io.ReadAll(body)
		if err != nil {
			return err
		}
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	attempts := c.retry.attempts()
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			if err := c.retry.wait(ctx, attempt-1); err != nil {
				return err
			}
		}

		var reqBody io.Reader
		if bodyBytes != nil {
			reqBody = bytes.NewReader(bodyBytes)
		}
		req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
		if err != nil {
			return err
		}
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if retryable(method, err) && attempt < attempts {
				continue
			}
			return lastErr
		}

		err = c.finish(resp, gen, out)
		if err != nil && retryable(method, err) && attempt < attempts {
			lastErr = err
			continue
		}
		return err
	}
	return lastErr
}

func (c *Client) finish(resp *http.Response, gen uint64, out any) error {
	defer resp.Body.Close()

	// Responses from a session that ended while the request was in flight
	// are never surfaced to callers.
	c.mu.Lock()
	stale := c.generation != gen
	c.mu.Unlock()
	if stale {
		io.Copy(io.Discard, resp.Body)
		return ErrStaleResponse
	}

	if resp.StatusCode == http.StatusUnauthorized {
		err := decodeError(resp)
		c.handleUnauthorized(gen)
		return err
	}
	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
