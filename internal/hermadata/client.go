package hermadata

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

	"github.com/hermadata/console/internal/schema"
)

// Client talks to the Hermadata HTTP API.
//
// A bearer token, when set, is attached to every request. Any 401/403
// response triggers the registered auth-failure hook exactly once per
// request, so expiry handling lives in one place instead of in every
// caller.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string

	mu            sync.RWMutex
	token         string
	onAuthFailure func()
}

const (
	defaultEndpoint  = "127.0.0.1:8050"
	defaultUserAgent = "hermadata-console/0.1"
	requestTimeout   = 10 * time.Second
)

// NewClient builds a Client for the given host:port or URL endpoint.
func NewClient(endpoint string) (*Client, error) {
	base, err := parseBaseURL(endpoint)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// SetToken stores the bearer token for subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken removes the stored bearer token.
func (c *Client) ClearToken() {
	c.SetToken("")
}

// SetAuthFailureHook registers the single callback invoked whenever the
// API rejects a request with 401/403. The authorization gate uses it to
// force a logout; no other component should intercept auth failures.
func (c *Client) SetAuthFailureHook(fn func()) {
	c.mu.Lock()
	c.onAuthFailure = fn
	c.mu.Unlock()
}

func (c *Client) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) notifyAuthFailure() {
	c.mu.RLock()
	fn := c.onAuthFailure
	c.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

// Login exchanges credentials for a bearer token. It does not store the
// token; the authorization gate decides when a session starts.
func (c *Client) Login(ctx context.Context, username, password string) (Credentials, error) {
	if c == nil {
		return Credentials{}, fmt.Errorf("client is nil")
	}
	body := map[string]string{"username": username, "password": password}
	var creds Credentials
	rel := &url.URL{Path: "/auth/login"}
	if err := c.doJSON(ctx, http.MethodPost, rel, body, &creds); err != nil {
		return Credentials{}, err
	}
	if strings.TrimSpace(creds.AccessToken) == "" {
		return Credentials{}, schema.Errorf("access_token", "missing token in login response")
	}
	return creds, nil
}

// FetchProfile retrieves the logged-in operator's identity and role flag.
func (c *Client) FetchProfile(ctx context.Context) (Profile, error) {
	var profile Profile
	rel := &url.URL{Path: "/users/me"}
	if err := c.doJSON(ctx, http.MethodGet, rel, nil, &profile); err != nil {
		return Profile{}, err
	}
	return profile, nil
}

// doJSON performs one API round trip: encodes body (when non-nil),
// attaches headers and the bearer token, maps non-2xx responses to the
// error taxonomy, decodes into dest (when non-nil) and validates the
// decoded payload.
func (c *Client) doJSON(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	resp, err := c.send(ctx, method, rel, reader, "application/json")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := c.checkStatus(rel, resp); err != nil {
		return err
	}
	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return schema.Errorf("$", "decode %s response: %v", rel.Path, err)
	}
	// Value-receiver Validate methods are in the pointer's method set, so
	// decoded destinations validate directly.
	return schema.Check(dest)
}

// send builds and executes the request. Transport failures come back as
// wrapped plain errors (the NetworkError class of the taxonomy).
func (c *Client) send(ctx context.Context, method string, rel *url.URL, body io.Reader, contentType string) (*http.Response, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil && contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	return resp, nil
}

// checkStatus converts a non-2xx response into an *APIError when the body
// carries the structured shape, or a plain error otherwise, and fires the
// auth-failure hook for 401/403.
func (c *Client) checkStatus(rel *url.URL, resp *http.Response) error {
	if resp.StatusCode < 400 {
		return nil
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	apiErr := &APIError{StatusCode: resp.StatusCode}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, apiErr)
	}
	if apiErr.AuthFailure() {
		c.notifyAuthFailure()
	}
	if apiErr.Code == "" && apiErr.Message == "" {
		apiErr.Message = "request to " + rel.Path + " failed"
	}
	return apiErr
}

func parseBaseURL(endpoint string) (*url.URL, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		trimmed = defaultEndpoint
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api endpoint %q: %w", endpoint, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
