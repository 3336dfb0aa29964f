// Package transport is the HTTP client used to fetch dataset images.
package transport

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/agentstation/fiwdb/pkg/constants"
	"github.com/agentstation/fiwdb/pkg/errors"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// maxErrorBody caps how much of a failed response ends up in an error.
const maxErrorBody = 512

// Client wraps http.Client with a user agent and optional auth.
type Client struct {
	http      *http.Client
	auth      Authenticator
	token     string
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHTTPClient replaces the underlying client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithAuth applies auth with token to every request.
func WithAuth(auth Authenticator, token string) Option {
	return func(c *Client) {
		c.auth = auth
		c.token = token
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// New creates a client with the default timeout and no auth.
func New(opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{Timeout: DefaultHTTPTimeout},
		auth:      &NoAuth{},
		userAgent: constants.UserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do sends req with the user agent and credentials applied. Non-2xx
// responses are returned as *errors.APIError with the body closed.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		c.auth.Apply(req, c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		where := displayURL(req.URL)
		if req.Context().Err() != nil {
			return nil, errors.WrapResource("request", "url", where, errors.ErrCanceled)
		}
		var ue *url.Error
		if errors.As(err, &ue) {
			ue.URL = where
		}
		return nil, &errors.APIError{URL: where, Message: "request failed", Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer func() { _ = resp.Body.Close() }()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, errors.NewAPIError(displayURL(req.URL), resp.StatusCode, msg)
	}
	return resp, nil
}

// displayURL renders u for errors and logs. The query is dropped because
// QueryAuth puts the token there; userinfo is dropped too.
func displayURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	safe := *u
	safe.User = nil
	safe.RawQuery = ""
	safe.ForceQuery = false
	safe.Fragment = ""
	safe.RawFragment = ""
	return safe.String()
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapValidation("url", err)
	}
	return c.Do(req)
}
