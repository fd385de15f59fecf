// Package transport is the authenticated HTTP layer used by remote clients.
package transport

import (
	"context"
	"net/http"

	"github.com/entalpic/siesta/pkg/constants"
	"github.com/entalpic/siesta/pkg/errors"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// TokenFunc returns the token to authenticate with. An empty token sends
// the request unauthenticated.
type TokenFunc func(ctx context.Context) (string, error)

// Client provides HTTP client functionality with authentication.
type Client struct {
	http   *http.Client
	auth   Authenticator
	token  TokenFunc
	accept string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken sets the token source.
func WithToken(fn TokenFunc) Option {
	return func(c *Client) { c.token = fn }
}

// WithAccept sets the Accept header sent with every request.
func WithAccept(accept string) Option {
	return func(c *Client) { c.accept = accept }
}

// New creates a new transport client with the specified authenticator.
func New(auth Authenticator, opts ...Option) *Client {
	if auth == nil {
		auth = &NoAuth{}
	}
	c := &Client{
		http:   &http.Client{Timeout: DefaultHTTPTimeout},
		auth:   auth,
		accept: "application/json",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do performs an HTTP request with authentication applied.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if c.token != nil {
		token, err := c.token(ctx)
		if err != nil {
			return nil, errors.NewAuthenticationError("", "token", "failed to retrieve token", err)
		}
		if token != "" {
			c.auth.Apply(req, token)
		}
	}

	req.Header.Set("Accept", c.accept)
	return c.http.Do(req.WithContext(ctx))
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapResource("create", "request", "GET "+url, err)
	}
	return c.Do(ctx, req)
}
