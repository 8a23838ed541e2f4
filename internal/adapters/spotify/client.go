// Package spotify implements the catalog provider against the Spotify Web
// API using the client-credentials flow.
package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/harmonia-labs/moodcraft/internal/core/ports"
)

const (
	defaultBaseURL  = "https://api.spotify.com/v1"
	defaultTokenURL = "https://accounts.spotify.com/api/token"
)

// Client is the HTTP client behind ports.CatalogProvider.
type Client struct {
	httpClient *http.Client
	baseURL    string
	creds      *clientcredentials.Config

	mu     sync.Mutex
	tokens oauth2.TokenSource

	maxRetries  int
	baseBackoff time.Duration
}

// compile-time interface assertion
var _ ports.CatalogProvider = (*Client)(nil)

// Option tweaks client construction.
type Option func(*Client)

// WithHTTPClient overrides the transport, mainly for tests.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.httpClient = h } }

// WithBaseURL points the client at a different API root, mainly for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithTokenURL overrides the token endpoint, mainly for tests.
func WithTokenURL(u string) Option { return func(c *Client) { c.creds.TokenURL = u } }

// WithRetry overrides retry count and base backoff.
func WithRetry(maxRetries int, baseBackoff time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.baseBackoff = baseBackoff
	}
}

// NewClient constructs a catalog client authenticating with the
// client-credentials grant.
func NewClient(clientID, clientSecret string, opts ...Option) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
		baseURL:    defaultBaseURL,
		creds: &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     defaultTokenURL,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) tokenSource(ctx context.Context) oauth2.TokenSource {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tokens == nil {
		c.tokens = c.creds.TokenSource(context.WithValue(ctx, oauth2.HTTPClient, c.httpClient))
	}
	return c.tokens
}

// resetToken drops the cached token source so the next request fetches a
// fresh token.
func (c *Client) resetToken() {
	c.mu.Lock()
	c.tokens = nil
	c.mu.Unlock()
}

// getJSON performs an authenticated GET and decodes the body into out. A 401
// resets the cached token and retries the request exactly once.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	refreshed := false
	for {
		tok, err := c.tokenSource(ctx).Token()
		if err != nil {
			return fmt.Errorf("spotify adapter: token: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("spotify adapter: %w", err)
		}
		tok.SetAuthHeader(req)

		resp, err := c.doRequestWithRetry(req)
		if err != nil {
			return err
		}

		if resp.StatusCode == http.StatusUnauthorized && !refreshed {
			_ = resp.Body.Close()
			c.resetToken()
			refreshed = true
			continue
		}

		if resp.StatusCode != http.StatusOK {
			_ = resp.Body.Close()
			return fmt.Errorf("spotify adapter: status %d for %s", resp.StatusCode, url)
		}

		err = json.NewDecoder(resp.Body).Decode(out)
		_ = resp.Body.Close()
		if err != nil {
			return fmt.Errorf("spotify adapter: decode %s: %w", url, err)
		}
		return nil
	}
}
