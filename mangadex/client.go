// Package mangadex provides a typed client for the MangaDex REST API.
//
// Every remote endpoint is described by a Route in a single table and sent
// through one generic dispatcher that builds the request, attaches the bearer
// token, performs a single round trip and unwraps the JSON envelope.
package mangadex

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dexcli/dex/constant"
	"github.com/samber/mo"
)

// Credentials is the token pair issued on login.
type Credentials struct {
	// Session authorizes requests. It lives for about fifteen minutes.
	Session string `json:"session"`
	// Refresh is exchanged for a new pair. It lives for about a month.
	Refresh string `json:"refresh"`
}

// SessionExpired reports whether the session token is expired at now.
// Tokens that cannot be parsed are treated as expired.
func (c Credentials) SessionExpired(now time.Time) bool {
	claims, err := ParseSessionClaims(c.Session)
	if err != nil {
		return true
	}
	return claims.ExpiredAt(now)
}

// Client is safe for concurrent use. Credentials are its only mutable state.
type Client struct {
	baseURL *url.URL
	http    *http.Client

	mu    sync.RWMutex
	creds *Credentials

	// authMu serializes login, logout and refresh across their round trip.
	authMu sync.Mutex
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the transport used for every request.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.http = client
	}
}

// WithCredentials seeds the client with a previously issued pair.
func WithCredentials(creds Credentials) Option {
	return func(c *Client) {
		c.creds = &creds
	}
}

// New creates a client for the API rooted at baseURL.
// An empty baseURL selects the public API.
func New(baseURL string, options ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = constant.APIBaseURL
	}

	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL: parsed,
		http:    http.DefaultClient,
	}

	for _, option := range options {
		option(c)
	}

	return c, nil
}

// BaseURL returns the root every route is resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Credentials returns a copy of the stored pair.
func (c *Client) Credentials() mo.Option[Credentials] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.creds == nil {
		return mo.None[Credentials]()
	}
	return mo.Some(*c.creds)
}

// SetCredentials replaces the stored pair. None clears it.
func (c *Client) SetCredentials(creds mo.Option[Credentials]) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if value, ok := creds.Get(); ok {
		c.creds = &value
	} else {
		c.creds = nil
	}
}

func (c *Client) session() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.creds == nil || c.creds.Session == "" {
		return "", false
	}
	return c.creds.Session, true
}

func (c *Client) refreshToken() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.creds == nil || c.creds.Refresh == "" {
		return "", false
	}
	return c.creds.Refresh, true
}
