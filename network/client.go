// Package network provides the pre-configured HTTP client shared by API calls.
package network

import (
	"net/http"
	"time"

	"github.com/dexcli/dex/log"
	"golang.org/x/net/http2"
)

// Options tune the client returned by New.
type Options struct {
	// Timeout bounds a whole request. Zero means no timeout.
	Timeout time.Duration
	// UserAgent is set on requests that do not carry one already.
	UserAgent string
	// RateLimit is the steady number of requests per second. Zero disables throttling.
	RateLimit float64
	// Burst is the number of requests allowed above RateLimit at once.
	Burst int
}

// Client is the default shared client.
var Client = New(Options{Timeout: time.Minute})

// New builds a client over a tuned transport wrapped by the configured middleware.
func New(options Options) *http.Client {
	var rt http.RoundTripper = newTransport()

	if options.RateLimit > 0 {
		rt = Throttle(rt, options.RateLimit, options.Burst)
	}

	if options.UserAgent != "" {
		rt = WithUserAgent(rt, options.UserAgent)
	}

	return &http.Client{
		Timeout:   options.Timeout,
		Transport: rt,
	}
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 16
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = time.Second

	h2, err := http2.ConfigureTransports(t)
	if err != nil {
		log.Warnf("http2 configuration skipped: %v", err)
		return t
	}
	h2.ReadIdleTimeout = 30 * time.Second
	h2.PingTimeout = 15 * time.Second

	return t
}
