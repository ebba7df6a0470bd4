package network

import (
	"net/http"

	"golang.org/x/time/rate"
)

// RoundTripperFunc lets a plain function satisfy http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// Throttle delays requests so that at most perSecond of them leave per second.
// Waiting honours the request context.
func Throttle(next http.RoundTripper, perSecond float64, burst int) http.RoundTripper {
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(perSecond), burst)

	return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if err := limiter.Wait(req.Context()); err != nil {
			return nil, err
		}
		return next.RoundTrip(req)
	})
}

// WithUserAgent sets the User-Agent header when the request has none.
func WithUserAgent(next http.RoundTripper, agent string) http.RoundTripper {
	return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if req.Header.Get("User-Agent") != "" {
			return next.RoundTrip(req)
		}

		clone := req.Clone(req.Context())
		clone.Header.Set("User-Agent", agent)
		return next.RoundTrip(clone)
	})
}
