package network

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNew(t *testing.T) {
	Convey("Given a test server echoing the user agent", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(r.UserAgent()))
		}))
		defer server.Close()

		Convey("The configured user agent should be sent", func() {
			client := New(Options{Timeout: time.Second, UserAgent: "dex/test"})
			resp, err := client.Get(server.URL)
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			buf := make([]byte, 64)
			n, _ := resp.Body.Read(buf)
			So(string(buf[:n]), ShouldEqual, "dex/test")
		})

		Convey("An explicit header should win", func() {
			client := New(Options{UserAgent: "dex/test"})
			req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
			req.Header.Set("User-Agent", "custom")
			resp, err := client.Do(req)
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			buf := make([]byte, 64)
			n, _ := resp.Body.Read(buf)
			So(string(buf[:n]), ShouldEqual, "custom")
		})
	})
}

func TestThrottle(t *testing.T) {
	Convey("Given a throttled round tripper", t, func() {
		var calls atomic.Int32
		next := RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			calls.Add(1)
			return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody, Request: req}, nil
		})
		rt := Throttle(next, 1, 1)

		Convey("The burst should pass immediately", func() {
			req, _ := http.NewRequest(http.MethodGet, "http://example.invalid", nil)
			_, err := rt.RoundTrip(req)
			So(err, ShouldBeNil)
			So(calls.Load(), ShouldEqual, 1)
		})

		Convey("A request over budget should give up when its context ends", func() {
			req, _ := http.NewRequest(http.MethodGet, "http://example.invalid", nil)
			_, _ = rt.RoundTrip(req)

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
			defer cancel()
			_, err := rt.RoundTrip(req.WithContext(ctx))
			So(err, ShouldNotBeNil)
			So(calls.Load(), ShouldEqual, 1)
		})
	})
}
