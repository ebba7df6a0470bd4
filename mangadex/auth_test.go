package mangadex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

// recorded captures what the test server received. Assertions run on the
// test goroutine, never inside the handler.
type recorded struct {
	calls  int
	method string
	path   string
	query  url.Values
	header http.Header
	body   []byte
}

func (rec *recorded) capture(r *http.Request) {
	rec.calls++
	rec.method = r.Method
	rec.path = r.URL.Path
	rec.query = r.URL.Query()
	rec.header = r.Header.Clone()
	rec.body, _ = io.ReadAll(r.Body)
}

func (rec *recorded) decodeBody(v any) {
	So(json.Unmarshal(rec.body, v), ShouldBeNil)
}

func newTestClient(handler http.HandlerFunc, options ...Option) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client, err := New(server.URL, options...)
	if err != nil {
		panic(err)
	}
	return client, server
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

var testCredentials = Credentials{Session: "sessiontoken", Refresh: "refreshtoken"}

func TestLogin(t *testing.T) {
	Convey("Given a login endpoint", t, func() {
		var rec recorded
		status, response := http.StatusOK, `{"result":"ok","token":{"session":"sessiontoken","refresh":"refreshtoken"}}`

		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			rec.capture(r)
			if response == "" {
				w.WriteHeader(status)
				return
			}
			writeJSON(w, status, response)
		})
		defer server.Close()

		Convey("A successful login should store the tokens", func() {
			creds, err := client.Login(context.Background(), "myusername", "mypassword")
			So(err, ShouldBeNil)
			So(rec.method, ShouldEqual, http.MethodPost)
			So(rec.path, ShouldEqual, "/auth/login")
			So(rec.header.Get("Content-Type"), ShouldEqual, "application/json")
			So(rec.header.Get("Authorization"), ShouldBeEmpty)

			var got loginBody
			rec.decodeBody(&got)
			So(got, ShouldResemble, loginBody{Username: "myusername", Password: "mypassword"})
			So(creds, ShouldResemble, testCredentials)
			So(client.Credentials(), ShouldResemble, mo.Some(testCredentials))
		})

		Convey("An error envelope should surface as an api error", func() {
			status, response = http.StatusBadRequest, `{"result":"error","errors":[]}`

			_, err := client.Login(context.Background(), "myusername", "mypassword")
			var apiErr *APIError
			So(errors.As(err, &apiErr), ShouldBeTrue)
			So(apiErr.Status, ShouldEqual, http.StatusBadRequest)
			So(apiErr.Errors, ShouldBeEmpty)
			So(client.Credentials().IsAbsent(), ShouldBeTrue)
		})

		Convey("An empty unauthorized response should be malformed", func() {
			status, response = http.StatusUnauthorized, ""

			_, err := client.Login(context.Background(), "myusername", "mypassword")
			var malformed *MalformedResponseError
			So(errors.As(err, &malformed), ShouldBeTrue)
			So(malformed.Status, ShouldEqual, http.StatusUnauthorized)
		})

		Convey("An ok envelope without a token pair should be rejected", func() {
			client.SetCredentials(mo.Some(testCredentials))
			response = `{"result":"ok"}`

			creds, err := client.Login(context.Background(), "myusername", "mypassword")
			var malformed *MalformedResponseError
			So(errors.As(err, &malformed), ShouldBeTrue)
			So(malformed.Status, ShouldEqual, http.StatusOK)
			So(errors.Is(err, errMissingToken), ShouldBeTrue)
			So(creds, ShouldResemble, Credentials{})
			So(client.Credentials(), ShouldResemble, mo.Some(testCredentials))
		})

		Convey("A pair missing its refresh token should be rejected", func() {
			response = `{"result":"ok","token":{"session":"sessiontoken"}}`

			_, err := client.Login(context.Background(), "myusername", "mypassword")
			So(errors.Is(err, errMissingToken), ShouldBeTrue)
			So(client.Credentials().IsAbsent(), ShouldBeTrue)
		})

		Convey("A failed login should keep previous tokens", func() {
			client.SetCredentials(mo.Some(testCredentials))
			status, response = http.StatusUnauthorized, `{"result":"error","errors":[{"id":"5e50fc7b-e185-45b1-a692-58e8091b22d2","status":401,"title":"Unauthorized"}]}`

			_, err := client.Login(context.Background(), "myusername", "wrong")
			So(IsStatus(err, http.StatusUnauthorized), ShouldBeTrue)
			So(client.Credentials(), ShouldResemble, mo.Some(testCredentials))
		})
	})
}

func TestCheckToken(t *testing.T) {
	Convey("Given a logged in client", t, func() {
		var rec recorded
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			rec.capture(r)
			writeJSON(w, http.StatusOK, `{
				"result": "ok",
				"isAuthenticated": true,
				"roles": ["ROLE_MEMBER", "IS_JWT_AUTHENTICATED", "IS_AUTHENTICATED_FULLY", "IS_AUTHENTICATED_ANONYMOUSLY", "IS_AUTHENTICATED_REMEMBERED"],
				"permissions": ["user.list", "manga.view", "chapter.view", "author.view", "scanlation_group.view", "cover.view", "manga.list", "chapter.list", "author.list", "scanlation_group.list", "cover.list"]
			}`)
		}, WithCredentials(testCredentials))
		defer server.Close()

		Convey("The token status should be decoded", func() {
			status, err := client.CheckToken(context.Background())
			So(err, ShouldBeNil)
			So(rec.method, ShouldEqual, http.MethodGet)
			So(rec.path, ShouldEqual, "/auth/check")
			So(rec.header.Get("Authorization"), ShouldEqual, "Bearer sessiontoken")
			So(status.IsAuthenticated, ShouldBeTrue)
			So(status.Roles, ShouldHaveLength, 5)
			So(status.Permissions, ShouldHaveLength, 11)
		})
	})
}

func TestLogout(t *testing.T) {
	Convey("Given a logged in client", t, func() {
		var rec recorded
		status, response := http.StatusOK, `{"result":"ok"}`
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			rec.capture(r)
			writeJSON(w, status, response)
		}, WithCredentials(testCredentials))
		defer server.Close()

		Convey("A successful logout should clear the tokens", func() {
			So(client.Credentials().IsPresent(), ShouldBeTrue)
			So(client.Logout(context.Background()), ShouldBeNil)
			So(rec.method, ShouldEqual, http.MethodPost)
			So(rec.path, ShouldEqual, "/auth/logout")
			So(rec.header.Get("Authorization"), ShouldEqual, "Bearer sessiontoken")
			So(client.Credentials().IsAbsent(), ShouldBeTrue)
		})

		Convey("A failed logout should report the errors and keep the tokens", func() {
			status = http.StatusServiceUnavailable
			response = `{"result":"error","errors":[{"id":"5e50fc7b-e185-45b1-a692-58e8091b22d2","title":"The service is unavailable","status":503,"detail":"Servers are burning"}]}`

			err := client.Logout(context.Background())
			var apiErr *APIError
			So(errors.As(err, &apiErr), ShouldBeTrue)
			So(apiErr.Errors, ShouldHaveLength, 1)

			record := apiErr.Errors[0]
			So(record.ID, ShouldEqual, uuid.MustParse("5e50fc7b-e185-45b1-a692-58e8091b22d2"))
			So(record.Title, ShouldResemble, mo.Some("The service is unavailable"))
			So(record.Detail, ShouldResemble, mo.Some("Servers are burning"))
			So(record.Status, ShouldEqual, http.StatusServiceUnavailable)

			So(client.Credentials(), ShouldResemble, mo.Some(testCredentials))
		})
	})
}

func TestRefresh(t *testing.T) {
	Convey("Given a logged in client", t, func() {
		var rec recorded
		status, response := http.StatusOK, `{"result":"ok","token":{"session":"sessiontoken2","refresh":"refreshtoken2"},"message":"Token refreshed!"}`

		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			rec.capture(r)
			writeJSON(w, status, response)
		}, WithCredentials(testCredentials))
		defer server.Close()

		Convey("Both tokens should be replaced", func() {
			resp, err := client.Refresh(context.Background())
			So(err, ShouldBeNil)
			So(rec.path, ShouldEqual, "/auth/refresh")
			So(rec.header.Get("Content-Type"), ShouldEqual, "application/json")

			var got refreshBody
			rec.decodeBody(&got)
			So(got.Token, ShouldEqual, "refreshtoken")
			So(resp.Message, ShouldResemble, mo.Some("Token refreshed!"))
			So(client.Credentials(), ShouldResemble, mo.Some(Credentials{Session: "sessiontoken2", Refresh: "refreshtoken2"}))
		})

		Convey("A response without a new pair should leave the tokens untouched", func() {
			response = `{"result":"ok","token":{"session":"sessiontoken2"},"message":"Token refreshed!"}`

			resp, err := client.Refresh(context.Background())
			So(errors.Is(err, errMissingToken), ShouldBeTrue)
			So(resp, ShouldResemble, RefreshResponse{})
			So(client.Credentials(), ShouldResemble, mo.Some(testCredentials))
		})

		for _, code := range []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden} {
			Convey("A "+http.StatusText(code)+" response should leave the tokens untouched", func() {
				status = code
				response = `{"result":"error","errors":[{"id":"5e50fc7b-e185-45b1-a692-58e8091b22d2","status":` + jsonInt(code) + `,"title":"` + http.StatusText(code) + `"}]}`

				_, err := client.Refresh(context.Background())
				So(IsStatus(err, code), ShouldBeTrue)
				So(client.Credentials(), ShouldResemble, mo.Some(testCredentials))
			})
		}
	})

	Convey("Given a client without a refresh token", t, func() {
		var rec recorded
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			rec.capture(r)
		}, WithCredentials(Credentials{Session: "sessiontoken"}))
		defer server.Close()

		Convey("Refreshing should fail locally", func() {
			_, err := client.Refresh(context.Background())
			So(errors.Is(err, ErrMissingCredentials), ShouldBeTrue)
			So(rec.calls, ShouldEqual, 0)
		})
	})
}

func jsonInt(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}

func TestPing(t *testing.T) {
	Convey("Given a ping endpoint", t, func() {
		status, response := http.StatusOK, "pong"
		var rec recorded
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			rec.capture(r)
			w.WriteHeader(status)
			_, _ = io.WriteString(w, response)
		})
		defer server.Close()

		Convey("Pong should succeed", func() {
			So(client.Ping(context.Background()), ShouldBeNil)
			So(rec.path, ShouldEqual, "/ping")
		})

		Convey("Anything else should be a ping mismatch", func() {
			response = "pong\n"
			err := client.Ping(context.Background())
			So(errors.Is(err, ErrPingMismatch), ShouldBeTrue)

			var pingErr *PingError
			So(errors.As(err, &pingErr), ShouldBeTrue)
			So(pingErr.Body, ShouldEqual, "pong\n")
		})

		Convey("An error envelope should be an api error", func() {
			status, response = http.StatusServiceUnavailable, `{"result":"error","errors":[]}`
			So(IsStatus(client.Ping(context.Background()), http.StatusServiceUnavailable), ShouldBeTrue)
		})
	})
}

func TestLoginThenLogout(t *testing.T) {
	Convey("Given an auth endpoint", t, func() {
		var (
			mu    sync.Mutex
			paths []string
		)
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			paths = append(paths, r.URL.Path)
			mu.Unlock()

			switch r.URL.Path {
			case "/auth/login":
				writeJSON(w, http.StatusOK, `{"result":"ok","token":{"session":"sessiontoken","refresh":"refreshtoken"}}`)
			default:
				writeJSON(w, http.StatusOK, `{"result":"ok"}`)
			}
		})
		defer server.Close()

		Convey("Logging out right after logging in should leave no credentials", func() {
			_, err := client.Login(context.Background(), "myusername", "mypassword")
			So(err, ShouldBeNil)
			So(client.Credentials(), ShouldResemble, mo.Some(testCredentials))

			So(client.Logout(context.Background()), ShouldBeNil)
			So(client.Credentials().IsAbsent(), ShouldBeTrue)

			mu.Lock()
			defer mu.Unlock()
			So(paths, ShouldResemble, []string{"/auth/login", "/auth/logout"})
		})
	})
}

func TestConcurrentRefresh(t *testing.T) {
	Convey("Given a server issuing a new pair on every refresh", t, func() {
		var (
			mu     sync.Mutex
			issued int
			stale  int
		)

		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			var body refreshBody
			_ = json.NewDecoder(r.Body).Decode(&body)

			mu.Lock()
			if body.Token != fmt.Sprintf("refresh-%d", issued) {
				stale++
			}
			issued++
			n := issued
			mu.Unlock()

			writeJSON(w, http.StatusOK, fmt.Sprintf(`{"result":"ok","token":{"session":"session-%d","refresh":"refresh-%d"}}`, n, n))
		}, WithCredentials(Credentials{Session: "session-0", Refresh: "refresh-0"}))
		defer server.Close()

		Convey("Refreshes should be serialized and readers should only see whole pairs", func() {
			const workers = 16

			var (
				wg        sync.WaitGroup
				snapMu    sync.Mutex
				snapshots []Credentials
				failures  []error
			)

			for i := 0; i < workers; i++ {
				wg.Add(2)

				go func() {
					defer wg.Done()
					if _, err := client.Refresh(context.Background()); err != nil {
						snapMu.Lock()
						failures = append(failures, err)
						snapMu.Unlock()
					}
				}()

				go func() {
					defer wg.Done()
					for j := 0; j < 50; j++ {
						if creds, ok := client.Credentials().Get(); ok {
							snapMu.Lock()
							snapshots = append(snapshots, creds)
							snapMu.Unlock()
						}
					}
				}()
			}

			wg.Wait()

			mu.Lock()
			gotStale, gotIssued := stale, issued
			mu.Unlock()

			So(failures, ShouldBeEmpty)
			So(gotStale, ShouldEqual, 0)
			So(gotIssued, ShouldEqual, workers)
			So(client.Credentials(), ShouldResemble, mo.Some(Credentials{
				Session: fmt.Sprintf("session-%d", workers),
				Refresh: fmt.Sprintf("refresh-%d", workers),
			}))

			for _, creds := range snapshots {
				So(strings.TrimPrefix(creds.Session, "session-"), ShouldEqual, strings.TrimPrefix(creds.Refresh, "refresh-"))
			}
		})
	})
}
