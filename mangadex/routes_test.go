package mangadex

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAuthenticatedRoutes(t *testing.T) {
	Convey("Given a client without credentials", t, func() {
		var rec recorded
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			rec.capture(r)
			writeJSON(w, http.StatusOK, `{"result":"ok"}`)
		})
		defer server.Close()

		for op, route := range Routes {
			if !route.Auth {
				continue
			}

			Convey(string(op)+" should fail without a request", func() {
				params := lo.Map(route.Placeholders(), func(string, int) any { return uuid.New() })
				_, err := Send[Result[NoData]](context.Background(), client, route.With(params...))

				So(errors.Is(err, ErrMissingCredentials), ShouldBeTrue)
				So(rec.calls, ShouldEqual, 0)
			})
		}

		Convey("Logout should fail without a request", func() {
			So(errors.Is(client.Logout(context.Background()), ErrMissingCredentials), ShouldBeTrue)
			So(rec.calls, ShouldEqual, 0)
		})

		Convey("Typed calls should fail without a request", func() {
			_, err := client.Me(context.Background())
			So(errors.Is(err, ErrMissingCredentials), ShouldBeTrue)

			err = client.FollowManga(context.Background(), uuid.New())
			So(errors.Is(err, ErrMissingCredentials), ShouldBeTrue)
			So(rec.calls, ShouldEqual, 0)
		})

		Convey("Public routes should be sent without an authorization header", func() {
			_, err := Send[Result[NoData]](context.Background(), client, OpGetManga.Endpoint(uuid.New()))
			So(err, ShouldBeNil)
			So(rec.calls, ShouldEqual, 1)
			So(rec.header.Get("Authorization"), ShouldBeEmpty)
		})
	})

	Convey("Given a logged in client", t, func() {
		var rec recorded
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			rec.capture(r)
			writeJSON(w, http.StatusOK, `{"result":"ok"}`)
		}, WithCredentials(testCredentials))
		defer server.Close()

		Convey("Public routes should carry the bearer token too", func() {
			_, err := Send[Result[NoData]](context.Background(), client, OpGetManga.Endpoint(uuid.New()))
			So(err, ShouldBeNil)
			So(rec.header.Get("Authorization"), ShouldEqual, "Bearer sessiontoken")
		})
	})
}

func TestRoutes(t *testing.T) {
	Convey("Given the catalog", t, func() {
		Convey("Every route should have a method and an absolute path", func() {
			for op, route := range Routes {
				So(route.Method, ShouldNotBeEmpty)
				So(strings.HasPrefix(route.Path, "/"), ShouldBeTrue)
				So(string(op), ShouldNotBeEmpty)
			}
		})

		Convey("Paths should be expanded in order", func() {
			manga, list := uuid.MustParse(mangaID), uuid.MustParse(tagID)
			e := OpAddMangaToList.Endpoint(manga, list)

			path, err := e.Route.expand(e.Params)
			So(err, ShouldBeNil)
			So(path, ShouldEqual, "/manga/"+mangaID+"/list/"+tagID)
			So(Routes[OpAddMangaToList].Placeholders(), ShouldResemble, []string{"id", "listId"})
		})

		Convey("Parameter count mismatches should be rejected", func() {
			_, err := Routes[OpGetManga].expand(nil)
			So(err, ShouldNotBeNil)

			_, err = Routes[OpPing].expand([]string{"extra"})
			So(err, ShouldNotBeNil)
		})

		Convey("Unknown operations should fail to expand", func() {
			e := Operation("nope").Endpoint()
			_, err := e.Route.expand(e.Params)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestDispatch(t *testing.T) {
	Convey("Given a client rooted below a path", t, func() {
		var rec recorded
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			rec.capture(r)
			writeJSON(w, http.StatusOK, `{"results":[],"limit":5,"offset":10,"total":0}`)
		})
		defer server.Close()

		prefixed, err := New(server.URL + "/api")
		So(err, ShouldBeNil)

		Convey("The path should be resolved against the base", func() {
			_, err := prefixed.ListAuthors(context.Background(), AuthorQuery{})
			So(err, ShouldBeNil)
			So(rec.path, ShouldEqual, "/api/author")
		})

		Convey("Queries should use repeated keys and bracketed orders", func() {
			year := 2018
			since := time.Date(2021, 5, 1, 12, 30, 0, 0, time.UTC)
			q := MangaQuery{
				Pagination:     Pagination{Limit: 5, Offset: 10},
				Title:          "solo",
				Year:           &year,
				IDs:            []uuid.UUID{uuid.MustParse(mangaID), uuid.MustParse(tagID)},
				ContentRating:  []ContentRating{RatingSafe, RatingSuggestive},
				Status:         []MangaStatus{StatusOngoing},
				CreatedAtSince: since,
				Order:          MangaOrder{CreatedAt: Desc},
			}

			page, err := client.ListManga(context.Background(), q)
			So(err, ShouldBeNil)
			So(page.Offset, ShouldEqual, 10)

			So(rec.method, ShouldEqual, http.MethodGet)
			So(rec.query.Get("limit"), ShouldEqual, "5")
			So(rec.query.Get("offset"), ShouldEqual, "10")
			So(rec.query.Get("title"), ShouldEqual, "solo")
			So(rec.query.Get("year"), ShouldEqual, "2018")
			So(rec.query["ids[]"], ShouldResemble, []string{mangaID, tagID})
			So(rec.query["contentRating[]"], ShouldResemble, []string{"safe", "suggestive"})
			So(rec.query["status[]"], ShouldResemble, []string{"ongoing"})
			So(rec.query.Get("createdAtSince"), ShouldEqual, "2021-05-01T12:30:00")
			So(rec.query.Get("order[createdAt]"), ShouldEqual, "desc")
			So(rec.query.Has("order[updatedAt]"), ShouldBeFalse)
			So(rec.query.Has("authors[]"), ShouldBeFalse)
			So(rec.query.Has("updatedAtSince"), ShouldBeFalse)
		})

		Convey("An empty query should send no parameters", func() {
			_, err := client.ListManga(context.Background(), MangaQuery{})
			So(err, ShouldBeNil)
			So(rec.query, ShouldBeEmpty)
		})

		Convey("An endpoint with a query and a body should be rejected", func() {
			e := OpListManga.Endpoint().WithQuery(MangaQuery{}).WithBody(struct{}{})
			_, err := Send[MangaPage](context.Background(), client, e)
			So(errors.Is(err, errQueryAndBody), ShouldBeTrue)
			So(rec.calls, ShouldEqual, 0)
		})
	})

	Convey("Given an unreachable server", t, func() {
		client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {})
		server.Close()

		Convey("Failures should be transport errors", func() {
			_, err := client.RandomManga(context.Background())

			var transport *TransportError
			So(errors.As(err, &transport), ShouldBeTrue)
			So(transport.Method, ShouldEqual, http.MethodGet)
			So(transport.URL, ShouldEndWith, "/manga/random")
		})
	})

	Convey("Given invalid base urls", t, func() {
		_, err := New("not a url")
		So(err, ShouldNotBeNil)

		c, err := New("")
		So(err, ShouldBeNil)
		So(c.BaseURL(), ShouldEqual, "https://api.mangadex.org/")
		So(c.Credentials(), ShouldResemble, mo.None[Credentials]())
	})
}
