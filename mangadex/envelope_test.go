package mangadex

import (
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	. "github.com/smartystreets/goconvey/convey"
)

const (
	mangaID = "32d76d19-8a05-4db0-9fc2-e0b0648fe9d0"
	tagID   = "391b0423-d847-456f-aff0-8b0cfc03066b"
)

const okManga = `{
	"result": "ok",
	"data": {
		"id": "` + mangaID + `",
		"type": "manga",
		"attributes": {
			"title": {"en": "Solo Leveling"},
			"altTitles": [{"ko": "나 혼자만 레벨업"}],
			"description": [],
			"links": null,
			"originalLanguage": "ko",
			"lastVolume": null,
			"lastChapter": "179",
			"publicationDemographic": "shounen",
			"status": "completed",
			"year": 2018,
			"contentRating": "safe",
			"tags": [{
				"id": "` + tagID + `",
				"type": "tag",
				"attributes": {"name": {"en": "Action"}, "description": [], "group": "genre", "version": 1}
			}],
			"version": 3,
			"createdAt": "2019-08-25T10:51:55+00:00",
			"updatedAt": "2021-05-24T18:50:55+00:00"
		}
	},
	"relationships": [
		{"id": "a1b2c3d4-0000-4000-8000-000000000001", "type": "author"},
		{"id": "a1b2c3d4-0000-4000-8000-000000000002", "type": "artist"},
		{"id": "a1b2c3d4-0000-4000-8000-000000000003", "type": "cover_art"}
	]
}`

const errorEnvelope = `{"result":"error","errors":[{"id":"5e50fc7b-e185-45b1-a692-58e8091b22d2","status":404,"title":"Not found","detail":"Manga could not be found"}]}`

func TestResult(t *testing.T) {
	Convey("Given a successful envelope", t, func() {
		var result Result[MangaData]
		err := decode([]byte(okManga), http.StatusOK, &result)
		So(err, ShouldBeNil)

		Convey("The payload should be decoded from the fields next to the tag", func() {
			manga, err := result.Get()
			So(err, ShouldBeNil)
			So(result.IsOk(), ShouldBeTrue)
			So(result.Err(), ShouldBeNil)

			So(manga.Data.ID, ShouldEqual, uuid.MustParse(mangaID))
			So(manga.Data.Type, ShouldEqual, TypeManga)

			attrs := manga.Data.Attributes
			So(attrs.Title.Preferred(), ShouldEqual, "Solo Leveling")
			So(attrs.Description, ShouldBeEmpty)
			So(attrs.LastVolume.IsAbsent(), ShouldBeTrue)
			So(attrs.LastChapter.OrEmpty(), ShouldEqual, "179")
			So(attrs.Status.OrEmpty(), ShouldEqual, StatusCompleted)
			So(attrs.Year.OrEmpty(), ShouldEqual, 2018)
			So(attrs.Tags, ShouldHaveLength, 1)
			So(attrs.Tags[0].Attributes.Group, ShouldEqual, "genre")
			So(attrs.CreatedAt.Year(), ShouldEqual, 2019)
		})

		Convey("Relationships should be filterable by type", func() {
			manga, _ := result.Get()
			So(manga.Related(TypeCoverArt), ShouldResemble, []uuid.UUID{uuid.MustParse("a1b2c3d4-0000-4000-8000-000000000003")})
			So(manga.Related(TypeUser), ShouldBeEmpty)
		})
	})

	Convey("Given an error envelope", t, func() {
		var result Result[MangaData]
		So(decode([]byte(errorEnvelope), http.StatusNotFound, &result), ShouldBeNil)

		Convey("It should carry the errors and the response status", func() {
			So(result.IsOk(), ShouldBeFalse)
			So(result.Value().IsAbsent(), ShouldBeTrue)

			_, err := result.Get()
			var apiErr *APIError
			So(errors.As(err, &apiErr), ShouldBeTrue)
			So(apiErr.Status, ShouldEqual, http.StatusNotFound)
			So(apiErr.Errors[0].Title.OrEmpty(), ShouldEqual, "Not found")
			So(apiErr.Error(), ShouldContainSubstring, "Manga could not be found")
		})
	})

	Convey("Given an error envelope without errors", t, func() {
		var result Result[NoData]
		So(decode([]byte(`{"result":"error"}`), http.StatusBadRequest, &result), ShouldBeNil)

		Convey("The error list should be empty, not nil", func() {
			So(result.Err(), ShouldNotBeNil)
			So(result.Err().Errors, ShouldNotBeNil)
			So(result.Err().Errors, ShouldBeEmpty)
		})
	})

	Convey("Given malformed bodies", t, func() {
		for name, body := range map[string]string{
			"unknown tag": `{"result":"maybe"}`,
			"absent tag":  `{"data":{}}`,
			"not json":    `<html>502 Bad Gateway</html>`,
			"empty":       ``,
		} {
			Convey("A body with "+name+" should be malformed", func() {
				var result Result[NoData]
				err := decode([]byte(body), http.StatusBadGateway, &result)

				var malformed *MalformedResponseError
				So(errors.As(err, &malformed), ShouldBeTrue)
				So(malformed.Status, ShouldEqual, http.StatusBadGateway)
			})
		}

		Convey("The unknown tag should be named in the error", func() {
			var result Result[NoData]
			err := decode([]byte(`{"result":"maybe"}`), http.StatusOK, &result)
			So(errors.Is(err, errUnknownTag), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, `"maybe"`)
		})

		Convey("An absent tag should be reported as such", func() {
			var result Result[NoData]
			err := decode([]byte(`{}`), http.StatusOK, &result)
			So(errors.Is(err, errMissingTag), ShouldBeTrue)
		})
	})
}

func TestPage(t *testing.T) {
	Convey("Given a page mixing successes and failures", t, func() {
		body := `{
			"results": [` + okManga + `, ` + errorEnvelope + `, ` + okManga + `],
			"limit": 3,
			"offset": 0,
			"total": 10
		}`

		var page MangaPage
		So(decode([]byte(body), http.StatusOK, &page), ShouldBeNil)

		Convey("Each element should be decoded independently", func() {
			So(page.Results, ShouldHaveLength, 3)
			So(page.Results[0].IsOk(), ShouldBeTrue)
			So(page.Results[1].IsOk(), ShouldBeFalse)
			So(page.Results[2].IsOk(), ShouldBeTrue)

			So(page.Values(), ShouldHaveLength, 2)
			So(page.Failures(), ShouldHaveLength, 1)
			So(page.Failures()[0].Status, ShouldEqual, 0)
		})

		Convey("Pagination should be kept", func() {
			So(page.Limit, ShouldEqual, 3)
			So(page.Total, ShouldEqual, 10)
			So(page.HasNext(), ShouldBeTrue)
		})
	})

	Convey("Given an element with an unknown tag", t, func() {
		body := `{"results":[` + okManga + `,{"result":"unknown"}],"limit":2,"offset":0,"total":2}`

		Convey("The whole page should be malformed", func() {
			var page MangaPage
			var malformed *MalformedResponseError
			So(errors.As(decode([]byte(body), http.StatusOK, &page), &malformed), ShouldBeTrue)
		})
	})

	Convey("Given an error envelope in place of a page", t, func() {
		Convey("It should be returned as an api error with the status", func() {
			var page MangaPage
			err := decode([]byte(errorEnvelope), http.StatusNotFound, &page)

			var apiErr *APIError
			So(errors.As(err, &apiErr), ShouldBeTrue)
			So(apiErr.Status, ShouldEqual, http.StatusNotFound)
			So(IsStatus(err, http.StatusNotFound), ShouldBeTrue)
		})
	})

	Convey("Given a failure status without an envelope", t, func() {
		Convey("The page should be malformed, not empty", func() {
			var page MangaPage
			err := decode([]byte(`{"message":"rate limited"}`), http.StatusTooManyRequests, &page)

			var malformed *MalformedResponseError
			So(errors.As(err, &malformed), ShouldBeTrue)
			So(malformed.Status, ShouldEqual, http.StatusTooManyRequests)
			So(page.Results, ShouldBeEmpty)
		})
	})

	Convey("Given top level tags next to the page fields", t, func() {
		Convey("An ok tag should be accepted", func() {
			var page MangaPage
			body := `{"result":"ok","response":"collection","results":[` + okManga + `],"limit":1,"offset":0,"total":1}`
			So(decode([]byte(body), http.StatusOK, &page), ShouldBeNil)
			So(page.Values(), ShouldHaveLength, 1)
		})

		Convey("An unknown tag should be rejected", func() {
			var page MangaPage
			body := `{"result":"banana","results":[],"limit":0,"offset":0,"total":0}`
			err := decode([]byte(body), http.StatusOK, &page)

			var malformed *MalformedResponseError
			So(errors.As(err, &malformed), ShouldBeTrue)
			So(errors.Is(err, errUnknownTag), ShouldBeTrue)
		})
	})
}

func TestList(t *testing.T) {
	Convey("Given a bare array of envelopes", t, func() {
		body := `[
			{"result":"ok","data":{"id":"` + tagID + `","type":"tag","attributes":{"name":{"en":"Action"},"description":[],"group":"genre","version":1}},"relationships":[]},
			{"result":"error","errors":[]}
		]`

		var list List[TagData]
		So(decode([]byte(body), http.StatusOK, &list), ShouldBeNil)

		Convey("Elements should be decoded independently", func() {
			So(list, ShouldHaveLength, 2)
			So(list.Values()[0].Data.Attributes.Name.Preferred("en"), ShouldEqual, "Action")
			So(list.Failures(), ShouldHaveLength, 1)
		})
	})

	Convey("Given an error envelope in place of an array", t, func() {
		var list List[TagData]
		err := decode([]byte(`{"result":"error","errors":[]}`), http.StatusServiceUnavailable, &list)

		So(IsStatus(err, http.StatusServiceUnavailable), ShouldBeTrue)
	})

	Convey("Given a failure status with a plain text body", t, func() {
		var list List[TagData]
		err := decode([]byte(`Bad Gateway`), http.StatusBadGateway, &list)

		var malformed *MalformedResponseError
		So(errors.As(err, &malformed), ShouldBeTrue)
		So(malformed.Status, ShouldEqual, http.StatusBadGateway)
	})
}

func TestLocalizedString(t *testing.T) {
	Convey("Given localized strings", t, func() {
		l := LocalizedString{"ja": "ソロ", "en": "Solo", "fr": "Seul"}

		Convey("Preferred should follow the requested order", func() {
			So(l.Preferred("fr", "en"), ShouldEqual, "Seul")
			So(l.Preferred("de"), ShouldEqual, "Solo")
		})

		Convey("Preferred should fall back to any language", func() {
			So(LocalizedString{"ja": "ソロ"}.Preferred("de"), ShouldEqual, "ソロ")
			So(LocalizedString{}.Preferred(), ShouldBeEmpty)
		})

		Convey("Get should report absent languages", func() {
			So(l.Get("en").OrEmpty(), ShouldEqual, "Solo")
			So(l.Get("de").IsAbsent(), ShouldBeTrue)
		})
	})
}
