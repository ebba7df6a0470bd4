package inline

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dexcli/dex/mangadex"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

type (
	MangaPicker    func([]mangadex.MangaData) mo.Option[mangadex.MangaData]
	ChaptersFilter func([]mangadex.ChapterData) ([]mangadex.ChapterData, error)
)

type Options struct {
	Out    io.Writer
	Client *mangadex.Client
	Json   bool
	Query  string

	// Limit caps the number of search results, zero keeps the API default.
	Limit         int
	ContentRating []mangadex.ContentRating
	// Languages filter chapters and pick localized titles, in order of preference.
	Languages []string

	MangaPicker    mo.Option[MangaPicker]
	ChaptersFilter mo.Option[ChaptersFilter]

	// Pages resolves the image URLs of every selected chapter.
	Pages     bool
	DataSaver bool
}

func ParseMangaPicker(kind, value string) (MangaPicker, error) {
	switch kind {
	case "first":
		return func(mangas []mangadex.MangaData) mo.Option[mangadex.MangaData] {
			if len(mangas) == 0 {
				return mo.None[mangadex.MangaData]()
			}
			return mo.Some(mangas[0])
		}, nil
	case "last":
		return func(mangas []mangadex.MangaData) mo.Option[mangadex.MangaData] {
			if len(mangas) == 0 {
				return mo.None[mangadex.MangaData]()
			}
			return mo.Some(mangas[len(mangas)-1])
		}, nil
	case "exact":
		return func(mangas []mangadex.MangaData) mo.Option[mangadex.MangaData] {
			found, ok := lo.Find(mangas, func(m mangadex.MangaData) bool {
				attrs := m.Data.Attributes
				titles := append([]mangadex.LocalizedString{attrs.Title}, attrs.AltTitles...)
				return lo.SomeBy(titles, func(t mangadex.LocalizedString) bool {
					return lo.SomeBy(lo.Values(t), func(s string) bool {
						return strings.EqualFold(s, value)
					})
				})
			})
			if !ok {
				return mo.None[mangadex.MangaData]()
			}
			return mo.Some(found)
		}, nil
	default:
		idx, err := strconv.ParseUint(kind, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("unknown manga picker: %s", kind)
		}
		return func(mangas []mangadex.MangaData) mo.Option[mangadex.MangaData] {
			if len(mangas) == 0 {
				return mo.None[mangadex.MangaData]()
			}
			return mo.Some(mangas[min(int(idx), len(mangas)-1)])
		}, nil
	}
}

// ParseChaptersFilter understands
//
//	first, last, all
//	5       chapter by index
//	1-5     chapters by index range, inclusive
//	@text@  chapters whose label contains text
func ParseChaptersFilter(description string) (ChaptersFilter, error) {
	switch description {
	case "first":
		return func(chapters []mangadex.ChapterData) ([]mangadex.ChapterData, error) {
			if len(chapters) == 0 {
				return chapters, nil
			}
			return chapters[:1], nil
		}, nil
	case "last":
		return func(chapters []mangadex.ChapterData) ([]mangadex.ChapterData, error) {
			if len(chapters) == 0 {
				return chapters, nil
			}
			return chapters[len(chapters)-1:], nil
		}, nil
	case "all":
		return func(chapters []mangadex.ChapterData) ([]mangadex.ChapterData, error) {
			return chapters, nil
		}, nil
	}

	if from, to, found := strings.Cut(description, "-"); found {
		start, err1 := strconv.ParseUint(from, 10, 16)
		end, err2 := strconv.ParseUint(to, 10, 16)
		if err1 == nil && err2 == nil {
			return func(chapters []mangadex.ChapterData) ([]mangadex.ChapterData, error) {
				lower := min(int(start), len(chapters))
				upper := min(int(end)+1, len(chapters))
				if lower > upper {
					return []mangadex.ChapterData{}, nil
				}
				return chapters[lower:upper], nil
			}, nil
		}
	}

	if len(description) > 1 && strings.HasPrefix(description, "@") && strings.HasSuffix(description, "@") {
		sub := strings.ToLower(description[1 : len(description)-1])
		return func(chapters []mangadex.ChapterData) ([]mangadex.ChapterData, error) {
			return lo.Filter(chapters, func(c mangadex.ChapterData, _ int) bool {
				return strings.Contains(strings.ToLower(c.Data.Attributes.Label()), sub)
			}), nil
		}, nil
	}

	if idx, err := strconv.ParseUint(description, 10, 16); err == nil {
		return func(chapters []mangadex.ChapterData) ([]mangadex.ChapterData, error) {
			if uint64(len(chapters)) <= idx {
				return []mangadex.ChapterData{}, nil
			}
			return chapters[idx : idx+1], nil
		}, nil
	}

	return nil, fmt.Errorf("invalid chapters filter: %s", description)
}
