package inline

import (
	"encoding/json"

	"github.com/dexcli/dex/mangadex"
	"github.com/dexcli/dex/open"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

type Chapter struct {
	ID uuid.UUID `json:"id"`
	// Label is "Vol. 1 Ch. 2 - Title" with missing parts skipped.
	Label    string `json:"label"`
	Volume   string `json:"volume,omitempty"`
	Chapter  string `json:"chapter,omitempty"`
	Language string `json:"language"`
	URL      string `json:"url"`
	// Pages are only present when page resolution was requested.
	Pages []string `json:"pages,omitempty"`
}

type Manga struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Status        string     `json:"status,omitempty"`
	ContentRating string     `json:"contentRating,omitempty"`
	Year          int        `json:"year,omitempty"`
	Tags          []string   `json:"tags"`
	URL           string     `json:"url"`
	Chapters      []*Chapter `json:"chapters"`
}

type Output struct {
	Query  string   `json:"query"`
	Result []*Manga `json:"result"`
}

func newManga(m mangadex.MangaData, langs []string) *Manga {
	attrs := m.Data.Attributes
	return &Manga{
		ID:            m.Data.ID,
		Title:         attrs.Title.Preferred(langs...),
		Description:   attrs.Description.Preferred(langs...),
		Status:        string(attrs.Status.OrEmpty()),
		ContentRating: string(attrs.ContentRating.OrEmpty()),
		Year:          attrs.Year.OrEmpty(),
		Tags: lo.Map(attrs.Tags, func(t mangadex.Tag, _ int) string {
			return t.Attributes.Name.Preferred(langs...)
		}),
		URL:      open.MangaURL(m.Data.ID),
		Chapters: []*Chapter{},
	}
}

func newChapter(c mangadex.ChapterData) *Chapter {
	attrs := c.Data.Attributes
	return &Chapter{
		ID:       c.Data.ID,
		Label:    attrs.Label(),
		Volume:   attrs.Volume.OrEmpty(),
		Chapter:  attrs.Chapter.OrEmpty(),
		Language: attrs.TranslatedLanguage,
		URL:      open.ChapterURL(c.Data.ID),
	}
}

func asJson(mangas []*Manga, query string) ([]byte, error) {
	if mangas == nil {
		mangas = []*Manga{}
	}

	return json.Marshal(&Output{
		Query:  query,
		Result: mangas,
	})
}
