package mangadex

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/samber/mo"
)

type (
	Chapter     = Object[ChapterAttributes]
	ChapterData = Data[Chapter]
	ChapterPage = Page[ChapterData]
)

type ChapterAttributes struct {
	Title              string            `json:"title"`
	Volume             mo.Option[string] `json:"volume"`
	Chapter            mo.Option[string] `json:"chapter"`
	TranslatedLanguage string            `json:"translatedLanguage"`
	Hash               string            `json:"hash"`
	Data               []string          `json:"data"`
	DataSaver          []string          `json:"dataSaver"`
	Uploader           uuid.UUID         `json:"uploader"`
	Version            int               `json:"version"`
	CreatedAt          time.Time         `json:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt"`
	PublishAt          time.Time         `json:"publishAt"`
}

// Label renders "Vol. 1 Ch. 2 - Title", skipping missing parts.
func (a ChapterAttributes) Label() string {
	var label string
	if volume, ok := a.Volume.Get(); ok && volume != "" {
		label = "Vol. " + volume
	}

	if chapter, ok := a.Chapter.Get(); ok && chapter != "" {
		if label != "" {
			label += " "
		}
		label += "Ch. " + chapter
	}

	switch {
	case label == "":
		return a.Title
	case a.Title == "":
		return label
	default:
		return label + " - " + a.Title
	}
}

type ChapterOrder struct {
	CreatedAt OrderType `url:"createdAt,omitempty"`
	UpdatedAt OrderType `url:"updatedAt,omitempty"`
	PublishAt OrderType `url:"publishAt,omitempty"`
	Volume    OrderType `url:"volume,omitempty"`
	Chapter   OrderType `url:"chapter,omitempty"`
}

// ChapterQuery filters GET /chapter.
type ChapterQuery struct {
	Pagination
	IDs                []uuid.UUID  `url:"ids[],omitempty"`
	Title              string       `url:"title,omitempty"`
	Groups             []uuid.UUID  `url:"groups[],omitempty"`
	Uploader           string       `url:"uploader,omitempty"`
	Manga              string       `url:"manga,omitempty"`
	Volume             string       `url:"volume,omitempty"`
	Chapter            string       `url:"chapter,omitempty"`
	TranslatedLanguage string       `url:"translatedLanguage,omitempty"`
	CreatedAtSince     time.Time    `url:"createdAtSince,omitempty" layout:"2006-01-02T15:04:05"`
	UpdatedAtSince     time.Time    `url:"updatedAtSince,omitempty" layout:"2006-01-02T15:04:05"`
	PublishAtSince     time.Time    `url:"publishAtSince,omitempty" layout:"2006-01-02T15:04:05"`
	Order              ChapterOrder `url:"order"`
}

// ChapterRequest is the body of PUT /chapter/{id}.
type ChapterRequest struct {
	Title              string   `json:"title,omitempty"`
	Volume             *string  `json:"volume,omitempty"`
	Chapter            *string  `json:"chapter,omitempty"`
	TranslatedLanguage string   `json:"translatedLanguage,omitempty"`
	Data               []string `json:"data,omitempty"`
	DataSaver          []string `json:"dataSaver,omitempty"`
	Version            int      `json:"version"`
}

func (c *Client) ListChapters(ctx context.Context, q ChapterQuery) (ChapterPage, error) {
	return Send[ChapterPage](ctx, c, OpListChapters.Endpoint().WithQuery(q))
}

func (c *Client) GetChapter(ctx context.Context, id uuid.UUID) (ChapterData, error) {
	return Call[ChapterData](ctx, c, OpGetChapter.Endpoint(id))
}

func (c *Client) UpdateChapter(ctx context.Context, id uuid.UUID, body ChapterRequest) (ChapterData, error) {
	return Call[ChapterData](ctx, c, OpUpdateChapter.Endpoint(id).WithBody(body))
}

func (c *Client) DeleteChapter(ctx context.Context, id uuid.UUID) error {
	return discard(ctx, c, OpDeleteChapter.Endpoint(id))
}

func (c *Client) MarkChapterRead(ctx context.Context, id uuid.UUID) error {
	return discard(ctx, c, OpMarkChapterRead.Endpoint(id))
}

func (c *Client) MarkChapterUnread(ctx context.Context, id uuid.UUID) error {
	return discard(ctx, c, OpMarkChapterUnread.Endpoint(id))
}
