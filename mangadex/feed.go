package mangadex

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type FeedOrder struct {
	Volume  OrderType `url:"volume,omitempty"`
	Chapter OrderType `url:"chapter,omitempty"`
}

// FeedQuery filters the chapter feeds of a manga, a list or the followed manga.
type FeedQuery struct {
	Pagination
	TranslatedLanguage []string  `url:"translatedLanguage[],omitempty"`
	CreatedAtSince     time.Time `url:"createdAtSince,omitempty" layout:"2006-01-02T15:04:05"`
	UpdatedAtSince     time.Time `url:"updatedAtSince,omitempty" layout:"2006-01-02T15:04:05"`
	PublishAtSince     time.Time `url:"publishAtSince,omitempty" layout:"2006-01-02T15:04:05"`
	Order              FeedOrder `url:"order"`
}

func (c *Client) MangaFeed(ctx context.Context, id uuid.UUID, q FeedQuery) (ChapterPage, error) {
	return Send[ChapterPage](ctx, c, OpMangaFeed.Endpoint(id).WithQuery(q))
}

func (c *Client) ListFeed(ctx context.Context, id uuid.UUID, q FeedQuery) (ChapterPage, error) {
	return Send[ChapterPage](ctx, c, OpListFeed.Endpoint(id).WithQuery(q))
}

// FollowedMangaFeed returns new chapters of the manga the logged user follows.
func (c *Client) FollowedMangaFeed(ctx context.Context, q FeedQuery) (ChapterPage, error) {
	return Send[ChapterPage](ctx, c, OpFollowedMangaFeed.Endpoint().WithQuery(q))
}
