package mangadex

import (
	"context"
	"fmt"
	"time"

	"github.com/dexcli/dex/constant"
	"github.com/google/uuid"
	"github.com/samber/mo"
)

type (
	Cover     = Object[CoverAttributes]
	CoverData = Data[Cover]
	CoverPage = Page[CoverData]
)

type CoverAttributes struct {
	Volume      mo.Option[string] `json:"volume"`
	FileName    string            `json:"fileName"`
	Description mo.Option[string] `json:"description"`
	Version     int               `json:"version"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// URL returns the full size image of the cover on the uploads host.
func (a CoverAttributes) URL(mangaID uuid.UUID) string {
	return fmt.Sprintf("%s/covers/%s/%s", constant.UploadsURL, mangaID, a.FileName)
}

// Thumbnail returns a downscaled image, width is 256 or 512.
func (a CoverAttributes) Thumbnail(mangaID uuid.UUID, width int) string {
	return fmt.Sprintf("%s.%d.jpg", a.URL(mangaID), width)
}

type CoverOrder struct {
	CreatedAt OrderType `url:"createdAt,omitempty"`
	UpdatedAt OrderType `url:"updatedAt,omitempty"`
	Volume    OrderType `url:"volume,omitempty"`
}

type CoverQuery struct {
	Pagination
	Manga     []uuid.UUID `url:"manga[],omitempty"`
	IDs       []uuid.UUID `url:"ids[],omitempty"`
	Uploaders []uuid.UUID `url:"uploaders[],omitempty"`
	Order     CoverOrder  `url:"order"`
}

type CoverRequest struct {
	Volume      *string `json:"volume"`
	Description *string `json:"description,omitempty"`
	Version     int     `json:"version"`
}

func (c *Client) ListCovers(ctx context.Context, q CoverQuery) (CoverPage, error) {
	return Send[CoverPage](ctx, c, OpListCovers.Endpoint().WithQuery(q))
}

func (c *Client) GetCover(ctx context.Context, id uuid.UUID) (CoverData, error) {
	return Call[CoverData](ctx, c, OpGetCover.Endpoint(id))
}

func (c *Client) UpdateCover(ctx context.Context, id uuid.UUID, body CoverRequest) (CoverData, error) {
	return Call[CoverData](ctx, c, OpUpdateCover.Endpoint(id).WithBody(body))
}

func (c *Client) DeleteCover(ctx context.Context, id uuid.UUID) error {
	return discard(ctx, c, OpDeleteCover.Endpoint(id))
}
