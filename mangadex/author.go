package mangadex

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/samber/mo"
)

type (
	Author     = Object[AuthorAttributes]
	AuthorData = Data[Author]
	AuthorPage = Page[AuthorData]
)

type AuthorAttributes struct {
	Name      string            `json:"name"`
	ImageURL  mo.Option[string] `json:"imageUrl"`
	Version   int               `json:"version"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

type AuthorOrder struct {
	Name OrderType `url:"name,omitempty"`
}

type AuthorQuery struct {
	Pagination
	IDs   []uuid.UUID `url:"ids[],omitempty"`
	Name  string      `url:"name,omitempty"`
	Order AuthorOrder `url:"order"`
}

type AuthorRequest struct {
	Name    string `json:"name"`
	Version int    `json:"version"`
}

func (c *Client) ListAuthors(ctx context.Context, q AuthorQuery) (AuthorPage, error) {
	return Send[AuthorPage](ctx, c, OpListAuthors.Endpoint().WithQuery(q))
}

func (c *Client) CreateAuthor(ctx context.Context, body AuthorRequest) (AuthorData, error) {
	return Call[AuthorData](ctx, c, OpCreateAuthor.Endpoint().WithBody(body))
}

func (c *Client) GetAuthor(ctx context.Context, id uuid.UUID) (AuthorData, error) {
	return Call[AuthorData](ctx, c, OpGetAuthor.Endpoint(id))
}

func (c *Client) UpdateAuthor(ctx context.Context, id uuid.UUID, body AuthorRequest) (AuthorData, error) {
	return Call[AuthorData](ctx, c, OpUpdateAuthor.Endpoint(id).WithBody(body))
}

func (c *Client) DeleteAuthor(ctx context.Context, id uuid.UUID) error {
	return discard(ctx, c, OpDeleteAuthor.Endpoint(id))
}
