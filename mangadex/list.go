package mangadex

import (
	"context"

	"github.com/google/uuid"
)

type (
	CustomList     = Object[CustomListAttributes]
	CustomListData = Data[CustomList]
	CustomListPage = Page[CustomListData]
)

type CustomListAttributes struct {
	Name       string         `json:"name"`
	Visibility ListVisibility `json:"visibility"`
	Owner      User           `json:"owner"`
	Version    int            `json:"version"`
}

type CustomListRequest struct {
	Name       string         `json:"name"`
	Visibility ListVisibility `json:"visibility,omitempty"`
	Manga      []uuid.UUID    `json:"manga,omitempty"`
	Version    int            `json:"version"`
}

func (c *Client) CreateList(ctx context.Context, body CustomListRequest) (CustomListData, error) {
	return Call[CustomListData](ctx, c, OpCreateList.Endpoint().WithBody(body))
}

func (c *Client) GetList(ctx context.Context, id uuid.UUID) (CustomListData, error) {
	return Call[CustomListData](ctx, c, OpGetList.Endpoint(id))
}

func (c *Client) UpdateList(ctx context.Context, id uuid.UUID, body CustomListRequest) (CustomListData, error) {
	return Call[CustomListData](ctx, c, OpUpdateList.Endpoint(id).WithBody(body))
}

func (c *Client) DeleteList(ctx context.Context, id uuid.UUID) error {
	return discard(ctx, c, OpDeleteList.Endpoint(id))
}

// MyLists returns the lists of the logged user.
func (c *Client) MyLists(ctx context.Context, p Pagination) (CustomListPage, error) {
	return Send[CustomListPage](ctx, c, OpMyLists.Endpoint().WithQuery(p))
}

func (c *Client) UserLists(ctx context.Context, userID uuid.UUID, p Pagination) (CustomListPage, error) {
	return Send[CustomListPage](ctx, c, OpUserLists.Endpoint(userID).WithQuery(p))
}
