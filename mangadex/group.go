package mangadex

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/samber/mo"
)

type (
	ScanlationGroup     = Object[ScanlationGroupAttributes]
	ScanlationGroupData = Data[ScanlationGroup]
	ScanlationGroupPage = Page[ScanlationGroupData]
)

type ScanlationGroupAttributes struct {
	Name         string            `json:"name"`
	Leader       mo.Option[User]   `json:"leader"`
	Website      mo.Option[string] `json:"website"`
	IRCServer    mo.Option[string] `json:"ircServer"`
	IRCChannel   mo.Option[string] `json:"ircChannel"`
	Discord      mo.Option[string] `json:"discord"`
	ContactEmail mo.Option[string] `json:"contactEmail"`
	Description  mo.Option[string] `json:"description"`
	Locked       bool              `json:"locked"`
	Version      int               `json:"version"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

type GroupQuery struct {
	Pagination
	IDs  []uuid.UUID `url:"ids[],omitempty"`
	Name string      `url:"name,omitempty"`
}

type GroupRequest struct {
	Name    string      `json:"name"`
	Leader  *uuid.UUID  `json:"leader,omitempty"`
	Members []uuid.UUID `json:"members,omitempty"`
	Version int         `json:"version"`
}

func (c *Client) ListGroups(ctx context.Context, q GroupQuery) (ScanlationGroupPage, error) {
	return Send[ScanlationGroupPage](ctx, c, OpListGroups.Endpoint().WithQuery(q))
}

func (c *Client) CreateGroup(ctx context.Context, body GroupRequest) (ScanlationGroupData, error) {
	return Call[ScanlationGroupData](ctx, c, OpCreateGroup.Endpoint().WithBody(body))
}

func (c *Client) GetGroup(ctx context.Context, id uuid.UUID) (ScanlationGroupData, error) {
	return Call[ScanlationGroupData](ctx, c, OpGetGroup.Endpoint(id))
}

func (c *Client) UpdateGroup(ctx context.Context, id uuid.UUID, body GroupRequest) (ScanlationGroupData, error) {
	return Call[ScanlationGroupData](ctx, c, OpUpdateGroup.Endpoint(id).WithBody(body))
}

func (c *Client) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	return discard(ctx, c, OpDeleteGroup.Endpoint(id))
}

func (c *Client) FollowGroup(ctx context.Context, id uuid.UUID) error {
	return discard(ctx, c, OpFollowGroup.Endpoint(id))
}

func (c *Client) UnfollowGroup(ctx context.Context, id uuid.UUID) error {
	return discard(ctx, c, OpUnfollowGroup.Endpoint(id))
}

func (c *Client) FollowedGroups(ctx context.Context, p Pagination) (ScanlationGroupPage, error) {
	return Send[ScanlationGroupPage](ctx, c, OpFollowedGroups.Endpoint().WithQuery(p))
}
