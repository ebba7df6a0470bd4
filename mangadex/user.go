package mangadex

import (
	"context"

	"github.com/google/uuid"
)

type (
	User     = Object[UserAttributes]
	UserData = Data[User]
	UserPage = Page[UserData]
)

type UserAttributes struct {
	Username string `json:"username"`
	Version  int    `json:"version"`
}

type UserOrder struct {
	Username OrderType `url:"username,omitempty"`
}

type UserQuery struct {
	Pagination
	IDs      []uuid.UUID `url:"ids[],omitempty"`
	Username string      `url:"username,omitempty"`
	Order    UserOrder   `url:"order"`
}

type passwordBody struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type emailBody struct {
	Email string `json:"email"`
}

func (c *Client) ListUsers(ctx context.Context, q UserQuery) (UserPage, error) {
	return Send[UserPage](ctx, c, OpListUsers.Endpoint().WithQuery(q))
}

func (c *Client) GetUser(ctx context.Context, id uuid.UUID) (UserData, error) {
	return Call[UserData](ctx, c, OpGetUser.Endpoint(id))
}

// DeleteUser requests deletion of an account. The deletion completes once
// the emailed code is passed to ApproveUserDeletion.
func (c *Client) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return discard(ctx, c, OpDeleteUser.Endpoint(id))
}

func (c *Client) ApproveUserDeletion(ctx context.Context, code string) error {
	return discard(ctx, c, OpApproveUserDeletion.Endpoint(code))
}

func (c *Client) UpdatePassword(ctx context.Context, oldPassword, newPassword string) error {
	return discard(ctx, c, OpUpdatePassword.Endpoint().WithBody(passwordBody{
		OldPassword: oldPassword,
		NewPassword: newPassword,
	}))
}

func (c *Client) UpdateEmail(ctx context.Context, email string) error {
	return discard(ctx, c, OpUpdateEmail.Endpoint().WithBody(emailBody{Email: email}))
}

// Me returns the logged user.
func (c *Client) Me(ctx context.Context) (UserData, error) {
	return Call[UserData](ctx, c, OpMe.Endpoint())
}

func (c *Client) FollowedUsers(ctx context.Context, p Pagination) (UserPage, error) {
	return Send[UserPage](ctx, c, OpFollowedUsers.Endpoint().WithQuery(p))
}

func (c *Client) FollowedManga(ctx context.Context, p Pagination) (MangaPage, error) {
	return Send[MangaPage](ctx, c, OpFollowedManga.Endpoint().WithQuery(p))
}
