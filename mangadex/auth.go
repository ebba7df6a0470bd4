package mangadex

import (
	"context"
	"errors"

	"github.com/samber/mo"
)

var errMissingToken = errors.New("response carries no token pair")

type loginBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshBody struct {
	Token string `json:"token"`
}

// LoginResponse is the payload of POST /auth/login.
type LoginResponse struct {
	Token Credentials `json:"token"`
}

// RefreshResponse is the payload of POST /auth/refresh.
type RefreshResponse struct {
	Token   Credentials       `json:"token"`
	Message mo.Option[string] `json:"message"`
}

// TokenStatus is the payload of GET /auth/check.
type TokenStatus struct {
	IsAuthenticated bool     `json:"isAuthenticated"`
	Roles           []string `json:"roles"`
	Permissions     []string `json:"permissions"`
}

// Login exchanges a username and password for a token pair and stores it.
// Stored credentials are left untouched when the call fails.
func (c *Client) Login(ctx context.Context, username, password string) (Credentials, error) {
	c.authMu.Lock()
	defer c.authMu.Unlock()

	resp, status, err := call[LoginResponse](ctx, c, OpLogin.Endpoint().WithBody(loginBody{
		Username: username,
		Password: password,
	}))
	if err != nil {
		return Credentials{}, err
	}

	if err := resp.Token.validate(status); err != nil {
		return Credentials{}, err
	}

	c.SetCredentials(mo.Some(resp.Token))
	return resp.Token, nil
}

// Logout ends the session and clears the stored credentials. When the
// remote call fails the credentials are kept.
func (c *Client) Logout(ctx context.Context) error {
	c.authMu.Lock()
	defer c.authMu.Unlock()

	if err := discard(ctx, c, OpLogout.Endpoint()); err != nil {
		return err
	}

	c.SetCredentials(mo.None[Credentials]())
	return nil
}

// Refresh trades the stored refresh token for a new pair, replacing both
// tokens. It fails with ErrMissingCredentials before any request when no
// refresh token is stored.
func (c *Client) Refresh(ctx context.Context) (RefreshResponse, error) {
	c.authMu.Lock()
	defer c.authMu.Unlock()

	token, ok := c.refreshToken()
	if !ok {
		return RefreshResponse{}, ErrMissingCredentials
	}

	resp, status, err := call[RefreshResponse](ctx, c, OpRefresh.Endpoint().WithBody(refreshBody{Token: token}))
	if err != nil {
		return RefreshResponse{}, err
	}

	if err := resp.Token.validate(status); err != nil {
		return RefreshResponse{}, err
	}

	c.SetCredentials(mo.Some(resp.Token))
	return resp, nil
}

// validate rejects an issued pair missing either token.
func (c Credentials) validate(status int) error {
	if c.Session == "" || c.Refresh == "" {
		return &MalformedResponseError{Status: status, Err: errMissingToken}
	}
	return nil
}

// CheckToken reports what the stored session is allowed to do.
func (c *Client) CheckToken(ctx context.Context) (TokenStatus, error) {
	return Call[TokenStatus](ctx, c, OpCheckToken.Endpoint())
}
