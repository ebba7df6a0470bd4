package mangadex

import "context"

type AccountRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type recoveryBody struct {
	NewPassword string `json:"newPassword"`
}

// CreateAccount registers a new user. The account stays inactive until
// ActivateAccount is called with the emailed code.
func (c *Client) CreateAccount(ctx context.Context, body AccountRequest) (UserData, error) {
	return Call[UserData](ctx, c, OpCreateAccount.Endpoint().WithBody(body))
}

func (c *Client) ActivateAccount(ctx context.Context, code string) error {
	return discard(ctx, c, OpActivateAccount.Endpoint(code))
}

func (c *Client) ResendActivation(ctx context.Context, email string) error {
	return discard(ctx, c, OpResendActivation.Endpoint().WithBody(emailBody{Email: email}))
}

func (c *Client) RecoverAccount(ctx context.Context, email string) error {
	return discard(ctx, c, OpRecoverAccount.Endpoint().WithBody(emailBody{Email: email}))
}

func (c *Client) CompleteRecovery(ctx context.Context, code, newPassword string) error {
	return discard(ctx, c, OpCompleteRecovery.Endpoint(code).WithBody(recoveryBody{NewPassword: newPassword}))
}
