package mangadex

import "context"

const pong = "pong"

// Ping checks that the API is reachable. Any answer other than "pong" is
// reported as a *PingError.
func (c *Client) Ping(ctx context.Context) error {
	body, status, err := c.do(ctx, OpPing.Endpoint())
	if err != nil {
		return err
	}

	if string(body) == pong {
		return nil
	}

	// error envelopes are surfaced as api errors
	if status >= 400 {
		var result Result[NoData]
		if decode(body, status, &result) == nil && !result.IsOk() {
			return result.Err()
		}
	}

	return &PingError{Body: excerpt(body)}
}
