package mangadex

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dexcli/dex/log"
	"github.com/google/go-querystring/query"
)

var errQueryAndBody = errors.New("endpoint carries both a query and a body")

// Send performs e once and decodes the response into R.
// R is Result[T], Page[T], List[T] or a plain struct for raw responses.
func Send[R any](ctx context.Context, c *Client, e Endpoint) (R, error) {
	var out R

	body, status, err := c.do(ctx, e)
	if err != nil {
		return out, err
	}

	if err := decode(body, status, &out); err != nil {
		return out, err
	}

	return out, nil
}

// Call performs e and unwraps a single envelope into its payload.
func Call[T any](ctx context.Context, c *Client, e Endpoint) (T, error) {
	value, _, err := call[T](ctx, c, e)
	return value, err
}

// call is Call that also reports the response status.
func call[T any](ctx context.Context, c *Client, e Endpoint) (T, int, error) {
	var zero T

	body, status, err := c.do(ctx, e)
	if err != nil {
		return zero, status, err
	}

	var result Result[T]
	if err := decode(body, status, &result); err != nil {
		return zero, status, err
	}

	value, err := result.Get()
	return value, status, err
}

func (c *Client) do(ctx context.Context, e Endpoint) ([]byte, int, error) {
	req, err := c.newRequest(ctx, e)
	if err != nil {
		return nil, 0, err
	}

	entry := log.WithFields(log.Fields{
		"method": req.Method,
		"path":   req.URL.Path,
	})

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		entry.WithError(err).Debug("request failed")
		return nil, 0, &TransportError{Method: req.Method, URL: req.URL.String(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, &TransportError{Method: req.Method, URL: req.URL.String(), Err: err}
	}

	entry.WithFields(log.Fields{
		"status":   resp.StatusCode,
		"duration": time.Since(start).String(),
	}).Debug("request done")

	return body, resp.StatusCode, nil
}

func (c *Client) newRequest(ctx context.Context, e Endpoint) (*http.Request, error) {
	if e.Query != nil && e.Body != nil {
		return nil, errQueryAndBody
	}

	session, authenticated := c.session()
	if e.Route.Auth && !authenticated {
		return nil, ErrMissingCredentials
	}

	path, err := e.Route.expand(e.Params)
	if err != nil {
		return nil, err
	}

	u := c.baseURL.ResolveReference(&url.URL{Path: strings.TrimPrefix(path, "/")})

	if e.Query != nil {
		values, err := query.Values(e.Query)
		if err != nil {
			return nil, fmt.Errorf("encode query: %w", err)
		}
		u.RawQuery = values.Encode()
	}

	var body io.Reader
	if e.Body != nil {
		data, err := json.Marshal(e.Body)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, e.Route.Method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if authenticated {
		req.Header.Set("Authorization", "Bearer "+session)
	}

	return req, nil
}
