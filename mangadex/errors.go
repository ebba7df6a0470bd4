package mangadex

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/mo"
)

var (
	// ErrMissingCredentials is returned, without touching the network, when an
	// operation needs a session or refresh token and none is stored.
	ErrMissingCredentials = errors.New("mangadex: missing credentials")

	// ErrPingMismatch matches any *PingError.
	ErrPingMismatch = errors.New("mangadex: unexpected ping response")
)

// TransportError wraps failures of the HTTP layer: DNS, TLS, refused
// connections, timeouts and truncated bodies.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("mangadex: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// MalformedResponseError reports a body that is not JSON or carries no
// recognizable envelope tag.
type MalformedResponseError struct {
	// Status is the HTTP status code of the response.
	Status int
	// Body holds the beginning of the offending payload.
	Body string
	Err  error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("mangadex: malformed response (status %d): %v", e.Status, e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// ErrorRecord is one entry of an error envelope.
type ErrorRecord struct {
	ID     uuid.UUID         `json:"id"`
	Status int               `json:"status"`
	Title  mo.Option[string] `json:"title"`
	Detail mo.Option[string] `json:"detail"`
}

func (r ErrorRecord) String() string {
	msg := r.Title.OrElse(http.StatusText(r.Status))
	if detail, ok := r.Detail.Get(); ok && detail != "" {
		msg += ": " + detail
	}
	return msg
}

// APIError is a well formed envelope reporting "error".
type APIError struct {
	// Status is the HTTP status code of the response. It is zero for
	// errors reported by a single element of a page or array.
	Status int
	Errors []ErrorRecord
}

func (e *APIError) Error() string {
	var b strings.Builder
	b.WriteString("mangadex: api error")
	if e.Status != 0 {
		fmt.Fprintf(&b, " (status %d)", e.Status)
	}

	if len(e.Errors) == 0 {
		return b.String()
	}

	b.WriteString(": ")
	b.WriteString(e.Errors[0].String())
	if n := len(e.Errors) - 1; n > 0 {
		fmt.Fprintf(&b, " (and %d more)", n)
	}

	return b.String()
}

// PingError is returned when GET /ping answers anything but "pong".
type PingError struct {
	Body string
}

func (e *PingError) Error() string {
	return fmt.Sprintf("mangadex: expected pong, got %q", e.Body)
}

func (e *PingError) Is(target error) bool {
	return target == ErrPingMismatch
}

// IsStatus reports whether err is an *APIError whose response or any record
// carries the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}

	if apiErr.Status == status {
		return true
	}

	for _, record := range apiErr.Errors {
		if record.Status == status {
			return true
		}
	}

	return false
}
