package mangadex

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/samber/mo"
)

const (
	resultOk    = "ok"
	resultError = "error"
)

var (
	errMissingTag  = errors.New("envelope has no result field")
	errUnknownTag  = errors.New("unknown envelope result")
	errOkOnFailure = errors.New("ok envelope with a failure status")
)

// Result is one decoded envelope: either a payload or the API error that
// replaced it.
type Result[T any] struct {
	inner mo.Result[T]
}

// Ok wraps a successful payload.
func Ok[T any](value T) Result[T] {
	return Result[T]{inner: mo.Ok(value)}
}

// Fail wraps an API error.
func Fail[T any](err *APIError) Result[T] {
	return Result[T]{inner: mo.Err[T](err)}
}

// Get returns the payload, or the *APIError the envelope carried.
func (r Result[T]) Get() (T, error) {
	return r.inner.Get()
}

// IsOk reports whether the envelope was tagged "ok".
func (r Result[T]) IsOk() bool {
	return r.inner.IsOk()
}

// Value returns the payload when present.
func (r Result[T]) Value() mo.Option[T] {
	if value, err := r.inner.Get(); err == nil {
		return mo.Some(value)
	}
	return mo.None[T]()
}

// Err returns the API error, nil for successful envelopes.
func (r Result[T]) Err() *APIError {
	var apiErr *APIError
	if errors.As(r.inner.Error(), &apiErr) {
		return apiErr
	}
	return nil
}

// UnmarshalJSON interprets {"result": "ok", ...} and {"result": "error", "errors": [...]}.
// On "ok" the whole object is decoded into T, so payload fields sit next to the tag.
func (r *Result[T]) UnmarshalJSON(data []byte) error {
	var tag struct {
		Result *string       `json:"result"`
		Errors []ErrorRecord `json:"errors"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return err
	}

	if tag.Result == nil {
		return errMissingTag
	}

	switch *tag.Result {
	case resultOk:
		var value T
		if err := json.Unmarshal(data, &value); err != nil {
			return err
		}
		r.inner = mo.Ok(value)
	case resultError:
		if tag.Errors == nil {
			tag.Errors = []ErrorRecord{}
		}
		r.inner = mo.Err[T](&APIError{Errors: tag.Errors})
	default:
		return fmt.Errorf("%w %q", errUnknownTag, *tag.Result)
	}

	return nil
}

func (r *Result[T]) setStatus(status int) {
	if apiErr := r.Err(); apiErr != nil {
		apiErr.Status = status
	}
}

// Page is a paginated collection whose elements are independent envelopes.
type Page[T any] struct {
	Results []Result[T] `json:"results"`
	Limit   int         `json:"limit"`
	Offset  int         `json:"offset"`
	Total   int         `json:"total"`
}

// UnmarshalJSON decodes the page. A top level error envelope in place of
// the page is returned as an *APIError.
func (p *Page[T]) UnmarshalJSON(data []byte) error {
	if err := topLevelError(data); err != nil {
		return err
	}

	var decoded struct {
		Results []Result[T] `json:"results"`
		Limit   int         `json:"limit"`
		Offset  int         `json:"offset"`
		Total   int         `json:"total"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	*p = Page[T](decoded)
	return nil
}

// Values returns the successful payloads in order.
func (p Page[T]) Values() []T {
	return List[T](p.Results).Values()
}

// Failures returns the errors of the failed elements in order.
func (p Page[T]) Failures() []*APIError {
	return List[T](p.Results).Failures()
}

// HasNext reports whether more results follow this page.
func (p Page[T]) HasNext() bool {
	return p.Offset+len(p.Results) < p.Total
}

// List is a bare JSON array of independent envelopes.
type List[T any] []Result[T]

func (l *List[T]) UnmarshalJSON(data []byte) error {
	if err := topLevelError(data); err != nil {
		return err
	}

	var decoded []Result[T]
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	*l = decoded
	return nil
}

func (l List[T]) Values() []T {
	values := make([]T, 0, len(l))
	for _, r := range l {
		if value, err := r.Get(); err == nil {
			values = append(values, value)
		}
	}
	return values
}

func (l List[T]) Failures() []*APIError {
	var failures []*APIError
	for _, r := range l {
		if apiErr := r.Err(); apiErr != nil {
			failures = append(failures, apiErr)
		}
	}
	return failures
}

// topLevelError extracts an error envelope sent in place of a collection.
// Collections may carry "ok" next to their fields, any other tag is rejected.
func topLevelError(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}

	var probe struct {
		Result string `json:"result"`
	}
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return nil
	}

	switch probe.Result {
	case "", resultOk:
		return nil
	case resultError:
	default:
		return fmt.Errorf("%w %q", errUnknownTag, probe.Result)
	}

	var r Result[NoData]
	if err := r.UnmarshalJSON(trimmed); err != nil {
		return err
	}
	if apiErr := r.Err(); apiErr != nil {
		return apiErr
	}
	return nil
}

type statusSetter interface {
	setStatus(status int)
}

// decode is the single entry point used by the dispatcher for every response shape.
// Shapes without an envelope of their own never decode a failure status as success.
func decode[R any](body []byte, status int, out *R) error {
	if _, enveloped := any(out).(statusSetter); !enveloped && status >= http.StatusBadRequest {
		return failedResponse(body, status)
	}

	if err := json.Unmarshal(body, out); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			apiErr.Status = status
			return apiErr
		}

		return &MalformedResponseError{Status: status, Body: excerpt(body), Err: err}
	}

	if s, ok := any(out).(statusSetter); ok {
		s.setStatus(status)
	}

	return nil
}

// failedResponse reads the error envelope of a response with a failure status.
func failedResponse(body []byte, status int) error {
	var r Result[NoData]
	if err := json.Unmarshal(body, &r); err != nil {
		return &MalformedResponseError{Status: status, Body: excerpt(body), Err: err}
	}

	if apiErr := r.Err(); apiErr != nil {
		apiErr.Status = status
		return apiErr
	}

	return &MalformedResponseError{Status: status, Body: excerpt(body), Err: errOkOnFailure}
}

func excerpt(body []byte) string {
	const max = 256
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
