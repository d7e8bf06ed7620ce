package rodata

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/recera/rodata/internal/entitystream"
	"github.com/recera/rodata/internal/fetch"
	"github.com/recera/rodata/internal/jsonstream"
)

// ErrorCategory classifies a pipeline failure by where in the
// fetch-decode-convert-write chain it originated.
type ErrorCategory int

const (
	// ErrorCategoryUnknown covers anything the classifier doesn't
	// recognize — a plain error from an unrelated package, for instance.
	ErrorCategoryUnknown ErrorCategory = iota
	// ErrorCategoryNetwork indicates the HTTP request itself failed
	// (DNS, connection refused, TLS, timeout).
	ErrorCategoryNetwork
	// ErrorCategoryHTTPStatus indicates the server responded with a
	// non-2xx/3xx status.
	ErrorCategoryHTTPStatus
	// ErrorCategoryMalformedJSON indicates the tokenizer rejected the
	// response body as invalid JSON.
	ErrorCategoryMalformedJSON
	// ErrorCategoryUnexpectedShape indicates the response was valid JSON
	// but not shaped the way the requested query driver expects (missing
	// "value" array, truncated envelope, and so on).
	ErrorCategoryUnexpectedShape
	// ErrorCategoryWrite indicates the output sink failed.
	ErrorCategoryWrite
	// ErrorCategoryCancelled indicates the context was cancelled or its
	// deadline was exceeded.
	ErrorCategoryCancelled
)

// String returns a lowercase, underscore-separated name for the
// category, suitable for logging or a --format=json error field.
func (c ErrorCategory) String() string {
	switch c {
	case ErrorCategoryNetwork:
		return "network"
	case ErrorCategoryHTTPStatus:
		return "http_status"
	case ErrorCategoryMalformedJSON:
		return "malformed_json"
	case ErrorCategoryUnexpectedShape:
		return "unexpected_shape"
	case ErrorCategoryWrite:
		return "write"
	case ErrorCategoryCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Error is the error type returned by every exported entry point in this
// package: it classifies the underlying failure and, where applicable,
// carries the HTTP status code or the entity path the decoder/streamer
// had reached when things went wrong.
type Error struct {
	Category   ErrorCategory
	Message    string
	HTTPStatus int
	Path       string
	Cause      error
}

func (e *Error) Error() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("rodata: %s", e.Category))
	if e.Message != "" {
		parts = append(parts, e.Message)
	}
	if e.HTTPStatus != 0 {
		parts = append(parts, fmt.Sprintf("(HTTP %d)", e.HTTPStatus))
	}
	if e.Path != "" {
		parts = append(parts, fmt.Sprintf("(at %s)", e.Path))
	}
	return strings.Join(parts, " ")
}

func (e *Error) Unwrap() error { return e.Cause }

// classify wraps a pipeline error as an *Error, inspecting its concrete
// type to pick a category. Already-classified errors pass through
// unchanged so a caller can safely classify a second time.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var rodataErr *Error
	if errors.As(err, &rodataErr) {
		return err
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &Error{Category: ErrorCategoryCancelled, Message: err.Error(), Cause: err}
	}

	var statusErr *fetch.StatusError
	if errors.As(err, &statusErr) {
		return &Error{
			Category:   ErrorCategoryHTTPStatus,
			Message:    fmt.Sprintf("%s returned %s", statusErr.URL, statusErr.Status),
			HTTPStatus: statusErr.StatusCode,
			Cause:      err,
		}
	}

	var decodeErr *jsonstream.DecodeError
	if errors.As(err, &decodeErr) {
		return &Error{Category: ErrorCategoryMalformedJSON, Message: decodeErr.Error(), Cause: err}
	}

	var contentErr *entitystream.ContentError
	if errors.As(err, &contentErr) {
		return &Error{
			Category: ErrorCategoryUnexpectedShape,
			Message:  contentErr.Msg,
			Path:     contentErr.Path.String(),
			Cause:    err,
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &Error{Category: ErrorCategoryNetwork, Message: err.Error(), Cause: err}
	}

	return &Error{Category: ErrorCategoryUnknown, Message: err.Error(), Cause: err}
}
