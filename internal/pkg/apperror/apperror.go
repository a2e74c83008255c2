package apperror

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Kind classifies every failure the API can surface. Handlers map kinds
// to HTTP statuses in one place so internal errors never leak raw.
type Kind string

const (
	KindNotFound         Kind = "not_found"
	KindForbidden        Kind = "forbidden"
	KindInvalidInput     Kind = "invalid_input"
	KindQuotaExceeded    Kind = "quota_exceeded"
	KindUpstreamInvalid  Kind = "upstream_invalid"
	KindUnknown          Kind = "unknown"
	KindStoreUnavailable Kind = "store_unavailable"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error // wrapped cause, never serialized
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NotFound(message string) *Error         { return New(KindNotFound, message) }
func Forbidden(message string) *Error        { return New(KindForbidden, message) }
func InvalidInput(message string) *Error     { return New(KindInvalidInput, message) }
func QuotaExceeded(message string) *Error    { return New(KindQuotaExceeded, message) }
func UpstreamInvalid(message string) *Error  { return New(KindUpstreamInvalid, message) }
func Unknown(message string) *Error          { return New(KindUnknown, message) }
func StoreUnavailable(message string) *Error { return New(KindStoreUnavailable, message) }

// KindOf extracts the kind from any error chain. Plain errors resolve to
// KindUnknown so the handler never guesses a status from a raw message.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// HTTPStatus maps a kind to its response status.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindNotFound:
		return fiber.StatusNotFound
	case KindForbidden:
		return fiber.StatusForbidden
	case KindInvalidInput, KindUpstreamInvalid:
		return fiber.StatusBadRequest
	case KindQuotaExceeded, KindStoreUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// SafeMessage returns the user-facing message for err. Untyped errors get
// a generic message; internals stay in the logs.
func SafeMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal server error"
}
