package llm

import (
	"errors"
	"fmt"
)

// ErrorKind classifies provider failures.
type ErrorKind string

const (
	// KindQuotaExceeded means the upstream rejected the call for rate or
	// billing limits (HTTP 429 and friends).
	KindQuotaExceeded ErrorKind = "quota_exceeded"

	// KindInvalidRequest means the request itself was malformed or rejected
	// by upstream validation (HTTP 400/422).
	KindInvalidRequest ErrorKind = "invalid_request"

	// KindUnknown covers transport failures and unclassified upstream errors.
	KindUnknown ErrorKind = "unknown"
)

// Error wraps a provider failure with a classification.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("llm %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(kind ErrorKind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// KindOf returns the classification of err, or KindUnknown for plain errors.
func KindOf(err error) ErrorKind {
	var llmErr *Error
	if errors.As(err, &llmErr) {
		return llmErr.Kind
	}
	return KindUnknown
}

// ClassifyStatus maps an upstream HTTP status to an ErrorKind.
func ClassifyStatus(status int) ErrorKind {
	switch {
	case status == 429:
		return KindQuotaExceeded
	case status == 400 || status == 422:
		return KindInvalidRequest
	default:
		return KindUnknown
	}
}
