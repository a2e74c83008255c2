package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindNotFound, 404},
		{KindForbidden, 403},
		{KindInvalidInput, 400},
		{KindUpstreamInvalid, 400},
		{KindQuotaExceeded, 503},
		{KindStoreUnavailable, 503},
		{KindUnknown, 500},
		{Kind("made-up"), 500},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if got := HTTPStatus(tt.kind); got != tt.want {
				t.Errorf("HTTPStatus(%q) = %d, want %d", tt.kind, got, tt.want)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{
			name: "direct app error",
			err:  NotFound("agent not found"),
			want: KindNotFound,
		},
		{
			name: "wrapped once",
			err:  fmt.Errorf("while handling: %w", Forbidden("nope")),
			want: KindForbidden,
		},
		{
			name: "wrap constructor preserves kind",
			err:  Wrap(KindQuotaExceeded, "quota", errors.New("429")),
			want: KindQuotaExceeded,
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: KindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSafeMessage(t *testing.T) {
	appErr := Wrap(KindStoreUnavailable, "could not create account", errors.New("dial tcp: connection refused"))

	if got := SafeMessage(appErr); got != "could not create account" {
		t.Errorf("SafeMessage() = %q", got)
	}

	// Raw errors never leak their text to the client.
	if got := SafeMessage(errors.New("pq: password authentication failed")); got != "internal server error" {
		t.Errorf("SafeMessage(plain) = %q", got)
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(KindUnknown, "wrapped", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the wrapped cause")
	}
}
