package model

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{ErrCredentialMissing, KindCredentialMissing},
		{ErrUnknownTool, KindUnknownTool},
		{UnknownArgument("foo"), KindArgumentUnknown},
		{InvalidArgument("max", "must be numeric"), KindArgumentInvalid},
		{&UpstreamError{StatusCode: 401, Body: `{"error":"invalid key"}`, Err: ErrUpstreamStatus}, KindUpstreamHTTP},
		{&UpstreamError{Message: "request timed out", Err: ErrUpstreamTimeout}, KindUpstreamTimeout},
		{&UpstreamError{Message: "connection refused", Err: ErrUpstreamNetwork}, KindUpstreamNetwork},
		{fmt.Errorf("wrapped: %w", ErrCredentialMissing), KindCredentialMissing},
		{errors.New("mystery"), KindInternal},
	}
	for _, tc := range cases {
		if got := KindOf(tc.err); got != tc.want {
			t.Fatalf("KindOf(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestArgumentErrorUnwrap(t *testing.T) {
	err := InvalidArgument("country", "must be a 2-letter code")
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatal("InvalidArgument should unwrap to ErrInvalidArgument")
	}
	if errors.Is(err, ErrUnknownArgument) {
		t.Fatal("InvalidArgument should not match ErrUnknownArgument")
	}

	var argErr *ArgumentError
	if !errors.As(err, &argErr) {
		t.Fatal("expected *ArgumentError")
	}
	if argErr.Param != "country" {
		t.Fatalf("got param %q", argErr.Param)
	}
}

func TestPayloadForUpstreamHTTP(t *testing.T) {
	err := &UpstreamError{StatusCode: 403, Body: `{"errors":["quota exhausted"]}`, Err: ErrUpstreamStatus}
	p := PayloadFor(err)
	if p.Kind != KindUpstreamHTTP {
		t.Fatalf("got kind %q", p.Kind)
	}
	if p.StatusCode != 403 {
		t.Fatalf("got status %d", p.StatusCode)
	}
	if p.Body != `{"errors":["quota exhausted"]}` {
		t.Fatalf("upstream body not preserved: %q", p.Body)
	}
}

func TestPayloadForNonHTTP(t *testing.T) {
	p := PayloadFor(ErrCredentialMissing)
	if p.Kind != KindCredentialMissing {
		t.Fatalf("got kind %q", p.Kind)
	}
	if p.StatusCode != 0 || p.Body != "" {
		t.Fatalf("non-HTTP payload should not carry status/body: %+v", p)
	}
}
