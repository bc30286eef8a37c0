// Package credential resolves the upstream API key for a single tool call.
//
// A key may arrive through exactly two channels, both fixed at compile time:
// the X-Api-Key transport header, or an inline "api_key" tool argument for
// clients that cannot set custom headers. The header wins when both carry a
// value. The resolved value stays inside the call that resolved it: it is
// never logged, never cached, and never included in a response.
package credential

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gnews-io/gnews-io-mcp-server/internal/model"
)

// Fixed channel names. These are part of the documented contract, not
// configuration.
const (
	// HeaderName is the transport header carrying the upstream API key.
	HeaderName = "X-Api-Key"
	// ArgName is the inline tool argument accepted as a fallback channel.
	ArgName = "api_key"
)

// Source identifies which channel supplied a resolved credential.
type Source string

const (
	SourceHeader Source = "header"
	SourceInline Source = "inline_argument"
)

// Credential is a resolved upstream API key. The value is unexported and
// both formatting interfaces print a placeholder, so a Credential dropped
// into a log line or error cannot leak the key.
type Credential struct {
	value  string
	Source Source
}

// Value returns the secret for attaching to the upstream request.
func (c Credential) Value() string { return c.value }

func (c Credential) String() string { return "[redacted]" }

func (c Credential) GoString() string { return "credential.Credential{[redacted]}" }

// Resolve picks the credential for one call. headerValue is the raw
// X-Api-Key header from the transport; inlineValue is the raw "api_key"
// argument, if any. The header takes priority when present and non-empty;
// an empty or whitespace-only header counts as absent rather than as an
// empty credential. With neither channel populated, resolution fails with
// model.ErrCredentialMissing.
func Resolve(headerValue, inlineValue string) (Credential, error) {
	if v := strings.TrimSpace(headerValue); v != "" {
		return Credential{value: v, Source: SourceHeader}, nil
	}
	if v := strings.TrimSpace(inlineValue); v != "" {
		return Credential{value: v, Source: SourceInline}, nil
	}
	return Credential{}, fmt.Errorf("GNews API key required: set the %q header or pass %q as a tool argument: %w",
		HeaderName, ArgName, model.ErrCredentialMissing)
}

// InlineFromArgs extracts the inline api_key argument from a raw argument
// map. Anything other than a string counts as absent.
func InlineFromArgs(args map[string]any) string {
	v, ok := args[ArgName].(string)
	if !ok {
		return ""
	}
	return v
}

type contextKey string

const contextKeyHeader contextKey = "gnews_api_key_header"

// WithHeaderValue stores the raw credential header value on the context for
// the current request.
func WithHeaderValue(ctx context.Context, v string) context.Context {
	return context.WithValue(ctx, contextKeyHeader, v)
}

// HeaderFromContext returns the credential header captured by Middleware,
// or "" when the transport carried none (e.g. stdio).
func HeaderFromContext(ctx context.Context) string {
	v, _ := ctx.Value(contextKeyHeader).(string)
	return v
}

// Middleware copies the credential header into the request context so tool
// handlers reached through the MCP transport can resolve it. It performs no
// validation; a missing key only matters once a tool call needs it.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := WithHeaderValue(r.Context(), r.Header.Get(HeaderName))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
