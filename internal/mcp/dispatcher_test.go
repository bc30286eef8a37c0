package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnews-io/gnews-io-mcp-server/internal/credential"
	"github.com/gnews-io/gnews-io-mcp-server/internal/gnews"
	"github.com/gnews-io/gnews-io-mcp-server/internal/metrics"
	"github.com/gnews-io/gnews-io-mcp-server/internal/model"
)

const headerKey = "header-secret"

// fakeUpstream is a scripted GNews endpoint that records what reaches it.
type fakeUpstream struct {
	srv      *httptest.Server
	requests atomic.Int64
	lastURL  atomic.Value
}

func newFakeUpstream(t *testing.T, handler http.HandlerFunc) *fakeUpstream {
	t.Helper()
	f := &fakeUpstream{}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.requests.Add(1)
		f.lastURL.Store(r.URL.String())
		handler(w, r)
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeUpstream) lastRequestURL() string {
	v, _ := f.lastURL.Load().(string)
	return v
}

func newTestDispatcher(f *fakeUpstream, timeout time.Duration) *Dispatcher {
	return &Dispatcher{
		Client:  gnews.NewClient(f.srv.URL, timeout, ""),
		Metrics: metrics.NewRecorder(),
	}
}

func okUpstream(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}
}

func headerCtx() context.Context {
	return credential.WithHeaderValue(context.Background(), headerKey)
}

func errorPayload(t *testing.T, result *sdkmcp.CallToolResult) model.ToolErrorPayload {
	t.Helper()
	require.True(t, result.IsError, "expected an error result")
	require.Len(t, result.Content, 1)
	tc, ok := result.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok, "error content should be text")

	var p model.ToolErrorPayload
	require.NoError(t, json.Unmarshal([]byte(tc.Text), &p))
	return p
}

func TestDispatchUnknownToolCheckedFirst(t *testing.T) {
	f := newFakeUpstream(t, okUpstream(`{}`))
	d := newTestDispatcher(f, time.Second)

	// No credential anywhere: the unknown tool must still win, since the
	// name check precedes credential resolution.
	result := d.Dispatch(context.Background(), "summarize", nil)

	p := errorPayload(t, result)
	assert.Equal(t, model.KindUnknownTool, p.Kind)
	assert.Contains(t, p.Message, `"summarize"`)
	assert.Zero(t, f.requests.Load(), "unknown tool must not reach the upstream")
}

func TestDispatchCredentialMissing(t *testing.T) {
	f := newFakeUpstream(t, okUpstream(`{}`))
	d := newTestDispatcher(f, time.Second)

	result := d.Dispatch(context.Background(), ToolSearch, map[string]any{"q": "apple"})

	p := errorPayload(t, result)
	assert.Equal(t, model.KindCredentialMissing, p.Kind)
	assert.Zero(t, f.requests.Load(), "missing credential must short-circuit before the upstream call")
}

func TestDispatchHeaderBeatsInlineArgument(t *testing.T) {
	var gotKey atomic.Value
	f := newFakeUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey.Store(r.URL.Query().Get("apikey"))
		w.Write([]byte(`{}`))
	})
	d := newTestDispatcher(f, time.Second)

	result := d.Dispatch(headerCtx(), ToolSearch, map[string]any{
		"q":       "apple",
		"api_key": "inline-secret",
	})

	require.False(t, result.IsError)
	assert.Equal(t, headerKey, gotKey.Load(), "header channel must win over the inline argument")
}

func TestDispatchInlineFallback(t *testing.T) {
	var gotKey atomic.Value
	f := newFakeUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey.Store(r.URL.Query().Get("apikey"))
		w.Write([]byte(`{}`))
	})
	d := newTestDispatcher(f, time.Second)

	// Empty header value counts as absent, so the inline argument applies.
	ctx := credential.WithHeaderValue(context.Background(), "")
	result := d.Dispatch(ctx, ToolSearch, map[string]any{
		"q":       "apple",
		"api_key": "inline-secret",
	})

	require.False(t, result.IsError)
	assert.Equal(t, "inline-secret", gotKey.Load())
}

func TestDispatchInvalidArgumentBeforeUpstream(t *testing.T) {
	f := newFakeUpstream(t, okUpstream(`{}`))
	d := newTestDispatcher(f, time.Second)

	result := d.Dispatch(headerCtx(), ToolSearch, map[string]any{"q": "   "})

	p := errorPayload(t, result)
	assert.Equal(t, model.KindArgumentInvalid, p.Kind)
	assert.Contains(t, p.Message, "q")
	assert.Zero(t, f.requests.Load())
}

func TestDispatchUnknownArgument(t *testing.T) {
	f := newFakeUpstream(t, okUpstream(`{}`))
	d := newTestDispatcher(f, time.Second)

	result := d.Dispatch(headerCtx(), ToolSearch, map[string]any{"q": "x", "sort": "asc"})

	p := errorPayload(t, result)
	assert.Equal(t, model.KindArgumentUnknown, p.Kind)
	assert.Contains(t, p.Message, "sort")
	assert.Zero(t, f.requests.Load())
}

func TestDispatchSuccessRoundTrip(t *testing.T) {
	const body = `{"articles":[{"title":"A"}],"totalArticles":1}`
	f := newFakeUpstream(t, okUpstream(body))
	d := newTestDispatcher(f, time.Second)

	result := d.Dispatch(headerCtx(), ToolSearch, map[string]any{"q": "apple"})

	require.False(t, result.IsError)
	require.Len(t, result.Content, 1)
	tc, ok := result.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, body, tc.Text, "upstream body must pass through unmodified")
}

func TestDispatchTopHeadlinesDefaultFeed(t *testing.T) {
	f := newFakeUpstream(t, okUpstream(`{"articles":[]}`))
	d := newTestDispatcher(f, time.Second)

	result := d.Dispatch(headerCtx(), ToolTopHeadlines, map[string]any{})

	require.False(t, result.IsError)
	u := f.lastRequestURL()
	assert.Contains(t, u, "/top-headlines")
	assert.NotContains(t, u, "category=", "empty call sends no optional parameters")
	assert.Contains(t, u, "apikey=", "credential still attached")
}

func TestDispatchUpstream401Passthrough(t *testing.T) {
	const errBody = `{"errors":["Your API key is invalid."]}`
	f := newFakeUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(errBody))
	})
	d := newTestDispatcher(f, time.Second)

	result := d.Dispatch(headerCtx(), ToolSearch, map[string]any{"q": "apple"})

	p := errorPayload(t, result)
	assert.Equal(t, model.KindUpstreamHTTP, p.Kind)
	assert.Equal(t, http.StatusUnauthorized, p.StatusCode)
	assert.Equal(t, errBody, p.Body, "upstream error body must be preserved")

	raw, err := json.Marshal(result)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), headerKey, "credential must not appear anywhere in the result")
}

func TestDispatchUpstreamTimeout(t *testing.T) {
	blocked := make(chan struct{})
	f := newFakeUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		<-blocked
	})
	defer close(blocked)
	d := newTestDispatcher(f, 50*time.Millisecond)

	start := time.Now()
	result := d.Dispatch(headerCtx(), ToolSearch, map[string]any{"q": "apple"})

	p := errorPayload(t, result)
	assert.Equal(t, model.KindUpstreamTimeout, p.Kind)
	assert.Less(t, time.Since(start), 2*time.Second, "timeout must bound the call")
	assert.NotContains(t, p.Message, headerKey)
}

func TestDispatchNetworkFailure(t *testing.T) {
	f := newFakeUpstream(t, okUpstream(`{}`))
	f.srv.Close()
	d := newTestDispatcher(f, time.Second)

	result := d.Dispatch(headerCtx(), ToolSearch, map[string]any{"q": "apple"})

	p := errorPayload(t, result)
	assert.Equal(t, model.KindUpstreamNetwork, p.Kind)
	assert.NotContains(t, p.Message, headerKey, "transport errors embed the URL; the key must be scrubbed")
}

func TestDispatchIdempotentCallsHitUpstreamTwice(t *testing.T) {
	f := newFakeUpstream(t, okUpstream(`{"articles":[]}`))
	d := newTestDispatcher(f, time.Second)

	args := map[string]any{"q": "apple", "max": float64(5)}
	first := d.Dispatch(headerCtx(), ToolSearch, args)
	second := d.Dispatch(headerCtx(), ToolSearch, args)

	require.False(t, first.IsError)
	require.False(t, second.IsError)
	assert.EqualValues(t, 2, f.requests.Load(), "identical calls are never memoized")
}

func TestDispatchWorksWithoutMetrics(t *testing.T) {
	f := newFakeUpstream(t, okUpstream(`{}`))
	d := &Dispatcher{Client: gnews.NewClient(f.srv.URL, time.Second, "")}

	result := d.Dispatch(headerCtx(), ToolSearch, map[string]any{"q": "apple"})
	require.False(t, result.IsError)
}
