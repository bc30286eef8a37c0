// Package mcp exposes the GNews tools over the Model Context Protocol and
// routes each tool call through credential resolution, argument mapping,
// and the upstream client.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gnews-io/gnews-io-mcp-server/internal/credential"
	"github.com/gnews-io/gnews-io-mcp-server/internal/gnews"
	"github.com/gnews-io/gnews-io-mcp-server/internal/metrics"
	"github.com/gnews-io/gnews-io-mcp-server/internal/model"
)

// Tool names, the fixed set this server dispatches on.
const (
	ToolSearch       = "search"
	ToolTopHeadlines = "top_headlines"
)

// ToolNames lists every tool the dispatcher recognizes.
var ToolNames = []string{ToolSearch, ToolTopHeadlines}

// argMapper validates one tool's arguments and produces upstream query
// parameters.
type argMapper func(map[string]any) (url.Values, error)

// route pairs a tool with its argument mapper and upstream endpoint.
type route struct {
	mapArgs  argMapper
	endpoint string
}

var routes = map[string]route{
	ToolSearch:       {mapArgs: gnews.MapSearchArgs, endpoint: gnews.EndpointSearch},
	ToolTopHeadlines: {mapArgs: gnews.MapTopHeadlinesArgs, endpoint: gnews.EndpointTopHeadlines},
}

// Dispatcher routes tool calls to the upstream client. It is stateless
// across calls; every call runs the same stage sequence and any stage
// failure short-circuits the rest. Metrics may be nil.
type Dispatcher struct {
	Client  *gnews.Client
	Metrics *metrics.Recorder
}

// Dispatch executes one tool call: resolve the tool name, resolve the
// credential (transport header first, inline api_key argument as
// fallback), map the arguments, call the upstream, and wrap the outcome
// as an MCP tool result.
//
// Failures become IsError results carrying a {kind, message} JSON payload,
// never a Go error: the protocol layer treats handler errors as internal
// faults, while these are ordinary tool-level outcomes. The resolved
// credential value never appears in the result or in logs.
func (d *Dispatcher) Dispatch(ctx context.Context, tool string, args map[string]any) *sdkmcp.CallToolResult {
	callID := uuid.NewString()[:8]

	rt, ok := routes[tool]
	if !ok {
		log.Printf("mcp call %s: unknown tool %q", callID, tool)
		// Label as "unknown" so arbitrary client strings never become
		// metric label values.
		return d.errorResult("unknown", &model.ArgumentError{
			Param:  "name",
			Reason: "unknown tool " + strconv.Quote(tool),
			Err:    model.ErrUnknownTool,
		})
	}

	cred, err := credential.Resolve(credential.HeaderFromContext(ctx), credential.InlineFromArgs(args))
	if err != nil {
		log.Printf("mcp call %s: tool=%s no credential in either channel", callID, tool)
		return d.errorResult(tool, err)
	}

	params, err := rt.mapArgs(args)
	if err != nil {
		log.Printf("mcp call %s: tool=%s argument rejected: %v", callID, tool, err)
		return d.errorResult(tool, err)
	}

	start := time.Now()
	res, err := d.Client.Get(ctx, rt.endpoint, params, cred)
	elapsed := time.Since(start)
	if err != nil {
		d.Metrics.UpstreamCall(rt.endpoint, upstreamStatus(err), elapsed)
		log.Printf("mcp call %s: tool=%s upstream failed after %s: kind=%s", callID, tool, elapsed.Round(time.Millisecond), model.KindOf(err))
		return d.errorResult(tool, err)
	}
	d.Metrics.UpstreamCall(rt.endpoint, res.Status, elapsed)
	d.Metrics.ToolCall(tool, "success")
	log.Printf("mcp call %s: tool=%s ok in %s", callID, tool, elapsed.Round(time.Millisecond))

	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(res.Body)}},
	}
}

// errorResult builds the IsError tool result for a failed stage and counts
// it against the tool's outcome metric.
func (d *Dispatcher) errorResult(tool string, err error) *sdkmcp.CallToolResult {
	payload := model.PayloadFor(err)
	d.Metrics.ToolCall(tool, payload.Kind)

	body, marshalErr := json.Marshal(payload)
	if marshalErr != nil {
		body = []byte(`{"kind":"internal","message":"failed to encode error"}`)
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(body)}},
		IsError: true,
	}
}

// upstreamStatus extracts the HTTP status from an upstream error, or 0 for
// transport-level failures.
func upstreamStatus(err error) int {
	var ue *model.UpstreamError
	if errors.As(err, &ue) {
		return ue.StatusCode
	}
	return 0
}
