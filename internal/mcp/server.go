package mcp

import (
	"context"
	"encoding/json"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gnews-io/gnews-io-mcp-server/internal/model"
)

// Version is the server version advertised during MCP initialization.
const Version = "v1.0.0"

// NewServer creates the MCP protocol server with both GNews tools and the
// documentation resources registered. The same server instance backs every
// transport.
func NewServer(d *Dispatcher) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "gnews",
		Version: Version,
	}, nil)

	schemas := map[string]any{
		ToolSearch:       searchInputSchema(),
		ToolTopHeadlines: topHeadlinesInputSchema(),
	}

	for _, name := range ToolNames {
		tool := name // capture
		server.AddTool(
			&sdkmcp.Tool{
				Name:        tool,
				Description: describeTool(tool),
				InputSchema: schemas[tool],
			},
			func(ctx context.Context, req *sdkmcp.CallToolRequest) (*sdkmcp.CallToolResult, error) {
				var args map[string]any
				if req.Params.Arguments != nil {
					if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
						return d.errorResult(tool, model.InvalidArgument("arguments", "must be a JSON object")), nil
					}
				}
				return d.Dispatch(ctx, tool, args), nil
			},
		)
	}

	registerResources(server)

	return server
}
