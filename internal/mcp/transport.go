package mcp

import (
	"net/http"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewStreamableHTTPHandler wraps the server in the Streamable HTTP
// transport, suitable for mounting on a chi router. Mount it behind
// credential.Middleware so tool handlers can read the X-Api-Key header
// from the request context.
func NewStreamableHTTPHandler(server *sdkmcp.Server) http.Handler {
	return sdkmcp.NewStreamableHTTPHandler(func(r *http.Request) *sdkmcp.Server {
		return server
	}, nil)
}

// NewSSEHandler wraps the server in the legacy SSE transport for clients
// that have not moved to streamable HTTP yet.
func NewSSEHandler(server *sdkmcp.Server) http.Handler {
	return sdkmcp.NewSSEHandler(func(r *http.Request) *sdkmcp.Server {
		return server
	}, nil)
}
