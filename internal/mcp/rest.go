package mcp

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// RESTHandler exposes the tool surface over plain HTTP for clients that do
// not speak MCP. It goes through the same dispatcher as the protocol
// transports, so credential rules and error shapes are identical.
type RESTHandler struct {
	Dispatcher *Dispatcher
}

// Handler returns an http.Handler with routes for the REST API.
func (h *RESTHandler) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/tools/list", h.ListTools)
	r.Post("/tools/call", h.CallTool)
	return r
}

// ListTools handles GET /tools/list.
func (h *RESTHandler) ListTools(w http.ResponseWriter, r *http.Request) {
	type toolResponse struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		InputSchema any    `json:"inputSchema"`
	}

	schemas := map[string]any{
		ToolSearch:       searchInputSchema(),
		ToolTopHeadlines: topHeadlinesInputSchema(),
	}

	resp := struct {
		Tools []toolResponse `json:"tools"`
	}{
		Tools: make([]toolResponse, 0, len(ToolNames)),
	}
	for _, name := range ToolNames {
		resp.Tools = append(resp.Tools, toolResponse{
			Name:        name,
			Description: describeTool(name),
			InputSchema: schemas[name],
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// CallTool handles POST /tools/call. The response body is the MCP
// CallToolResult: content blocks plus isError.
func (h *RESTHandler) CallTool(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string         `json:"name"`
		Arguments map[string]any `json:"arguments"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}

	result := h.Dispatcher.Dispatch(r.Context(), req.Name, req.Arguments)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(restResult(result))
}

// restResult flattens a CallToolResult into the REST response shape. The
// SDK's Content type marshals with a "type" discriminator on its own, but
// keeping the projection explicit here pins the REST contract.
func restResult(result *sdkmcp.CallToolResult) map[string]any {
	content := make([]map[string]any, 0, len(result.Content))
	for _, c := range result.Content {
		if tc, ok := c.(*sdkmcp.TextContent); ok {
			content = append(content, map[string]any{"type": "text", "text": tc.Text})
		}
	}
	return map[string]any{
		"content": content,
		"isError": result.IsError,
	}
}
