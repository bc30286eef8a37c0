package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const cheatsheet = `GNews API Cheat Sheet:
- /search: q, lang, country, max, in, sortby, from, to, page
- /top-headlines: category, lang, country, max, q, from, to, page
- Dates: 'YYYY-MM-DD' or ISO 8601 (e.g. '2024-11-01T08:30:00Z')
- sortby: publishedAt | relevance
`

// docLinks point at the upstream's own endpoint documentation.
var docLinks = map[string]string{
	"docs://gnews/search":        "https://docs.gnews.io/endpoints/search-endpoint",
	"docs://gnews/top-headlines": "https://docs.gnews.io/endpoints/top-headlines-endpoint",
}

// registerResources exposes the parameter cheatsheet and links to the
// official endpoint docs as MCP resources.
func registerResources(server *sdkmcp.Server) {
	server.AddResource(&sdkmcp.Resource{
		URI:         "docs://gnews/cheatsheet",
		Name:        "GNews API Cheat Sheet",
		Description: "Quick reference for the parameters both tools accept.",
		MIMEType:    "text/plain",
	}, func(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
		return &sdkmcp.ReadResourceResult{
			Contents: []*sdkmcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "text/plain",
				Text:     cheatsheet,
			}},
		}, nil
	})

	for uri, link := range docLinks {
		name := "GNews API - Search endpoint"
		if uri == "docs://gnews/top-headlines" {
			name = "GNews API - Top Headlines endpoint"
		}
		server.AddResource(&sdkmcp.Resource{
			URI:         uri,
			Name:        name,
			Description: "Link to the official upstream documentation.",
			MIMEType:    "text/uri-list",
		}, func(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      req.Params.URI,
					MIMEType: "text/uri-list",
					Text:     link + "\n",
				}},
			}, nil
		})
	}
}
