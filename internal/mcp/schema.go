package mcp

import (
	"strings"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/gnews-io/gnews-io-mcp-server/internal/credential"
	"github.com/gnews-io/gnews-io-mcp-server/internal/gnews"
)

// The published schemas describe the argument surface the mapper enforces.
// Validation stays in the mapper; these exist so MCP clients can discover
// the contract.

func searchInputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"q": {
				Type:        "string",
				Description: "Search query (required, non-empty). Supports quoted phrases and AND/OR/NOT operators.",
			},
			"lang":    langSchema(),
			"country": countrySchema(),
			"max":     maxSchema(),
			"in": {
				Type:        "string",
				Description: "Comma-separated article fields to search: title, description, content.",
			},
			"sortby": {
				Type:        "string",
				Description: "Sort order for results.",
				Enum:        toEnum(gnews.SortOrders),
			},
			"from": dateSchema("Only return articles published after this date."),
			"to":   dateSchema("Only return articles published before this date."),
			"page": pageSchema(),
			credential.ArgName: apiKeySchema(),
		},
		Required: []string{"q"},
	}
}

func topHeadlinesInputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"category": {
				Type:        "string",
				Description: "Headline category. Defaults to the upstream's general feed when omitted.",
				Enum:        toEnum(gnews.Categories),
			},
			"lang":    langSchema(),
			"country": countrySchema(),
			"max":     maxSchema(),
			"q": {
				Type:        "string",
				Description: "Optional keyword filter within the headline feed.",
			},
			"from": dateSchema("Only return articles published after this date."),
			"to":   dateSchema("Only return articles published before this date."),
			"page": pageSchema(),
			credential.ArgName: apiKeySchema(),
		},
	}
}

func langSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Description: "2-letter ISO 639-1 language code, e.g. \"en\".",
	}
}

func countrySchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Description: "2-letter ISO 3166-1 country code, e.g. \"us\".",
	}
}

func maxSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "integer",
		Description: "Number of articles to return, between 1 and 100.",
	}
}

func pageSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "integer",
		Description: "Result page to fetch, starting at 1.",
	}
}

func dateSchema(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Description: desc + " Accepts YYYY-MM-DD or ISO 8601, e.g. \"2024-11-01T08:30:00Z\".",
	}
}

func apiKeySchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "string",
		Description: "GNews API key for clients that cannot set the " + credential.HeaderName +
			" header. The header takes priority when both are present.",
	}
}

func toEnum(values []string) []any {
	enum := make([]any, len(values))
	for i, v := range values {
		enum[i] = v
	}
	return enum
}

func describeTool(name string) string {
	switch name {
	case ToolSearch:
		return "Search news articles on GNews by keyword, with optional language, country, date and sort filters."
	case ToolTopHeadlines:
		return "Fetch current top headlines from GNews, optionally filtered by category (" +
			strings.Join(gnews.Categories, ", ") + "), language and country."
	default:
		return ""
	}
}
