// Package gnews maps tool arguments onto GNews v4 query parameters and
// performs the outbound API calls.
package gnews

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gnews-io/gnews-io-mcp-server/internal/credential"
	"github.com/gnews-io/gnews-io-mcp-server/internal/model"
)

// Endpoint paths, fixed per tool.
const (
	EndpointSearch       = "/search"
	EndpointTopHeadlines = "/top-headlines"
)

// apiKeyParam is the query parameter the upstream expects the credential
// in, regardless of which channel the MCP client used.
const apiKeyParam = "apikey"

const defaultUserAgent = "gnews-mcp/1.0"

// Result is a successful upstream response: the HTTP status and the JSON
// body, passed through without modification.
type Result struct {
	Status int
	Body   []byte
}

// Client performs single-attempt GET calls against the GNews API. It holds
// no per-call state and is safe for concurrent use.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewClient creates a Client for the given base URL. timeout bounds each
// call end to end; there is no retry.
func NewClient(baseURL string, timeout time.Duration, userAgent string) *Client {
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Get issues one GET to baseURL+endpoint with the mapped parameters and
// the resolved credential attached as the upstream's apikey query
// parameter. The request is bound to ctx, so a cancelled tool call aborts
// the outbound connection.
//
// A non-2xx response becomes a model.UpstreamError carrying the upstream
// status and body verbatim. Transport failures are classified as timeout or
// network errors. Error messages are scrubbed of the credential value,
// which would otherwise leak through the request URL inside url.Error.
func (c *Client) Get(ctx context.Context, endpoint string, params url.Values, cred credential.Credential) (*Result, error) {
	q := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Set(apiKeyParam, cred.Value())

	reqURL := c.baseURL + endpoint + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, c.transportError(err, cred)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.transportError(err, cred)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.transportError(err, cred)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &model.UpstreamError{
			StatusCode: resp.StatusCode,
			Body:       scrub(string(body), cred),
			Err:        model.ErrUpstreamStatus,
		}
	}

	if !json.Valid(body) {
		return nil, &model.UpstreamError{
			Message: "invalid GNews API response (JSON expected)",
			Err:     model.ErrUpstreamNetwork,
		}
	}

	return &Result{Status: resp.StatusCode, Body: body}, nil
}

// transportError classifies a failed request as timeout or network failure
// and strips the credential from the message.
func (c *Client) transportError(err error, cred credential.Credential) error {
	if isTimeout(err) {
		return &model.UpstreamError{
			Message: "timeout when calling GNews API: " + scrub(err.Error(), cred),
			Err:     model.ErrUpstreamTimeout,
		}
	}
	return &model.UpstreamError{
		Message: "network error when calling GNews API: " + scrub(err.Error(), cred),
		Err:     model.ErrUpstreamNetwork,
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// scrub removes the credential value from text destined for errors or
// logs. The upstream never echoes the key, but Go transport errors embed
// the full request URL, apikey included.
func scrub(text string, cred credential.Credential) string {
	v := cred.Value()
	if v == "" {
		return text
	}
	text = strings.ReplaceAll(text, url.QueryEscape(v), "[redacted]")
	return strings.ReplaceAll(text, v, "[redacted]")
}
