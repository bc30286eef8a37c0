package model

import (
	"errors"
	"fmt"
)

// Sentinel errors for tool-call failure classification.
var (
	ErrCredentialMissing = errors.New("CredentialMissingError")
	ErrUnknownArgument   = errors.New("UnknownArgumentError")
	ErrInvalidArgument   = errors.New("InvalidArgumentError")
	ErrUnknownTool       = errors.New("UnknownToolError")
	ErrUpstreamTimeout   = errors.New("UpstreamTimeoutError")
	ErrUpstreamNetwork   = errors.New("UpstreamNetworkError")
	ErrUpstreamStatus    = errors.New("UpstreamStatusError")
)

// Stable kind strings carried in tool-error payloads. Clients match on
// these, so they never change.
const (
	KindCredentialMissing = "credential_missing"
	KindArgumentUnknown   = "argument_unknown"
	KindArgumentInvalid   = "argument_invalid"
	KindUnknownTool       = "unknown_tool"
	KindUpstreamTimeout   = "upstream_timeout"
	KindUpstreamNetwork   = "upstream_network"
	KindUpstreamHTTP      = "upstream_http"
	KindInternal          = "internal"
)

// ArgumentError reports a rejected tool argument: either a parameter the
// tool does not recognize, or a recognized parameter with a bad value.
type ArgumentError struct {
	Param  string `json:"param"`
	Reason string `json:"reason"`
	Err    error  `json:"-"`
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("argument %q: %s", e.Param, e.Reason)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// UnknownArgument builds the rejection for a parameter outside the tool's
// recognized set.
func UnknownArgument(param string) *ArgumentError {
	return &ArgumentError{Param: param, Reason: "unknown parameter", Err: ErrUnknownArgument}
}

// InvalidArgument builds the rejection for a recognized parameter whose
// value fails validation.
func InvalidArgument(param, reason string) *ArgumentError {
	return &ArgumentError{Param: param, Reason: reason, Err: ErrInvalidArgument}
}

// UpstreamError is the unified error type for failed upstream calls. For
// HTTP-level failures StatusCode and Body carry the upstream response
// through verbatim; for transport failures they are zero and Err classifies
// the cause as timeout or network.
type UpstreamError struct {
	StatusCode int    `json:"status_code,omitempty"`
	Body       string `json:"body,omitempty"`
	Message    string `json:"message"`
	Err        error  `json:"-"`
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream returned %d: %s", e.StatusCode, e.Body)
	}
	return e.Message
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// KindOf maps an error to its stable kind string.
func KindOf(err error) string {
	switch {
	case errors.Is(err, ErrCredentialMissing):
		return KindCredentialMissing
	case errors.Is(err, ErrUnknownArgument):
		return KindArgumentUnknown
	case errors.Is(err, ErrInvalidArgument):
		return KindArgumentInvalid
	case errors.Is(err, ErrUnknownTool):
		return KindUnknownTool
	case errors.Is(err, ErrUpstreamTimeout):
		return KindUpstreamTimeout
	case errors.Is(err, ErrUpstreamNetwork):
		return KindUpstreamNetwork
	case errors.Is(err, ErrUpstreamStatus):
		return KindUpstreamHTTP
	default:
		return KindInternal
	}
}

// ToolErrorPayload is the JSON error object returned to MCP clients in an
// IsError tool result. StatusCode and Body are set only for upstream_http.
type ToolErrorPayload struct {
	Kind       string `json:"kind"`
	Message    string `json:"message"`
	StatusCode int    `json:"status_code,omitempty"`
	Body       string `json:"body,omitempty"`
}

// PayloadFor builds the client-facing error payload for err. Upstream HTTP
// failures keep the upstream status and body intact; everything else is
// kind + message only.
func PayloadFor(err error) ToolErrorPayload {
	p := ToolErrorPayload{Kind: KindOf(err), Message: err.Error()}
	var ue *UpstreamError
	if errors.As(err, &ue) && ue.StatusCode != 0 {
		p.StatusCode = ue.StatusCode
		p.Body = ue.Body
	}
	return p
}

// ErrorResponse is the JSON error body returned by the REST surface.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Param   string `json:"param,omitempty"`
}
