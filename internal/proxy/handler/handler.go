// Package handler contains the HTTP handlers for the proxy's own
// endpoints. Tool traffic does not pass through here; it goes to the MCP
// transports and the REST facade.
package handler

import (
	"encoding/json"
	"net/http"
)

// Handlers holds all HTTP handler dependencies.
type Handlers struct {
	Version      string
	UpstreamBase string
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
