package handler

import "net/http"

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": h.Version,
	})
}

// HealthReadiness handles GET /health/readiness. The proxy holds no
// connections between calls, so readiness reduces to having an upstream
// base URL configured.
func (h *Handlers) HealthReadiness(w http.ResponseWriter, r *http.Request) {
	if h.UpstreamBase == "" {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unhealthy",
			"error":  "no upstream base URL configured",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "healthy",
		"upstream": h.UpstreamBase,
	})
}

// HealthLiveness handles GET /health/liveness
func (h *Handlers) HealthLiveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "alive",
	})
}
