package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder exports tool-call and upstream-call metrics to Prometheus. It
// owns its registry so independent instances never collide. A nil Recorder
// is valid and records nothing.
//
// Labels carry tool names, endpoints, outcome kinds, and status codes only.
// Argument values and credentials never become label values.
type Recorder struct {
	registry         *prometheus.Registry
	toolCalls        *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
}

// NewRecorder creates a Recorder with the standard metrics registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),

		toolCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gnews_tool_calls_total",
			Help: "Total tool calls by tool name and outcome kind",
		}, []string{"tool", "outcome"}),

		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gnews_upstream_request_duration_seconds",
			Help:    "Upstream API call latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint", "status"}),
	}

	r.registry.MustRegister(r.toolCalls, r.upstreamDuration)
	return r
}

// ToolCall counts one dispatched call. outcome is "success" or an error
// kind string.
func (r *Recorder) ToolCall(tool, outcome string) {
	if r == nil {
		return
	}
	r.toolCalls.With(prometheus.Labels{"tool": tool, "outcome": outcome}).Inc()
}

// UpstreamCall records one outbound request. status is the upstream HTTP
// status code, or 0 when the request never completed.
func (r *Recorder) UpstreamCall(endpoint string, status int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.upstreamDuration.With(prometheus.Labels{
		"endpoint": endpoint,
		"status":   strconv.Itoa(status),
	}).Observe(elapsed.Seconds())
}

// Handler returns the /metrics endpoint for this recorder's registry.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
