package host

import (
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MuxPattern forms a URL pattern suitable for passing to http.ServeMux.
func MuxPattern(method string, segments ...string) string {
	return fmt.Sprintf("%s /%s", method, strings.ToLower(path.Join(segments...)))
}

func (h *Host) routes() *MiddlewareMux {
	// Setup metrics middleware
	metricsMiddleware := MetricsMiddleware{Emitter: h.metrics}

	mux := NewMiddlewareMux(
		MiddlewarePanic,
		MiddlewareLogging,
		MiddlewareCorrelationData,
		MiddlewareTracing,
		MiddlewareBody,
		metricsMiddleware.Metrics(),
	)

	// Unauthenticated routes
	mux.HandleFunc("/", h.NotFound)
	mux.HandleFunc(MuxPattern(http.MethodGet, "healthz"), h.Healthz)
	mux.Handle(MuxPattern(http.MethodGet, "metrics"), promhttp.Handler())

	// Function routes, gated by the function key
	postMuxMiddleware := NewMiddleware(
		MiddlewareLoggingPostMux,
		h.keyVerifier.MiddlewareFunctionKey)
	mux.Handle(
		MuxPattern(http.MethodPost, "api", "whoami"),
		postMuxMiddleware.HandlerFunc(h.WhoAmI))
	mux.Handle(
		MuxPattern(http.MethodGet, "api", "whoami"),
		postMuxMiddleware.HandlerFunc(h.WhoAmI))
	mux.Handle(
		MuxPattern(http.MethodGet, "api", "whoami", "properties"),
		postMuxMiddleware.HandlerFunc(h.ToolProperties))

	return mux
}
