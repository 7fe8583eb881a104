package host

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusEmitter(t *testing.T) {
	registry := prometheus.NewPedanticRegistry()
	emitter := NewPrometheusEmitter(registry)

	emitter.AddCounter("test_total", 1.0, map[string]string{"verb": "GET"})
	emitter.AddCounter("test_total", 1.0, map[string]string{"verb": "GET"})
	emitter.EmitGauge("test_gauge", 2.5, map[string]string{"verb": "GET"})

	err := testutil.GatherAndCompare(registry, bytes.NewBufferString(`
# TYPE test_total counter
test_total{verb="GET"} 2
# TYPE test_gauge gauge
test_gauge{verb="GET"} 2.5
`))
	require.NoError(t, err)
}

func TestMetricsMiddleware(t *testing.T) {
	registry := prometheus.NewPedanticRegistry()
	mm := MetricsMiddleware{Emitter: NewPrometheusEmitter(registry)}

	pattern := "GET /api/whoami"
	request := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	request = request.WithContext(ContextWithPattern(request.Context(), &pattern))

	writer := httptest.NewRecorder()
	mm.Metrics()(writer, request, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	assert.Equal(t, http.StatusTeapot, writer.Code)

	err := testutil.GatherAndCompare(registry, bytes.NewBufferString(`
# TYPE whoami_requests_total counter
whoami_requests_total{code="418",route="/api/whoami",verb="GET"} 1
`), "whoami_requests_total")
	require.NoError(t, err)
}
