package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistration(t *testing.T) {
	collectors := []prometheus.Collector{
		JWKSFetchesTotal,
		TokenVerificationsTotal,
		CircuitBreakerState,
		HTTPErrorsTotal,
	}

	for _, c := range collectors {
		desc := make(chan *prometheus.Desc, 1)
		c.Describe(desc)
		close(desc)
		require.NotNil(t, <-desc, "metric should have a valid descriptor")
	}
}

func TestHTTPMetrics_Middleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg, "trivia")

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/questions/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {})

	for _, path := range []string{"/questions/1", "/questions/2", "/metrics"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues(http.MethodGet, "/questions/{id}", "418")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.InFlightGauge))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestsTotal))
}
