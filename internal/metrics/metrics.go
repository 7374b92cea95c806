// Package metrics holds the Prometheus collectors shared by the client and the fixture backend.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	clientRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ecolearn",
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "Total number of backend requests issued by the client.",
		},
		[]string{"method", "endpoint", "outcome"},
	)

	clientDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ecolearn",
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "Duration of backend requests issued by the client.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "endpoint"},
	)

	serverRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ecolearn",
			Subsystem: "fixture_http",
			Name:      "requests_total",
			Help:      "Total number of requests handled by the fixture backend.",
		},
		[]string{"method", "endpoint", "status"},
	)
)

func init() {
	Registry.MustRegister(clientRequests, clientDuration, serverRequests)
}

// Endpoint reduces a request path to a low-cardinality label: at most two segments, ids dropped.
func Endpoint(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) > 2 {
		parts = parts[:2]
	}
	return "/" + strings.Join(parts, "/")
}

// ObserveClientRequest records one request made through the API client.
func ObserveClientRequest(method, path, outcome string, elapsed time.Duration) {
	endpoint := Endpoint(path)
	clientRequests.WithLabelValues(method, endpoint, outcome).Inc()
	clientDuration.WithLabelValues(method, endpoint).Observe(elapsed.Seconds())
}

// ObserveServerRequest records one request served by the fixture backend.
func ObserveServerRequest(method, path string, status int) {
	serverRequests.WithLabelValues(method, Endpoint(path), strconv.Itoa(status)).Inc()
}

// Handler exposes Registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
