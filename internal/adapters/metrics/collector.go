package metrics

import (
	"BankAccounts/internal/core/ports"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ ports.RemoteCheckObserver = (*Collector)(nil) // Ensure compliance

// Collector owns a private registry so each service exposes only its own series.
type Collector struct {
	registry      *prometheus.Registry
	remoteChecks  *prometheus.CounterVec
	remoteLatency *prometheus.HistogramVec
	httpRequests  *prometheus.CounterVec
	httpLatency   *prometheus.HistogramVec
}

// NewCollector registers the service's metrics. service becomes a constant label.
func NewCollector(service string) *Collector {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	constLabels := prometheus.Labels{"service": service}

	return &Collector{
		registry: registry,
		remoteChecks: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "remote_checks_total",
			Help:        "Cross-service checks by check and outcome",
			ConstLabels: constLabels,
		}, []string{"check", "outcome"}),
		remoteLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "remote_check_duration_seconds",
			Help:        "Time taken by a cross-service check",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"check"}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Handled HTTP requests by route and status",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		httpLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "Time taken to serve an HTTP request",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "route"}),
	}
}

// ObserveRemoteCheck records one outcome of a cross-service check.
func (c *Collector) ObserveRemoteCheck(check, outcome string, elapsed time.Duration) {
	c.remoteChecks.WithLabelValues(check, outcome).Inc()
	c.remoteLatency.WithLabelValues(check).Observe(elapsed.Seconds())
}

// ObserveRequest records one served request. route is the matched pattern,
// never the raw path.
func (c *Collector) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
