// Package metrics provides Prometheus metric collection and exposition.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the interface the rest of the application records through.
type Recorder interface {
	RecordHTTPRequest(method, route string, status int, duration time.Duration)
	RecordReviewAdded()
	SetWebSocketClients(n int)
}

// Collector implements Recorder on top of a Prometheus registry.
type Collector struct {
	httpDuration *prometheus.HistogramVec
	reviewsAdded prometheus.Counter
	wsClients    prometheus.Gauge
}

// NewCollector creates a Collector and registers its metrics with the
// given registerer.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bookrec_http_request_duration_seconds",
			Help:    "HTTP request latency by method, route, and status code.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		reviewsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bookrec_reviews_added_total",
			Help: "Total number of reviews successfully appended.",
		}),
		wsClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bookrec_websocket_clients",
			Help: "Number of currently connected WebSocket listeners.",
		}),
	}

	reg.MustRegister(c.httpDuration, c.reviewsAdded, c.wsClients)

	return c
}

// Ensure Collector implements Recorder
var _ Recorder = (*Collector)(nil)

// RecordHTTPRequest records one served HTTP request.
func (c *Collector) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	c.httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}

// RecordReviewAdded counts a successfully appended review.
func (c *Collector) RecordReviewAdded() {
	c.reviewsAdded.Inc()
}

// SetWebSocketClients tracks the connected listener count.
func (c *Collector) SetWebSocketClients(n int) {
	c.wsClients.Set(float64(n))
}

// Handler returns the HTTP handler serving the /metrics exposition.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
